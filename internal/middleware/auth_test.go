package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier accepts exactly one token
type stubVerifier struct {
	token     string
	principal *Principal
	err       error
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token != s.token {
		return nil, domain.ErrUnauthenticated
	}
	return s.principal, nil
}

func runAuthenticate(t *testing.T, verifier TokenVerifier, header string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := NewAuthMiddleware(verifier).Authenticate()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	return c, called, err
}

func TestAuthenticate(t *testing.T) {
	alice := &Principal{ID: "auth0|alice", Email: "alice@example.com"}
	verifier := &stubVerifier{token: "good-token", principal: alice}

	tests := []struct {
		name       string
		verifier   TokenVerifier
		header     string
		wantCalled bool
		wantDetail string
	}{
		{"valid bearer token", verifier, "Bearer good-token", true, ""},
		{"lowercase scheme", verifier, "bearer good-token", true, ""},
		{"missing header", verifier, "", false, "missing authorization header"},
		{"wrong scheme", verifier, "Basic good-token", false, "invalid authorization header format"},
		{"no scheme", verifier, "good-token", false, "invalid authorization header format"},
		{"empty token", verifier, "Bearer ", false, "invalid authorization header format"},
		{"rejected token", verifier, "Bearer bad-token", false, "invalid token"},
		{"verifier failure", &stubVerifier{err: errors.New("jwks fetch failed")}, "Bearer good-token", false, "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, called, err := runAuthenticate(t, tt.verifier, tt.header)

			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				require.NoError(t, err)
				assert.Equal(t, "auth0|alice", GetPrincipalID(c))
				return
			}

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
			assert.Equal(t, tt.wantDetail, httpErr.Message)
			assert.Empty(t, GetPrincipalID(c))
		})
	}
}

func TestGetPrincipal(t *testing.T) {
	e := echo.New()

	t.Run("returns principal when present", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		SetPrincipal(c, &Principal{ID: "auth0|12345", Name: "Test User"})

		principal := GetPrincipal(c)
		require.NotNil(t, principal)
		assert.Equal(t, "Test User", principal.Name)
		assert.Equal(t, "auth0|12345", GetPrincipalID(c))
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		assert.Nil(t, GetPrincipal(c))
		assert.Empty(t, GetPrincipalID(c))
	})
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer  abc.def.ghi ")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = BearerToken("Token abc")
	assert.Error(t, err)
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{Email: "test@example.com", Name: "Test"}
	assert.NoError(t, claims.Validate(context.Background()))
}

func TestNewAuth0Verifier(t *testing.T) {
	verifier, err := NewAuth0Verifier("test.auth0.com", "https://api.backoffice.app")
	require.NoError(t, err)
	assert.NotNil(t, verifier)
}
