package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey contextKey = "principal"
)

// Principal is the authenticated identity of a request
type Principal struct {
	ID    string
	Email string
	Name  string
}

// TokenVerifier resolves a bearer credential to a principal. It fails with
// domain.ErrUnauthenticated for any credential it does not accept.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// Auth0Verifier verifies Auth0-issued RS256 access tokens
type Auth0Verifier struct {
	validator *validator.Validator
}

// NewAuth0Verifier creates a verifier for tokens issued by domain for audience
func NewAuth0Verifier(domain, audience string) (*Auth0Verifier, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &Auth0Verifier{validator: jwtValidator}, nil
}

// Verify implements TokenVerifier
func (v *Auth0Verifier) Verify(ctx context.Context, token string) (*Principal, error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		log.Debug().Err(err).Msg("Token validation failed")
		return nil, domain.ErrUnauthenticated
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}

	principal := &Principal{ID: validated.RegisteredClaims.Subject}
	if custom, ok := validated.CustomClaims.(*CustomClaims); ok {
		principal.Email = custom.Email
		principal.Name = custom.Name
	}
	return principal, nil
}

// AuthMiddleware authenticates requests with a bearer credential
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate returns an Echo middleware that resolves the bearer credential
// to a principal and stores it in the request context
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			principal, err := m.verifier.Verify(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthenticated) {
					log.Error().Err(err).Msg("Token verifier failed")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

// BearerToken extracts the credential from an Authorization header value
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// SetPrincipal stores the principal in the request context
func SetPrincipal(c echo.Context, principal *Principal) {
	ctx := context.WithValue(c.Request().Context(), PrincipalKey, principal)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetPrincipal extracts the principal from the context
func GetPrincipal(c echo.Context) *Principal {
	if p, ok := c.Request().Context().Value(PrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

// GetPrincipalID extracts the principal ID from the context, or "" when the
// request is unauthenticated
func GetPrincipalID(c echo.Context) string {
	if p := GetPrincipal(c); p != nil {
		return p.ID
	}
	return ""
}
