package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("auth0|alice"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("auth0|alice"), "request 6 should be rate limited")
}

func TestRateLimiter_DifferentPrincipals(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("auth0|alice"))
	}
	assert.False(t, rl.Allow("auth0|alice"))

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("auth0|bob"), "bob request %d should be allowed", i+1)
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 2)
	defer rl.Stop()

	e := echo.New()
	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func(principalID string) (*httptest.ResponseRecorder, error) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if principalID != "" {
			SetPrincipal(c, &Principal{ID: principalID})
		}
		return rec, handler(c)
	}

	t.Run("sets headers on allowed requests", func(t *testing.T) {
		rec, err := call("auth0|alice")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("rejects once the burst is spent", func(t *testing.T) {
		_, err := call("auth0|alice")
		require.NoError(t, err)

		rec, err := call("auth0|alice")
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("skips unauthenticated requests", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			rec, err := call("")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
