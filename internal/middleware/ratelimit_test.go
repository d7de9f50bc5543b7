package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatpick/internal/config"
	"seatpick/internal/utils"
)

func rateCfg(strategy string) config.RateLimitConfig {
	return config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}
}

func newKeyContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/abc", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/sessions/:id")
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	c := newKeyContext(t)
	c.Set("session_id", "sess-42")

	assert.Equal(t, "rl:ip:10.0.0.7", buildRateKey(rateCfg("ip"), c))
	assert.Equal(t, "rl:session:sess-42", buildRateKey(rateCfg("session"), c))
	assert.Equal(t, "rl:ip:10.0.0.7:session:sess-42:route:GET /v1/sessions/:id",
		buildRateKey(rateCfg("ip_session_route"), c))
}

func TestBuildRateKeyWithoutSession(t *testing.T) {
	c := newKeyContext(t)
	assert.Equal(t, "rl:session:anon:route:GET /v1/sessions/:id",
		buildRateKey(rateCfg("session_route"), c))
}

// A limiter mounted after SessionAuth must see the session id the auth
// middleware stored on the context, so two patrons behind one IP land in
// separate buckets. Mirrors the order the router wires on the session
// group.
func TestSessionKeySeenBehindAuth(t *testing.T) {
	const secret = "test-secret"
	tok, err := utils.NewSessionToken(secret, "sess-42", 5)
	require.NoError(t, err)

	var observed string
	e := echo.New()
	g := e.Group("/v1/sessions")
	g.Use(SessionAuth(secret))
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			observed = buildRateKey(rateCfg("ip_session_route"), c)
			return next(c)
		}
	})
	g.GET("/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/sess-42", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, observed, "session:sess-42")
	assert.NotContains(t, observed, "anon")
}
