package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"seatpick/internal/handler"    // handlers implementing the session and catalog endpoints
	"seatpick/internal/middleware" // session token middleware and Redis cache
)

// RegisterRoutes registers routes that do not require a session token on
// the provided Echo instance. Currently it exposes only a health check,
// which load balancers and monitoring use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterLayouts registers the read-only layout catalog endpoints. They
// take no session token so guests can preview venues. The provided
// limiter and cache middlewares (pass-throughs when Redis is absent)
// front both.
func RegisterLayouts(e *echo.Echo, h *handler.LayoutHandler, cache, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/layouts")
	if limiter != nil {
		g.Use(limiter)
	}
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// RegisterSessions registers the session lifecycle and command endpoints.
// Creating a session is open; every other endpoint requires the Bearer
// token minted at creation, validated by the SessionAuth middleware using
// the same signing secret. The session limiter mounts after SessionAuth
// so its key carries the session id; the open limiter fronts creation,
// where no session exists yet.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler, jwtSecret string, limiter, openLimiter echo.MiddlewareFunc) {
	// Session creation issues the token, so it cannot demand one.
	if openLimiter != nil {
		e.POST("/v1/sessions", h.Create, openLimiter)
	} else {
		e.POST("/v1/sessions", h.Create)
	}

	g := e.Group("/v1/sessions")
	g.Use(middleware.SessionAuth(jwtSecret))
	if limiter != nil {
		g.Use(limiter)
	}
	// Snapshot query for rendering seat colors, the selection summary and
	// the suggested block.
	g.GET("/:id", h.Get)
	// Seat click command: select, deselect, or a swallowed no-op.
	g.POST("/:id/click", h.Click)
	// Ticket count command: clamps, trims excess selection, recomputes the
	// suggestion.
	g.PUT("/:id/tickets", h.SetTickets)
	// Bulk-apply the standing suggestion.
	g.POST("/:id/suggested", h.UseSuggested)
}
