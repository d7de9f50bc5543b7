package handler

import (
	"context"  // background context for fire-and-forget publishing
	"errors"   // errors.Is comparisons against sentinel errors
	"log"      // warn logging for swallowed conditions
	"net/http" // HTTP status codes
	"time"     // timestamps and publish timeouts

	"github.com/google/uuid"      // session identifiers
	"github.com/labstack/echo/v4" // Echo web framework

	"seatpick/internal/config"
	"seatpick/internal/grid"
	"seatpick/internal/queue"
	"seatpick/internal/repository"
	"seatpick/internal/session"
	queue_publisher "seatpick/internal/service"
	"seatpick/internal/utils"
)

// SessionHandler exposes the seat-picking session commands and queries over
// HTTP. Each session serializes its own commands internally, so handlers
// never coordinate with each other; they only translate between JSON and
// the session's command surface.
type SessionHandler struct {
	Store   *repository.SessionStore // live sessions
	Layouts repository.LayoutCatalog // venue layout resolution
	Cfg     config.Config            // prices, limits, token secret
}

// NewSessionHandler constructs a SessionHandler. Store and Layouts must be
// non-nil.
func NewSessionHandler(store *repository.SessionStore, layouts repository.LayoutCatalog, cfg config.Config) *SessionHandler {
	if store == nil || layouts == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	return &SessionHandler{Store: store, Layouts: layouts, Cfg: cfg}
}

// respond writes a session snapshot plus the derived total. The total is
// presentation-layer arithmetic over the selection size and configured
// prices; it is never stored on the session.
func (h *SessionHandler) respond(c echo.Context, status int, snap session.Snapshot, extra echo.Map) error {
	body := echo.Map{
		"item":        snap,
		"total_cents": len(snap.Selection) * (h.Cfg.UnitPriceCents + h.Cfg.ServiceFeeCents),
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(status, body)
}

// Create handles POST /v1/sessions. The optional body selects a layout
// from the catalog, a deterministic occupancy seed and an initial ticket
// count. It builds the grid, computes the first suggestion and returns the
// snapshot together with a signed session token for the command endpoints.
func (h *SessionHandler) Create(c echo.Context) error {
	var body struct {
		LayoutID string `json:"layout_id"`
		Seed     int64  `json:"seed"`
		Tickets  int    `json:"tickets"`
	}
	// An empty body is fine; every field has a default.
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.LayoutID == "" {
		body.LayoutID = "default"
	}
	if body.Tickets == 0 {
		body.Tickets = 1
	}
	l, err := h.Layouts.GetByID(c.Request().Context(), body.LayoutID)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load layout"})
	}
	seed := body.Seed
	if seed == 0 {
		seed = h.Cfg.OccupancySeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := grid.New(l, grid.Seeded(seed, h.Cfg.OccupancyRatio))
	if err != nil {
		// The catalog validates layouts on load, so this indicates a bug
		// or a corrupted catalog entry.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build seat grid"})
	}
	id := uuid.NewString()
	s := session.New(id, body.LayoutID, g, body.Tickets, h.Cfg.TicketMax)
	h.Store.Put(s)
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, id, h.Cfg.SessionTTLMin)
	if err != nil {
		h.Store.Delete(id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue session token"})
	}
	return h.respond(c, http.StatusCreated, s.Snapshot(), echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp.Format(time.RFC3339),
	})
}

// load resolves the session addressed by the :id path parameter, enforcing
// that the authenticated token belongs to that same session. It writes the
// error response itself and returns nil when the caller should stop.
func (h *SessionHandler) load(c echo.Context) (*session.Session, error) {
	id := c.Param("id")
	if id == "" {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	if sid, _ := c.Get("session_id").(string); sid != id {
		return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "token does not match session"})
	}
	s, err := h.Store.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load session"})
	}
	return s, nil
}

// Get handles GET /v1/sessions/:id and returns the current snapshot.
func (h *SessionHandler) Get(c echo.Context) error {
	s, errResp := h.load(c)
	if s == nil {
		return errResp
	}
	return h.respond(c, http.StatusOK, s.Snapshot(), nil)
}

// Click handles POST /v1/sessions/:id/click. The body names one seat by
// row and number. Unknown seats, occupied seats and clicks past the ticket
// limit are swallowed no-ops per the state machine: the response is still
// 200 with the (unchanged) snapshot, so the client simply re-renders.
func (h *SessionHandler) Click(c echo.Context) error {
	s, errResp := h.load(c)
	if s == nil {
		return errResp
	}
	var body struct {
		Row    string `json:"row"`
		Number int    `json:"number"`
	}
	if err := c.Bind(&body); err != nil || body.Row == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	snap := s.ClickSeat(grid.SeatID{Row: body.Row, Number: body.Number})
	return h.respond(c, http.StatusOK, snap, nil)
}

// SetTickets handles PUT /v1/sessions/:id/tickets. The count is clamped to
// the configured range; reducing it below the current selection size
// deselects the trailing excess seats and the suggestion is recomputed for
// the new count.
func (h *SessionHandler) SetTickets(c echo.Context) error {
	s, errResp := h.load(c)
	if s == nil {
		return errResp
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	snap := s.SetTicketCount(body.Count)
	return h.respond(c, http.StatusOK, snap, nil)
}

// UseSuggested handles POST /v1/sessions/:id/suggested. It bulk-applies
// the standing suggestion, replacing any manual selection, and publishes a
// selection-confirmed event for downstream consumers. With no standing
// suggestion the command is a no-op and reports applied=false.
func (h *SessionHandler) UseSuggested(c echo.Context) error {
	s, errResp := h.load(c)
	if s == nil {
		return errResp
	}
	snap, applied := s.UseSuggested()
	if applied {
		h.publishConfirmed(snap)
	}
	return h.respond(c, http.StatusOK, snap, echo.Map{"applied": applied})
}

// publishConfirmed emits the selection-confirmed event in the background.
// Broker trouble never affects the patron's request.
func (h *SessionHandler) publishConfirmed(snap session.Snapshot) {
	labels := make([]string, 0, len(snap.Selection))
	for _, id := range snap.Selection {
		labels = append(labels, id.String())
	}
	event := queue.SelectionConfirmedEvent{
		SessionID:   snap.ID,
		LayoutID:    snap.LayoutID,
		SeatLabels:  labels,
		Tickets:     snap.Tickets,
		TotalCents:  len(snap.Selection) * (h.Cfg.UnitPriceCents + h.Cfg.ServiceFeeCents),
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishSelectionConfirmed(ctx, event); err != nil {
			log.Printf("selection confirmed event dropped for session %s: %v", snap.ID, err)
		}
	}()
}
