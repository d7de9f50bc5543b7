package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatpick/internal/config"
	"seatpick/internal/repository"
	"seatpick/internal/session"
)

func testConfig() config.Config {
	return config.Config{
		Env:             "test",
		Port:            "0",
		JWTSecret:       "test-secret",
		SessionTTLMin:   30,
		TicketMax:       10,
		UnitPriceCents:  1000,
		ServiceFeeCents: 100,
		OccupancyRatio:  0, // every seat available, deterministic grids
		OccupancySeed:   1,
	}
}

func newHandler() *SessionHandler {
	return NewSessionHandler(
		repository.NewSessionStore(0),
		repository.NewStaticCatalog(),
		testConfig(),
	)
}

// snapResp mirrors the JSON envelope the session endpoints write.
type snapResp struct {
	Item       session.Snapshot `json:"item"`
	TotalCents int              `json:"total_cents"`
	Token      string           `json:"token"`
	Applied    bool             `json:"applied"`
	Error      string           `json:"error"`
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string, setup func(echo.Context)) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	return rec, c
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) snapResp {
	t.Helper()
	var out snapResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createSession(t *testing.T, h *SessionHandler, e *echo.Echo, body string) snapResp {
	t.Helper()
	rec, c := doJSON(t, e, http.MethodPost, "/v1/sessions", body, nil)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode(t, rec)
}

// asSession wires the path param and the context value SessionAuth would set.
func asSession(id string) func(echo.Context) {
	return func(c echo.Context) {
		c.SetPath("/v1/sessions/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		c.Set("session_id", id)
	}
}

func TestCreateSession(t *testing.T) {
	h := newHandler()
	e := echo.New()
	resp := createSession(t, h, e, `{"seed":42,"tickets":2}`)

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.Item.ID)
	// catalog id and display name are distinct fields
	assert.Equal(t, "default", resp.Item.LayoutID)
	assert.Equal(t, "main-hall", resp.Item.Layout)
	assert.Len(t, resp.Item.Rows, 8)
	assert.Equal(t, 2, resp.Item.Tickets)
	// the first suggestion is computed at creation; nothing selected yet
	assert.Len(t, resp.Item.Suggestion, 2)
	assert.Empty(t, resp.Item.Selection)
	assert.Equal(t, 0, resp.TotalCents)
}

func TestCreateSessionUnknownLayout(t *testing.T) {
	h := newHandler()
	e := echo.New()
	rec, c := doJSON(t, e, http.MethodPost, "/v1/sessions", `{"layout_id":"nope"}`, nil)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSession(t *testing.T) {
	h := newHandler()
	e := echo.New()
	created := createSession(t, h, e, `{"seed":7}`)

	rec, c := doJSON(t, e, http.MethodGet, "/", "", asSession(created.Item.ID))
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, created.Item.ID, resp.Item.ID)
}

func TestGetSessionTokenMismatch(t *testing.T) {
	h := newHandler()
	e := echo.New()
	created := createSession(t, h, e, `{"seed":7}`)

	rec, c := doJSON(t, e, http.MethodGet, "/", "", func(c echo.Context) {
		c.SetPath("/v1/sessions/:id")
		c.SetParamNames("id")
		c.SetParamValues(created.Item.ID)
		c.Set("session_id", "someone-else")
	})
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	h := newHandler()
	e := echo.New()
	rec, c := doJSON(t, e, http.MethodGet, "/", "", asSession("gone"))
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClickSelectsSeatAndPricesTotal(t *testing.T) {
	h := newHandler()
	e := echo.New()
	created := createSession(t, h, e, `{"seed":7,"tickets":2}`)

	rec, c := doJSON(t, e, http.MethodPost, "/", `{"row":"A","number":3}`, asSession(created.Item.ID))
	require.NoError(t, h.Click(c))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.Len(t, resp.Item.Selection, 1)
	assert.Equal(t, "A", resp.Item.Selection[0].Row)
	assert.Equal(t, 3, resp.Item.Selection[0].Number)
	// 1 seat at (1000 + 100) cents
	assert.Equal(t, 1100, resp.TotalCents)
}

func TestClickUnknownSeatIsANoOp(t *testing.T) {
	h := newHandler()
	e := echo.New()
	created := createSession(t, h, e, `{"seed":7}`)

	rec, c := doJSON(t, e, http.MethodPost, "/", `{"row":"Z","number":99}`, asSession(created.Item.ID))
	require.NoError(t, h.Click(c))
	// swallowed: still 200, state unchanged
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Empty(t, resp.Item.Selection)
}

func TestSetTicketsClampsCount(t *testing.T) {
	h := newHandler()
	e := echo.New()
	created := createSession(t, h, e, `{"seed":7}`)

	rec, c := doJSON(t, e, http.MethodPut, "/", `{"count":99}`, asSession(created.Item.ID))
	require.NoError(t, h.SetTickets(c))
	resp := decode(t, rec)
	assert.Equal(t, 10, resp.Item.Tickets)

	rec, c = doJSON(t, e, http.MethodPut, "/", `{"count":-3}`, asSession(created.Item.ID))
	require.NoError(t, h.SetTickets(c))
	resp = decode(t, rec)
	assert.Equal(t, 1, resp.Item.Tickets)
}

func TestUseSuggestedAppliesBlock(t *testing.T) {
	h := newHandler()
	e := echo.New()
	created := createSession(t, h, e, `{"seed":7,"tickets":3}`)
	require.Len(t, created.Item.Suggestion, 3)

	rec, c := doJSON(t, e, http.MethodPost, "/", "", asSession(created.Item.ID))
	require.NoError(t, h.UseSuggested(c))
	resp := decode(t, rec)
	assert.True(t, resp.Applied)
	assert.Equal(t, created.Item.Suggestion, resp.Item.Selection)
	assert.Empty(t, resp.Item.Suggestion)
	assert.Equal(t, 3*1100, resp.TotalCents)

	// a second call has nothing left to apply
	rec, c = doJSON(t, e, http.MethodPost, "/", "", asSession(created.Item.ID))
	require.NoError(t, h.UseSuggested(c))
	resp = decode(t, rec)
	assert.False(t, resp.Applied)
}

func TestLayoutHandler(t *testing.T) {
	h := NewLayoutHandler(repository.NewStaticCatalog())
	e := echo.New()

	rec, c := doJSON(t, e, http.MethodGet, "/v1/layouts", "", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Count int `json:"count"`
		Items []repository.LayoutInfo
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	rec, c = doJSON(t, e, http.MethodGet, "/", "", func(c echo.Context) {
		c.SetPath("/v1/layouts/:id")
		c.SetParamNames("id")
		c.SetParamValues("default")
	})
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, c = doJSON(t, e, http.MethodGet, "/", "", func(c echo.Context) {
		c.SetPath("/v1/layouts/:id")
		c.SetParamNames("id")
		c.SetParamValues("missing")
	})
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
