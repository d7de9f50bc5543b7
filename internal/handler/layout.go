package handler // handler package contains layout catalog handlers

import (
	"errors"   // errors.Is comparisons
	"net/http" // HTTP status code constants

	"github.com/labstack/echo/v4" // echo provides request context and JSON helpers

	"seatpick/internal/repository"
)

// LayoutHandler serves the venue layout catalog. These endpoints are
// read-only and sit behind the Redis response cache; guests browse them
// before opening a picking session.
type LayoutHandler struct {
	Catalog repository.LayoutCatalog // layout resolution, DB-backed or static
}

// NewLayoutHandler constructs a LayoutHandler. Catalog must be non-nil.
func NewLayoutHandler(catalog repository.LayoutCatalog) *LayoutHandler {
	if catalog == nil {
		panic("nil catalog passed to NewLayoutHandler")
	}
	return &LayoutHandler{Catalog: catalog}
}

// List handles GET /v1/layouts and returns catalog entries for every
// known venue layout.
func (h *LayoutHandler) List(c echo.Context) error {
	items, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load layouts"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(items),
		"items": items,
	})
}

// Get handles GET /v1/layouts/:id and returns the full layout document,
// rows and center row included, for rendering a venue preview.
func (h *LayoutHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid layout id"})
	}
	l, err := h.Catalog.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load layout"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item": l,
	})
}
