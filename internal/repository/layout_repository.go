package repository // repository defines data access for venue layouts

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons

	"seatpick/internal/layout"
)

// LayoutInfo is the catalog listing entry for one venue layout.
type LayoutInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RowCount  int    `json:"row_count"`
	SeatCount int    `json:"seat_count"`
}

// LayoutCatalog resolves venue layouts by ID. Two implementations exist:
// the MySQL-backed LayoutRepo for installations that manage layouts in the
// database, and StaticCatalog serving the built-in venue when no database
// is configured. Session state never touches either; only the immutable
// layout definitions live here.
type LayoutCatalog interface {
	List(ctx context.Context) ([]LayoutInfo, error)
	GetByID(ctx context.Context, id string) (layout.Layout, error)
}

// LayoutRepo reads layouts from the `layouts` table. Rows are stored as a
// JSON document in the shape layout.ParseJSON accepts.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// List returns catalog entries for every stored layout.
func (r *LayoutRepo) List(ctx context.Context) ([]LayoutInfo, error) {
	const q = `SELECT id, name, rows_json FROM layouts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LayoutInfo, 0)
	for rows.Next() {
		var (
			info LayoutInfo
			doc  []byte
		)
		if err := rows.Scan(&info.ID, &info.Name, &doc); err != nil {
			return nil, err
		}
		l, err := layout.ParseJSON(doc)
		if err != nil {
			// A malformed stored layout must not take the whole catalog
			// down; skip it.
			continue
		}
		info.RowCount = len(l.Rows)
		info.SeatCount = l.SeatCount()
		out = append(out, info)
	}
	return out, rows.Err()
}

// GetByID loads and validates a single layout. Missing rows map to
// ErrLayoutNotFound.
func (r *LayoutRepo) GetByID(ctx context.Context, id string) (layout.Layout, error) {
	const q = `SELECT rows_json FROM layouts WHERE id = ?`
	var doc []byte
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return layout.Layout{}, ErrLayoutNotFound
		}
		return layout.Layout{}, err
	}
	return layout.ParseJSON(doc)
}

// StaticCatalog serves a fixed in-memory set of layouts. It backs the
// service when no database is configured.
type StaticCatalog struct {
	layouts map[string]layout.Layout
	order   []string
}

// NewStaticCatalog builds a catalog holding only the built-in venue under
// the id "default".
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		layouts: map[string]layout.Layout{"default": layout.Default()},
		order:   []string{"default"},
	}
}

// List returns entries in registration order.
func (c *StaticCatalog) List(_ context.Context) ([]LayoutInfo, error) {
	out := make([]LayoutInfo, 0, len(c.order))
	for _, id := range c.order {
		l := c.layouts[id]
		out = append(out, LayoutInfo{
			ID:        id,
			Name:      l.Name,
			RowCount:  len(l.Rows),
			SeatCount: l.SeatCount(),
		})
	}
	return out, nil
}

// GetByID resolves a layout or reports ErrLayoutNotFound.
func (c *StaticCatalog) GetByID(_ context.Context, id string) (layout.Layout, error) {
	l, ok := c.layouts[id]
	if !ok {
		return layout.Layout{}, ErrLayoutNotFound
	}
	return l, nil
}
