// Package queue defines message payloads exchanged over the message broker.
package queue

// SelectionConfirmedEvent is published when a patron bulk-applies the
// current seat suggestion. It carries enough information for downstream
// consumers (notifications, analytics) to act without calling back into
// the service.
type SelectionConfirmedEvent struct {
	SessionID   string   `json:"session_id"`
	LayoutID    string   `json:"layout_id"`
	SeatLabels  []string `json:"seats"`
	Tickets     int      `json:"tickets"`
	TotalCents  int      `json:"total_cents"`
	ConfirmedAt string   `json:"confirmed_at"`
}
