// internal/domain/order/entity.go
package order

import (
	"strings"
	"time"
)

// Known status vocabulary. Statuses are open strings at this layer:
// anything outside the vocabulary is displayed as-is and grouped as
// uncategorized, never rejected.
const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// DefaultStatus is displayed when neither an override nor a
// server-reported status exists.
const DefaultStatus = StatusPending

// Category groups used by the admin order screens
const (
	CategoryNew        = "new"
	CategoryProcessing = "processing"
	CategoryCompleted  = "completed"
	CategoryCancelled  = "cancelled"
	CategoryAll        = "all"
)

// statusIDs numbers the known vocabulary for the backend's
// order.updateStatus call.
var statusIDs = map[string]int{
	strings.ToLower(StatusPending):    0,
	strings.ToLower(StatusConfirmed):  1,
	strings.ToLower(StatusProcessing): 2,
	strings.ToLower(StatusShipped):    3,
	strings.ToLower(StatusDelivered):  4,
	strings.ToLower(StatusCancelled):  5,
}

// StatusID returns the backend identifier for a status. Unknown
// statuses map to the pending identifier.
func StatusID(status string) int {
	if id, ok := statusIDs[strings.ToLower(status)]; ok {
		return id
	}
	return statusIDs[strings.ToLower(StatusPending)]
}

// CategoryFor maps a status string onto its admin grouping bucket.
// Matching is case-insensitive; unknown statuses land in "all".
func CategoryFor(status string) string {
	switch strings.ToLower(status) {
	case strings.ToLower(StatusConfirmed), "new":
		return CategoryNew
	case strings.ToLower(StatusProcessing):
		return CategoryProcessing
	case strings.ToLower(StatusShipped), strings.ToLower(StatusDelivered):
		return CategoryCompleted
	case strings.ToLower(StatusCancelled):
		return CategoryCancelled
	default:
		return CategoryAll
	}
}

// Order is the server-reported order record as consumed by the client.
// EffectiveStatus is filled in by the override store; screens read it
// instead of Status so a pending local override always wins.
type Order struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number,omitempty"`
	Status          string    `json:"status"`
	EffectiveStatus string    `json:"effective_status,omitempty"`
	CustomerName    string    `json:"customer_name,omitempty"`
	TotalAmount     float64   `json:"total_amount"`
	PlacedAt        time.Time `json:"placed_at"`
}

// StatusUpdate is one local override entry: the newest write for an
// order id wins.
type StatusUpdate struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
