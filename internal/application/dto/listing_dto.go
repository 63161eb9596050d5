package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SearchRequest texto de búsqueda con directivas opcionales (sku:, category:, order:).
type SearchRequest struct {
	Query string `json:"query"`
}

// ListingResponse foto de una lista paginada.
type ListingResponse[T any] struct {
	Query   string `json:"query"`
	Kind    string `json:"kind"`
	Items   []T    `json:"items"`
	HasMore bool   `json:"hasMore"`
	Loading bool   `json:"loading"`
}

// OrderEventResponse evento del log de pagos.
type OrderEventResponse struct {
	EventID   string          `json:"eventId"`
	OrderID   string          `json:"orderId"`
	EventType string          `json:"eventType"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
