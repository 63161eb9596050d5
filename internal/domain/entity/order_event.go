package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OrderEvent entrada del log de eventos de pago de una orden (solo lectura).
type OrderEvent struct {
	EventID   string
	OrderID   string
	EventType string // p. ej. PAYMENT_AUTHORIZED, PAYMENT_CAPTURED, REFUNDED
	Status    string
	Amount    decimal.Decimal
	Currency  string
	Payload   json.RawMessage // cuerpo original del proveedor de pagos
	CreatedAt time.Time
}
