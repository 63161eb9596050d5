package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// OrderEventRepository puerto de lectura del log de eventos de pago.
// orderID vacío lista todos los eventos.
type OrderEventRepository interface {
	List(ctx context.Context, orderID, nextToken string) (entity.Page[entity.OrderEvent], error)
}
