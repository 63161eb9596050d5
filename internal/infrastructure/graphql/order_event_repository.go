package graphql

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/domain/repository"
)

var _ repository.OrderEventRepository = (*OrderEventRepo)(nil)

// OrderEventRepo lectura paginada del log de eventos de pago.
type OrderEventRepo struct {
	c        *Client
	pageSize int
}

func NewOrderEventRepository(c *Client, pageSize int) *OrderEventRepo {
	return &OrderEventRepo{c: c, pageSize: pageSize}
}

// List una página de eventos; orderID vacío no filtra.
func (r *OrderEventRepo) List(ctx context.Context, orderID, nextToken string) (entity.Page[entity.OrderEvent], error) {
	vars := pageVars(r.pageSize, nextToken)
	vars["orderId"] = nil
	if orderID != "" {
		vars["orderId"] = orderID
	}
	var out struct {
		ListOrderEvents pageWire[orderEventWire] `json:"listOrderEvents"`
	}
	if err := r.c.Execute(ctx, opListOrderEvents, vars, &out); err != nil {
		return entity.Page[entity.OrderEvent]{}, fmt.Errorf("list order events: %w", err)
	}
	events := make([]entity.OrderEvent, 0, len(out.ListOrderEvents.Items))
	for _, w := range out.ListOrderEvents.Items {
		events = append(events, toOrderEvent(w))
	}
	return entity.Page[entity.OrderEvent]{Items: events, NextToken: deref(out.ListOrderEvents.NextToken)}, nil
}
