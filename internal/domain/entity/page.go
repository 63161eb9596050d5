package entity

// Page una página de un listado remoto. NextToken vacío significa listado agotado.
type Page[T any] struct {
	Items     []T
	NextToken string
}

// HasMore indica si hay otra página disponible.
func (p Page[T]) HasMore() bool { return p.NextToken != "" }
