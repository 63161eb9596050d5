package search

import (
	"slices"
	"strings"
)

// Prefijos reconocidos en el texto de búsqueda.
const (
	prefixSKU      = "sku:"
	prefixCategory = "category:"
	prefixOrder    = "order:"
)

// Kind forma de consulta resuelta a partir del texto.
type Kind string

const (
	KindAll      Kind = "all"      // texto vacío: listado sin filtro
	KindSKUs     Kind = "skus"     // "sku:A1,B2" lote por identificador exacto
	KindCategory Kind = "category" // "category:Tools"
	KindOrder    Kind = "order"    // "order:ORD-1" eventos de una orden
	KindText     Kind = "text"     // texto libre
)

// Query consulta interpretada. Raw conserva el texto original para mostrarlo.
type Query struct {
	Kind Kind     `json:"kind"`
	Raw  string   `json:"raw"`
	Text string   `json:"text,omitempty"`
	SKUs []string `json:"skus,omitempty"`
}

// IsFiltered indica si la consulta restringe el listado.
func (q Query) IsFiltered() bool { return q.Kind != KindAll }

// ParseQuery interpreta las directivas por prefijo (sin distinguir mayúsculas); el texto
// sin prefijo usa la búsqueda de texto libre. Una directiva sin argumento equivale a vacío.
func ParseQuery(raw string) Query {
	trimmed := strings.TrimSpace(raw)
	q := Query{Kind: KindAll, Raw: trimmed}
	if trimmed == "" {
		return q
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, prefixSKU):
		for _, sku := range strings.Split(trimmed[len(prefixSKU):], ",") {
			if sku = strings.TrimSpace(sku); sku != "" && !slices.Contains(q.SKUs, sku) {
				q.SKUs = append(q.SKUs, sku)
			}
		}
		if len(q.SKUs) > 0 {
			q.Kind = KindSKUs
		}
	case strings.HasPrefix(lower, prefixCategory):
		if v := strings.TrimSpace(trimmed[len(prefixCategory):]); v != "" {
			q.Kind, q.Text = KindCategory, v
		}
	case strings.HasPrefix(lower, prefixOrder):
		if v := strings.TrimSpace(trimmed[len(prefixOrder):]); v != "" {
			q.Kind, q.Text = KindOrder, v
		}
	default:
		q.Kind, q.Text = KindText, trimmed
	}
	return q
}
