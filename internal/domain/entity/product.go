package entity

import (
	"github.com/shopspring/decimal"
)

// ProductStatus estado comercial del producto.
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusInactive     ProductStatus = "INACTIVE"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// Valid indica si el estado pertenece al enum del esquema.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Valores por defecto de una localización nueva.
const (
	DefaultLang     = "en"
	DefaultCountry  = "us"
	DefaultCurrency = "USD"
)

// Product representa un producto del catálogo tal como lo conoce el panel.
// ID es Persisted(sku) para filas del servidor y Pending(id local) para filas nuevas.
type Product struct {
	ID              Identity
	SKU             string
	Category        string // referencia a Category.Name
	ImageURL        string
	Status          ProductStatus
	QuantityInStock int
	Localizations   []Localization // siempre al menos una
	Deleted         bool           // marcado para borrar en el próximo guardado
}

// IsNew indica si el producto aún no existe en el servidor.
func (p Product) IsNew() bool { return p.ID.IsPending() }

// Clone copia profunda (las localizaciones no se comparten entre baseline y copia de trabajo).
func (p Product) Clone() Product {
	out := p
	out.Localizations = make([]Localization, len(p.Localizations))
	copy(out.Localizations, p.Localizations)
	return out
}

// Localization lookup por clave compuesta.
func (p Product) Localization(key LocaleKey) (Localization, int, bool) {
	for i, l := range p.Localizations {
		if l.Key() == key {
			return l, i, true
		}
	}
	return Localization{}, -1, false
}

// LocaleKey clave compuesta (lang, country) de una localización dentro de un producto.
type LocaleKey struct {
	Lang    string
	Country string
}

func (k LocaleKey) String() string { return k.Lang + "-" + k.Country }

// Localization datos de un producto para un idioma/país.
type Localization struct {
	Lang        string
	Country     string
	ProductName string
	Description string
	Price       decimal.Decimal // no negativo
	Currency    string          // código ISO 4217
}

func (l Localization) Key() LocaleKey { return LocaleKey{Lang: l.Lang, Country: l.Country} }

// Equal compara por valor; el precio se compara numéricamente (1.50 == 1.5).
func (l Localization) Equal(o Localization) bool {
	return l.Lang == o.Lang &&
		l.Country == o.Country &&
		l.ProductName == o.ProductName &&
		l.Description == o.Description &&
		l.Price.Equal(o.Price) &&
		l.Currency == o.Currency
}

// DefaultLocalization localización inicial de un producto nuevo.
func DefaultLocalization() Localization {
	return Localization{
		Lang:     DefaultLang,
		Country:  DefaultCountry,
		Price:    decimal.Zero,
		Currency: DefaultCurrency,
	}
}
