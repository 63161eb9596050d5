package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest alta local de un producto; ambos campos pueden completarse después.
type CreateProductRequest struct {
	SKU      string `json:"sku"`
	Category string `json:"category"`
}

// LocalizationRequest alta de una localización.
type LocalizationRequest struct {
	Lang        string          `json:"lang"`
	Country     string          `json:"country"`
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}

// LocalizationResponse salida de una localización.
type LocalizationResponse struct {
	Lang        string          `json:"lang"`
	Country     string          `json:"country"`
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}

// ProductResponse salida de un producto de la copia de trabajo.
type ProductResponse struct {
	ID              string                 `json:"id"`
	SKU             string                 `json:"sku"`
	Category        string                 `json:"category"`
	ImageURL        string                 `json:"imageUrl"`
	ProductStatus   string                 `json:"productStatus"`
	QuantityInStock int                    `json:"quantityInStock"`
	Localizations   []LocalizationResponse `json:"localizations"`
	State           *RowState              `json:"state,omitempty"`
}

// ProductListResponse filas de trabajo de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
