package graphql

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// ── Tipos de cable (forma JSON del esquema) ──────────────────────────────────

type pageWire[T any] struct {
	Items     []T     `json:"items"`
	NextToken *string `json:"nextToken"`
}

type localizationWire struct {
	Lang        string          `json:"lang"`
	Country     string          `json:"country"`
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"` // acepta número o string
	Currency    string          `json:"currency"`
}

type productWire struct {
	SKU             string             `json:"sku"`
	Category        string             `json:"category"`
	ImageURL        string             `json:"imageUrl"`
	ProductStatus   string             `json:"productStatus"`
	QuantityInStock int                `json:"quantityInStock"`
	Localizations   []localizationWire `json:"localizations"`
}

type translationWire struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

type categoryWire struct {
	Category     string            `json:"category"`
	Translations []translationWire `json:"translations"`
}

type orderEventWire struct {
	EventID   string          `json:"eventId"`
	OrderID   string          `json:"orderId"`
	EventType string          `json:"eventType"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// localizationInput viaja con price numérico (Float en el esquema), no como string.
type localizationInput struct {
	Lang        string      `json:"lang"`
	Country     string      `json:"country"`
	ProductName string      `json:"productName"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Currency    string      `json:"currency"`
}

// ── Cable -> dominio ─────────────────────────────────────────────────────────

func toProduct(w productWire) entity.Product {
	locs := make([]entity.Localization, 0, len(w.Localizations))
	for _, l := range w.Localizations {
		locs = append(locs, entity.Localization{
			Lang:        l.Lang,
			Country:     l.Country,
			ProductName: l.ProductName,
			Description: l.Description,
			Price:       l.Price,
			Currency:    l.Currency,
		})
	}
	return entity.Product{
		ID:              entity.Persisted(w.SKU),
		SKU:             w.SKU,
		Category:        w.Category,
		ImageURL:        w.ImageURL,
		Status:          entity.ProductStatus(w.ProductStatus),
		QuantityInStock: w.QuantityInStock,
		Localizations:   locs,
	}
}

func toProducts(ws []productWire) []entity.Product {
	out := make([]entity.Product, 0, len(ws))
	for _, w := range ws {
		out = append(out, toProduct(w))
	}
	return out
}

func toProductPage(w pageWire[productWire]) entity.Page[entity.Product] {
	return entity.Page[entity.Product]{Items: toProducts(w.Items), NextToken: deref(w.NextToken)}
}

func toCategory(w categoryWire) entity.Category {
	ts := make([]entity.Translation, 0, len(w.Translations))
	for _, t := range w.Translations {
		ts = append(ts, entity.Translation{Lang: t.Lang, Text: t.Text})
	}
	return entity.Category{ID: entity.Persisted(w.Category), Name: w.Category, Translations: ts}
}

func toCategories(ws []categoryWire) []entity.Category {
	out := make([]entity.Category, 0, len(ws))
	for _, w := range ws {
		out = append(out, toCategory(w))
	}
	return out
}

func toOrderEvent(w orderEventWire) entity.OrderEvent {
	return entity.OrderEvent{
		EventID:   w.EventID,
		OrderID:   w.OrderID,
		EventType: w.EventType,
		Status:    w.Status,
		Amount:    w.Amount,
		Currency:  w.Currency,
		Payload:   w.Payload,
		CreatedAt: w.CreatedAt,
	}
}

// ── Dominio -> variables ─────────────────────────────────────────────────────

func toLocalizationInputs(locs []entity.Localization) []localizationInput {
	out := make([]localizationInput, 0, len(locs))
	for _, l := range locs {
		out = append(out, localizationInput{
			Lang:        l.Lang,
			Country:     l.Country,
			ProductName: l.ProductName,
			Description: l.Description,
			Price:       json.Number(l.Price.String()),
			Currency:    l.Currency,
		})
	}
	return out
}

func createProductInput(p entity.Product) map[string]any {
	return map[string]any{
		"sku":             p.SKU,
		"category":        p.Category,
		"imageUrl":        p.ImageURL,
		"productStatus":   string(p.Status),
		"quantityInStock": p.QuantityInStock,
		"localizations":   toLocalizationInputs(p.Localizations),
	}
}

// updateProductInput solo incluye los campos presentes en el parche.
func updateProductInput(sku string, patch entity.ProductPatch) map[string]any {
	in := map[string]any{"sku": sku}
	if patch.Category != nil {
		in["category"] = *patch.Category
	}
	if patch.ImageURL != nil {
		in["imageUrl"] = *patch.ImageURL
	}
	if patch.Status != nil {
		in["productStatus"] = string(*patch.Status)
	}
	if patch.QuantityInStock != nil {
		in["quantityInStock"] = *patch.QuantityInStock
	}
	return in
}

// pageVars variables comunes de paginación; nextToken vacío se envía como null.
func pageVars(limit int, nextToken string) map[string]any {
	vars := map[string]any{"limit": limit, "nextToken": nil}
	if nextToken != "" {
		vars["nextToken"] = nextToken
	}
	return vars
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
