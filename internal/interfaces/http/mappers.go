package http

import (
	"github.com/jhoicas/Catalogo-admin/internal/application/dto"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

func toRowState(s workspace.RowState) *dto.RowState {
	return &dto.RowState{New: s.New, Deleted: s.Deleted, Dirty: s.Dirty}
}

func toProductResponse(p entity.Product, state *dto.RowState) dto.ProductResponse {
	locs := make([]dto.LocalizationResponse, 0, len(p.Localizations))
	for _, l := range p.Localizations {
		locs = append(locs, dto.LocalizationResponse{
			Lang:        l.Lang,
			Country:     l.Country,
			ProductName: l.ProductName,
			Description: l.Description,
			Price:       l.Price,
			Currency:    l.Currency,
		})
	}
	return dto.ProductResponse{
		ID:              p.ID.String(),
		SKU:             p.SKU,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		ProductStatus:   string(p.Status),
		QuantityInStock: p.QuantityInStock,
		Localizations:   locs,
		State:           state,
	}
}

func toProductRowResponse(r workspace.ProductRow) dto.ProductResponse {
	return toProductResponse(r.Product, toRowState(r.State))
}

func toCategoryResponse(c entity.Category, state *dto.RowState) dto.CategoryResponse {
	tr := make([]dto.TranslationResponse, 0, len(c.Translations))
	for _, t := range c.Translations {
		tr = append(tr, dto.TranslationResponse{Lang: t.Lang, Text: t.Text})
	}
	return dto.CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Translations: tr,
		State:        state,
	}
}

func toCategoryRowResponse(r workspace.CategoryRow) dto.CategoryResponse {
	return toCategoryResponse(r.Category, toRowState(r.State))
}

func toOrderEventResponse(e entity.OrderEvent) dto.OrderEventResponse {
	return dto.OrderEventResponse{
		EventID:   e.EventID,
		OrderID:   e.OrderID,
		EventType: e.EventType,
		Status:    e.Status,
		Amount:    e.Amount,
		Currency:  e.Currency,
		Payload:   e.Payload,
		CreatedAt: e.CreatedAt,
	}
}

func toLocalization(in dto.LocalizationRequest) entity.Localization {
	return entity.Localization{
		Lang:        in.Lang,
		Country:     in.Country,
		ProductName: in.ProductName,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
	}
}

func toSaveResponse(r workspace.SaveReport) dto.SaveResponse {
	return dto.SaveResponse{
		Created:  r.Created,
		Updated:  r.Updated,
		Deleted:  r.Deleted,
		Dropped:  r.Dropped,
		Failures: r.Failures,
	}
}
