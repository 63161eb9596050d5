package dto

// CreateCategoryRequest alta local de una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// TranslationRequest alta o edición de una traducción.
type TranslationRequest struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// TranslationResponse salida de una traducción.
type TranslationResponse struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// CategoryResponse salida de una categoría de la copia de trabajo.
type CategoryResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Translations []TranslationResponse `json:"translations"`
	State        *RowState             `json:"state,omitempty"`
}

// CategoryListResponse filas de trabajo de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
