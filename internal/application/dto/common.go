package dto

import "github.com/jhoicas/Catalogo-admin/internal/domain"

// ErrorResponse cuerpo de error HTTP. Violations, Failures y Report solo en errores de
// validación y de guardado.
type ErrorResponse struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Violations []domain.Violation     `json:"violations,omitempty"`
	Failures   []domain.EntityFailure `json:"failures,omitempty"`
	Report     *SaveResponse          `json:"report,omitempty"`
}

// FieldEditRequest asignación de un campo a partir de su valor textual.
type FieldEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// RowState estado de presentación de una fila.
type RowState struct {
	New     bool `json:"new"`
	Deleted bool `json:"deleted"`
	Dirty   bool `json:"dirty"`
}

// DeletedResponse valor de la marca de borrado tras alternarla.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
