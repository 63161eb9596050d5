package dto

import "github.com/jhoicas/Catalogo-admin/internal/domain"

// ValidateResponse resultado de validar la copia de trabajo.
type ValidateResponse struct {
	Valid      bool               `json:"valid"`
	Violations []domain.Violation `json:"violations"`
}

// SaveResponse resultado de un guardado.
type SaveResponse struct {
	Created  int                    `json:"created"`
	Updated  int                    `json:"updated"`
	Deleted  int                    `json:"deleted"`
	Dropped  int                    `json:"dropped"`
	Failures []domain.EntityFailure `json:"failures,omitempty"`
}

// ChangesResponse indica si hay cambios pendientes o un guardado en curso.
type ChangesResponse struct {
	HasChanges bool `json:"hasChanges"`
	Saving     bool `json:"saving"`
}
