package domain

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Errores de dominio (sin dependencias de transporte).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthenticated  = errors.New("sesión no autenticada")
	ErrTransport        = errors.New("error de transporte")
	ErrApplication      = errors.New("error de aplicación remota")
	ErrValidation       = errors.New("validación fallida")
	ErrDuplicateKey     = errors.New("clave duplicada")
	ErrDuplicateName    = errors.New("nombre duplicado")
	ErrLastLocalization = errors.New("un producto debe conservar al menos una localización")
	ErrImmutableField   = errors.New("el campo no puede modificarse en un registro persistido")
	ErrSaveInProgress   = errors.New("ya hay un guardado en curso")
	ErrListingBusy      = errors.New("la lista ya está cargando")
)

// GatewayErrorKind clasifica los fallos del gateway remoto.
type GatewayErrorKind string

const (
	KindUnauthenticated GatewayErrorKind = "UNAUTHENTICATED"
	KindTransport       GatewayErrorKind = "TRANSPORT"
	KindApplication     GatewayErrorKind = "APPLICATION"
)

// GatewayError error normalizado de cualquier llamada remota.
// Status es el código HTTP (0 si la falla fue de red); Message es el primer mensaje reportado.
type GatewayError struct {
	Kind    GatewayErrorKind
	Status  int
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	switch e.Kind {
	case KindTransport:
		if e.Status > 0 {
			return fmt.Sprintf("gateway: HTTP %d: %s", e.Status, e.Message)
		}
		return "gateway: " + e.Message
	case KindUnauthenticated:
		return "gateway: no autenticado"
	default:
		return e.Message
	}
}

// Unwrap permite errors.Is contra el sentinela de su categoría.
func (e *GatewayError) Unwrap() error {
	switch e.Kind {
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindTransport:
		return ErrTransport
	default:
		return ErrApplication
	}
}

// Violation una invariante local incumplida.
type Violation struct {
	Code    string `json:"code"`
	Entity  string `json:"entity"`
	Message string `json:"message"`
}

// Códigos de violación reportados por Validate.
const (
	ViolationMissingCategory = "MISSING_CATEGORY"
	ViolationUnknownCategory = "UNKNOWN_CATEGORY"
	ViolationDuplicateSKU    = "DUPLICATE_SKU"
	ViolationEmptySKU        = "EMPTY_SKU"
	ViolationNoLocalization  = "NO_LOCALIZATION"
	ViolationInvalidCurrency = "INVALID_CURRENCY"
	ViolationEmptyField      = "EMPTY_FIELD"
	ViolationDuplicateName   = "DUPLICATE_CATEGORY"
)

// ValidationError agrupa todas las violaciones que bloquean una acción antes de la red.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validación fallida: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// EntityFailure una llamada de guardado que falló, con el mensaje tal como llegó del remoto.
type EntityFailure struct {
	Entity  string `json:"entity"`
	Op      string `json:"op"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// SaveError reúne todas las fallas de un guardado; nunca se corta en la primera.
type SaveError struct {
	Failures []EntityFailure
}

func (e *SaveError) Error() string {
	var err error
	for _, f := range e.Failures {
		err = multierr.Append(err, fmt.Errorf("%s %s: %s", f.Op, f.Entity, f.Message))
	}
	if err == nil {
		return "guardado fallido"
	}
	return err.Error()
}

// Unwrap expone las causas para errors.Is (p. ej. ErrUnauthenticated).
func (e *SaveError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}
