package workspace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// AddProduct agrega un producto nuevo con estado ACTIVE, stock 0 y la localización por defecto.
// category puede quedar vacío; Validate lo exige antes de guardar.
func (e *Engine) AddProduct(sku, category string) entity.Product {
	p := entity.Product{
		ID:            entity.Pending(e.newID()),
		SKU:           strings.TrimSpace(sku),
		Category:      strings.TrimSpace(category),
		Status:        entity.ProductStatusActive,
		Localizations: []entity.Localization{entity.DefaultLocalization()},
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.workingProducts = append(e.workingProducts, p)
	return p.Clone()
}

// RemoveNewProduct descarta un producto nuevo sin llamada remota.
func (e *Engine) RemoveNewProduct(id entity.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if !id.IsPending() {
		return fmt.Errorf("%w: %s ya existe en el servidor; use la marca de borrado", domain.ErrInvalidInput, id)
	}
	e.workingProducts = append(e.workingProducts[:i], e.workingProducts[i+1:]...)
	return nil
}

// MarkProductDeleted alterna la marca de borrado y devuelve el nuevo valor.
func (e *Engine) MarkProductDeleted(id entity.Identity) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return false, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	e.workingProducts[i].Deleted = !e.workingProducts[i].Deleted
	return e.workingProducts[i].Deleted, nil
}

// EditProductField asigna un campo escalar a partir de su representación textual.
// El SKU de un producto persistido es su clave y no se puede editar.
func (e *Engine) EditProductField(id entity.Identity, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	p := &e.workingProducts[i]

	switch field {
	case entity.FieldSKU:
		if !p.IsNew() {
			return fmt.Errorf("%w: sku de %s", domain.ErrImmutableField, id)
		}
		p.SKU = strings.TrimSpace(value)
	case entity.FieldCategory:
		p.Category = strings.TrimSpace(value)
	case entity.FieldImageURL:
		p.ImageURL = strings.TrimSpace(value)
	case entity.FieldProductStatus:
		st := entity.ProductStatus(strings.ToUpper(strings.TrimSpace(value)))
		if !st.Valid() {
			return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, value)
		}
		p.Status = st
	case entity.FieldQuantityInStock:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: cantidad %q debe ser un entero no negativo", domain.ErrInvalidInput, value)
		}
		p.QuantityInStock = n
	default:
		return fmt.Errorf("%w: campo de producto desconocido %q", domain.ErrInvalidInput, field)
	}
	return nil
}

// AddLocalization agrega una localización; la clave (lang, country) debe ser nueva en el producto.
func (e *Engine) AddLocalization(id entity.Identity, loc entity.Localization) error {
	loc, err := normalizeLocalization(loc)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	p := &e.workingProducts[i]
	if _, _, ok := p.Localization(loc.Key()); ok {
		return fmt.Errorf("%w: localización %s en %s", domain.ErrDuplicateKey, loc.Key(), id)
	}
	p.Localizations = append(p.Localizations, loc)
	return nil
}

// EditLocalization asigna un campo de la localización key. Cambiar lang o country mueve la
// localización a otra clave, que no debe existir ya en el producto.
func (e *Engine) EditLocalization(id entity.Identity, key entity.LocaleKey, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	p := &e.workingProducts[i]
	loc, j, ok := p.Localization(key)
	if !ok {
		return fmt.Errorf("%w: localización %s en %s", domain.ErrNotFound, key, id)
	}

	switch field {
	case entity.FieldLang:
		loc.Lang = strings.ToLower(strings.TrimSpace(value))
	case entity.FieldCountry:
		loc.Country = strings.ToLower(strings.TrimSpace(value))
	case entity.FieldProductName:
		loc.ProductName = value
	case entity.FieldDescription:
		loc.Description = value
	case entity.FieldPrice:
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: precio %q", domain.ErrInvalidInput, value)
		}
		loc.Price = price
	case entity.FieldCurrency:
		loc.Currency = strings.ToUpper(strings.TrimSpace(value))
	default:
		return fmt.Errorf("%w: campo de localización desconocido %q", domain.ErrInvalidInput, field)
	}

	loc, err := normalizeLocalization(loc)
	if err != nil {
		return err
	}
	if loc.Key() != key {
		if _, _, taken := p.Localization(loc.Key()); taken {
			return fmt.Errorf("%w: localización %s en %s", domain.ErrDuplicateKey, loc.Key(), id)
		}
	}
	p.Localizations[j] = loc
	return nil
}

// RemoveLocalization quita una localización; la última de un producto no se puede quitar.
func (e *Engine) RemoveLocalization(id entity.Identity, key entity.LocaleKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	p := &e.workingProducts[i]
	_, j, ok := p.Localization(key)
	if !ok {
		return fmt.Errorf("%w: localización %s en %s", domain.ErrNotFound, key, id)
	}
	if len(p.Localizations) == 1 {
		return domain.ErrLastLocalization
	}
	locs := make([]entity.Localization, 0, len(p.Localizations)-1)
	locs = append(locs, p.Localizations[:j]...)
	p.Localizations = append(locs, p.Localizations[j+1:]...)
	return nil
}

func normalizeLocalization(l entity.Localization) (entity.Localization, error) {
	l.Lang = strings.ToLower(strings.TrimSpace(l.Lang))
	l.Country = strings.ToLower(strings.TrimSpace(l.Country))
	l.Currency = strings.ToUpper(strings.TrimSpace(l.Currency))
	if l.Lang == "" || l.Country == "" {
		return l, fmt.Errorf("%w: lang y country son obligatorios", domain.ErrInvalidInput)
	}
	if l.Price.IsNegative() {
		return l, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	return l, nil
}
