package workspace

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// Validate revisa las invariantes locales sobre la copia de trabajo sin tocar la red.
// Referencias y unicidad se verifican en todos los registros no borrados; los campos
// obligatorios solo en los nuevos o modificados.
func (e *Engine) Validate() []domain.Violation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validateLocked()
}

func (e *Engine) validateLocked() []domain.Violation {
	var out []domain.Violation

	active := make(map[string]bool, len(e.workingCategories))
	seenNames := map[string]string{}
	for _, c := range e.workingCategories {
		if c.Deleted {
			continue
		}
		active[c.Name] = true

		label := categoryLabel(c)
		if strings.TrimSpace(c.Name) == "" {
			out = append(out, domain.Violation{
				Code: domain.ViolationEmptyField, Entity: label,
				Message: "la categoría no tiene nombre",
			})
			continue
		}
		key := foldName(c.Name)
		if other, dup := seenNames[key]; dup {
			out = append(out, domain.Violation{
				Code: domain.ViolationDuplicateName, Entity: label,
				Message: fmt.Sprintf("la categoría %q repite el nombre de %q", c.Name, other),
			})
			continue
		}
		seenNames[key] = c.Name
	}

	skuCount := map[string]int{}
	for _, p := range e.workingProducts {
		if !p.Deleted {
			skuCount[strings.TrimSpace(p.SKU)]++
		}
	}
	reported := map[string]bool{}

	for _, p := range e.workingProducts {
		if p.Deleted {
			continue
		}
		label := productLabel(p)
		sku := strings.TrimSpace(p.SKU)

		switch {
		case sku == "":
			out = append(out, domain.Violation{
				Code: domain.ViolationEmptySKU, Entity: label,
				Message: "hay un producto sin SKU",
			})
		case skuCount[sku] > 1 && !reported[sku]:
			reported[sku] = true
			out = append(out, domain.Violation{
				Code: domain.ViolationDuplicateSKU, Entity: label,
				Message: fmt.Sprintf("el SKU %s está repetido", sku),
			})
		}

		switch {
		case p.Category == "":
			out = append(out, domain.Violation{
				Code: domain.ViolationMissingCategory, Entity: label,
				Message: fmt.Sprintf("el producto %s no tiene categoría", displaySKU(p)),
			})
		case !active[p.Category]:
			out = append(out, domain.Violation{
				Code: domain.ViolationUnknownCategory, Entity: label,
				Message: fmt.Sprintf("el producto %s usa la categoría inexistente %q", displaySKU(p), p.Category),
			})
		}

		if len(p.Localizations) == 0 {
			out = append(out, domain.Violation{
				Code: domain.ViolationNoLocalization, Entity: label,
				Message: fmt.Sprintf("el producto %s no tiene localizaciones", displaySKU(p)),
			})
		}

		if st := e.productStateLocked(p); !st.Dirty {
			continue
		}
		for _, l := range p.Localizations {
			if strings.TrimSpace(l.ProductName) == "" {
				out = append(out, domain.Violation{
					Code: domain.ViolationEmptyField, Entity: label,
					Message: fmt.Sprintf("el producto %s no tiene nombre en %s", displaySKU(p), l.Key()),
				})
			}
			if _, err := currency.ParseISO(l.Currency); err != nil {
				out = append(out, domain.Violation{
					Code: domain.ViolationInvalidCurrency, Entity: label,
					Message: fmt.Sprintf("el producto %s tiene una moneda inválida %q en %s", displaySKU(p), l.Currency, l.Key()),
				})
			}
		}
	}
	return out
}

func productLabel(p entity.Product) string {
	return "product " + p.ID.String()
}

func categoryLabel(c entity.Category) string {
	return "category " + c.ID.String()
}

func displaySKU(p entity.Product) string {
	if s := strings.TrimSpace(p.SKU); s != "" {
		return s
	}
	return p.ID.String()
}
