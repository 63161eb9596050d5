package entity

import "sort"

// Nombres de campo editables de un producto.
const (
	FieldSKU             = "sku"
	FieldCategory        = "category"
	FieldImageURL        = "imageUrl"
	FieldProductStatus   = "productStatus"
	FieldQuantityInStock = "quantityInStock"
)

// Nombres de campo editables de una localización.
const (
	FieldLang        = "lang"
	FieldCountry     = "country"
	FieldProductName = "productName"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCurrency    = "currency"
)

// ProductPatch cambios de campos escalares de un producto respecto al baseline.
// Un puntero nil significa "sin cambio"; solo viajan al servidor los campos no nil.
type ProductPatch struct {
	Category        *string
	ImageURL        *string
	Status          *ProductStatus
	QuantityInStock *int
}

// IsEmpty indica que el producto no tiene cambios escalares.
func (p ProductPatch) IsEmpty() bool {
	return p.Category == nil && p.ImageURL == nil && p.Status == nil && p.QuantityInStock == nil
}

// Fields nombres de los campos modificados, en orden estable.
func (p ProductPatch) Fields() []string {
	var out []string
	if p.Category != nil {
		out = append(out, FieldCategory)
	}
	if p.ImageURL != nil {
		out = append(out, FieldImageURL)
	}
	if p.Status != nil {
		out = append(out, FieldProductStatus)
	}
	if p.QuantityInStock != nil {
		out = append(out, FieldQuantityInStock)
	}
	return out
}

// DiffProduct construye el parche que lleva base a work. El SKU no participa: es la clave.
func DiffProduct(base, work Product) ProductPatch {
	var p ProductPatch
	if base.Category != work.Category {
		v := work.Category
		p.Category = &v
	}
	if base.ImageURL != work.ImageURL {
		v := work.ImageURL
		p.ImageURL = &v
	}
	if base.Status != work.Status {
		v := work.Status
		p.Status = &v
	}
	if base.QuantityInStock != work.QuantityInStock {
		v := work.QuantityInStock
		p.QuantityInStock = &v
	}
	return p
}

// RevertPatch parche que deshace p restaurando los valores de base.
func RevertPatch(p ProductPatch, base Product) ProductPatch {
	var r ProductPatch
	if p.Category != nil {
		v := base.Category
		r.Category = &v
	}
	if p.ImageURL != nil {
		v := base.ImageURL
		r.ImageURL = &v
	}
	if p.Status != nil {
		v := base.Status
		r.Status = &v
	}
	if p.QuantityInStock != nil {
		v := base.QuantityInStock
		r.QuantityInStock = &v
	}
	return r
}

// LocalizationDiff conjuntos de cambios de localizaciones de un producto.
// Updated lleva los valores de trabajo y Previous los del baseline, en el mismo orden.
type LocalizationDiff struct {
	Added    []Localization
	Updated  []Localization
	Previous []Localization
	Removed  []Localization
}

func (d LocalizationDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// DiffLocalizations compara por clave (lang, country); el orden de la lista no cuenta.
func DiffLocalizations(base, work []Localization) LocalizationDiff {
	var d LocalizationDiff
	baseByKey := make(map[LocaleKey]Localization, len(base))
	for _, l := range base {
		baseByKey[l.Key()] = l
	}
	seen := make(map[LocaleKey]bool, len(work))
	for _, l := range work {
		seen[l.Key()] = true
		prev, ok := baseByKey[l.Key()]
		switch {
		case !ok:
			d.Added = append(d.Added, l)
		case !prev.Equal(l):
			d.Updated = append(d.Updated, l)
			d.Previous = append(d.Previous, prev)
		}
	}
	for _, l := range base {
		if !seen[l.Key()] {
			d.Removed = append(d.Removed, l)
		}
	}
	return d
}

// TranslationDiff conjuntos de cambios de traducciones de una categoría.
// Upserted cubre altas y modificaciones (el gateway las trata igual).
type TranslationDiff struct {
	Upserted []Translation
	Previous map[string]Translation // valor de baseline de las modificadas
	Removed  []Translation
}

func (d TranslationDiff) IsEmpty() bool {
	return len(d.Upserted) == 0 && len(d.Removed) == 0
}

// DiffTranslations compara por Lang.
func DiffTranslations(base, work []Translation) TranslationDiff {
	d := TranslationDiff{Previous: map[string]Translation{}}
	baseByLang := make(map[string]Translation, len(base))
	for _, t := range base {
		baseByLang[t.Lang] = t
	}
	seen := make(map[string]bool, len(work))
	for _, t := range work {
		seen[t.Lang] = true
		prev, ok := baseByLang[t.Lang]
		if !ok || prev.Text != t.Text {
			d.Upserted = append(d.Upserted, t)
			if ok {
				d.Previous[t.Lang] = prev
			}
		}
	}
	for _, t := range base {
		if !seen[t.Lang] {
			d.Removed = append(d.Removed, t)
		}
	}
	sort.Slice(d.Removed, func(i, j int) bool { return d.Removed[i].Lang < d.Removed[j].Lang })
	return d
}

// ProductDirty indica si la copia de trabajo difiere del baseline.
func ProductDirty(base, work Product) bool {
	return base.SKU != work.SKU ||
		!DiffProduct(base, work).IsEmpty() ||
		!DiffLocalizations(base.Localizations, work.Localizations).IsEmpty()
}

// CategoryDirty indica si la copia de trabajo difiere del baseline.
func CategoryDirty(base, work Category) bool {
	return base.Name != work.Name || !DiffTranslations(base.Translations, work.Translations).IsEmpty()
}
