package workspace

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// foldName clave de comparación sin distinción de mayúsculas (Unicode).
// cases.Caser guarda estado, por eso se crea uno por llamada.
func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// AddCategory agrega una categoría nueva. El nombre no puede repetir (sin distinguir
// mayúsculas) el de otra categoría no marcada para borrar.
func (e *Engine) AddCategory(name string) (entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Category{}, fmt.Errorf("%w: el nombre de la categoría es obligatorio", domain.ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	key := foldName(name)
	for _, c := range e.workingCategories {
		if !c.Deleted && foldName(c.Name) == key {
			return entity.Category{}, fmt.Errorf("%w: %q ya existe como %q", domain.ErrDuplicateName, name, c.Name)
		}
	}
	c := entity.Category{ID: entity.Pending(e.newID()), Name: name}
	e.workingCategories = append(e.workingCategories, c)
	return c.Clone(), nil
}

// RemoveNewCategory descarta una categoría nueva sin llamada remota.
func (e *Engine) RemoveNewCategory(id entity.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingCategoryIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	if !id.IsPending() {
		return fmt.Errorf("%w: %s ya existe en el servidor; use la marca de borrado", domain.ErrInvalidInput, id)
	}
	e.workingCategories = append(e.workingCategories[:i], e.workingCategories[i+1:]...)
	return nil
}

// MarkCategoryDeleted alterna la marca de borrado y devuelve el nuevo valor.
func (e *Engine) MarkCategoryDeleted(id entity.Identity) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingCategoryIndex(id)
	if i < 0 {
		return false, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	e.workingCategories[i].Deleted = !e.workingCategories[i].Deleted
	return e.workingCategories[i].Deleted, nil
}

// AddTranslation agrega la traducción de un idioma que la categoría aún no tiene.
func (e *Engine) AddTranslation(id entity.Identity, lang, text string) error {
	lang, err := normalizeLang(lang)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingCategoryIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	c := &e.workingCategories[i]
	if _, _, ok := c.Translation(lang); ok {
		return fmt.Errorf("%w: traducción %s en %s", domain.ErrDuplicateKey, lang, id)
	}
	c.Translations = append(c.Translations, entity.Translation{Lang: lang, Text: text})
	return nil
}

// EditTranslation reemplaza el texto de una traducción existente.
func (e *Engine) EditTranslation(id entity.Identity, lang, text string) error {
	lang, err := normalizeLang(lang)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingCategoryIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	c := &e.workingCategories[i]
	_, j, ok := c.Translation(lang)
	if !ok {
		return fmt.Errorf("%w: traducción %s en %s", domain.ErrNotFound, lang, id)
	}
	c.Translations[j].Text = text
	return nil
}

// RemoveTranslation quita la traducción de un idioma.
func (e *Engine) RemoveTranslation(id entity.Identity, lang string) error {
	lang, err := normalizeLang(lang)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingCategoryIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	c := &e.workingCategories[i]
	_, j, ok := c.Translation(lang)
	if !ok {
		return fmt.Errorf("%w: traducción %s en %s", domain.ErrNotFound, lang, id)
	}
	ts := make([]entity.Translation, 0, len(c.Translations)-1)
	ts = append(ts, c.Translations[:j]...)
	c.Translations = append(ts, c.Translations[j+1:]...)
	return nil
}

// normalizeLang exige exactamente dos letras y las devuelve en minúscula.
func normalizeLang(lang string) (string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) != 2 || lang[0] < 'a' || lang[0] > 'z' || lang[1] < 'a' || lang[1] > 'z' {
		return "", fmt.Errorf("%w: idioma %q debe tener exactamente dos letras", domain.ErrInvalidInput, lang)
	}
	return lang, nil
}
