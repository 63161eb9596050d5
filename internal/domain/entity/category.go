package entity

// Category categoría del catálogo; Name es su identificador estable una vez persistida.
type Category struct {
	ID           Identity
	Name         string
	Translations []Translation
	Deleted      bool
}

// IsNew indica si la categoría aún no existe en el servidor.
func (c Category) IsNew() bool { return c.ID.IsPending() }

func (c Category) Clone() Category {
	out := c
	out.Translations = make([]Translation, len(c.Translations))
	copy(out.Translations, c.Translations)
	return out
}

// Translation busca la traducción de un idioma.
func (c Category) Translation(lang string) (Translation, int, bool) {
	for i, t := range c.Translations {
		if t.Lang == lang {
			return t, i, true
		}
	}
	return Translation{}, -1, false
}

// Translation texto de la categoría en un idioma (Lang: exactamente dos letras).
type Translation struct {
	Lang string
	Text string
}
