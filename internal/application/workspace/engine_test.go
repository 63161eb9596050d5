package workspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var enUS = entity.LocaleKey{Lang: "en", Country: "us"}

func loc(lang, country, name, price string) entity.Localization {
	return entity.Localization{
		Lang: lang, Country: country, ProductName: name,
		Price: decimal.RequireFromString(price), Currency: "USD",
	}
}

func seedCatalog() *memory.Catalog {
	cat := memory.NewCatalog(2)
	cat.Seed([]entity.Product{
		{SKU: "A1", Category: "Tools", Status: entity.ProductStatusActive, QuantityInStock: 3,
			Localizations: []entity.Localization{loc("en", "us", "Hammer", "12.50")}},
		{SKU: "B2", Category: "Garden", Status: entity.ProductStatusActive, QuantityInStock: 8,
			Localizations: []entity.Localization{loc("en", "us", "Rake", "20"), loc("es", "mx", "Rastrillo", "350")}},
		{SKU: "C3", Category: "Tools", Status: entity.ProductStatusInactive,
			Localizations: []entity.Localization{loc("en", "us", "Saw", "30")}},
	}, []entity.Category{
		{Name: "Tools", Translations: []entity.Translation{{Lang: "es", Text: "Herramientas"}}},
		{Name: "Garden"},
		{Name: "Seasonal"},
	}, nil)
	return cat
}

func newEngine(t *testing.T) (*workspace.Engine, *memory.Catalog) {
	t.Helper()
	cat := seedCatalog()
	eng := workspace.NewEngine(cat.Products(), cat.Categories(), logger.Nop())
	require.NoError(t, eng.Refresh(context.Background()))
	cat.ResetCalls()
	return eng, cat
}

func product(t *testing.T, eng *workspace.Engine, sku string) workspace.ProductRow {
	t.Helper()
	row, err := eng.Product(entity.Persisted(sku))
	require.NoError(t, err)
	return row
}

func violationCodes(vs []domain.Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Code)
	}
	return out
}

func appErr(msg string) error {
	return &domain.GatewayError{Kind: domain.KindApplication, Message: msg}
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh y estado de filas
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_RecorreTodasLasPaginas(t *testing.T) {
	cat := seedCatalog()
	eng := workspace.NewEngine(cat.Products(), cat.Categories(), logger.Nop())

	require.NoError(t, eng.Refresh(context.Background()))

	assert.Len(t, eng.Products(), 3)
	assert.Len(t, eng.Categories(), 3)
	assert.Equal(t, []string{"ListProducts:", "ListProducts:2", "ListCategories:", "ListCategories:2"}, cat.Calls())
	assert.False(t, eng.HasChanges())
}

func TestAddProduct_LocalizacionPorDefecto(t *testing.T) {
	eng, _ := newEngine(t)

	p := eng.AddProduct("", "")
	assert.True(t, p.ID.IsPending())
	require.Len(t, p.Localizations, 1)
	l := p.Localizations[0]
	assert.Equal(t, "en", l.Lang)
	assert.Equal(t, "us", l.Country)
	assert.True(t, l.Price.IsZero())
	assert.Equal(t, "USD", l.Currency)

	row, err := eng.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, workspace.RowState{New: true, Dirty: true}, row.State)
}

func TestRevertProduct_VuelveAlBaseline(t *testing.T) {
	eng, _ := newEngine(t)
	id := entity.Persisted("A1")

	require.NoError(t, eng.EditProductField(id, entity.FieldQuantityInStock, "99"))
	_, err := eng.MarkProductDeleted(id)
	require.NoError(t, err)
	assert.Equal(t, workspace.RowState{Deleted: true, Dirty: true}, product(t, eng, "A1").State)

	require.NoError(t, eng.RevertProduct(id))
	row := product(t, eng, "A1")
	assert.Equal(t, workspace.RowState{}, row.State)
	assert.Equal(t, 3, row.QuantityInStock)
}

func TestDiscardChanges(t *testing.T) {
	eng, _ := newEngine(t)
	eng.AddProduct("N1", "Tools")
	require.NoError(t, eng.EditProductField(entity.Persisted("B2"), entity.FieldImageURL, "http://img/rake.png"))
	require.True(t, eng.HasChanges())

	eng.DiscardChanges()
	assert.False(t, eng.HasChanges())
	assert.Len(t, eng.Products(), 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestEditProductField(t *testing.T) {
	eng, _ := newEngine(t)
	id := entity.Persisted("A1")

	assert.ErrorIs(t, eng.EditProductField(id, entity.FieldSKU, "Z9"), domain.ErrImmutableField)
	assert.ErrorIs(t, eng.EditProductField(id, entity.FieldQuantityInStock, "-1"), domain.ErrInvalidInput)
	assert.ErrorIs(t, eng.EditProductField(id, entity.FieldQuantityInStock, "tres"), domain.ErrInvalidInput)
	assert.ErrorIs(t, eng.EditProductField(id, entity.FieldProductStatus, "SOLD"), domain.ErrInvalidInput)
	assert.ErrorIs(t, eng.EditProductField(id, "color", "red"), domain.ErrInvalidInput)
	assert.ErrorIs(t, eng.EditProductField(entity.Persisted("nope"), entity.FieldImageURL, "x"), domain.ErrNotFound)

	require.NoError(t, eng.EditProductField(id, entity.FieldProductStatus, "discontinued"))
	assert.Equal(t, entity.ProductStatusDiscontinued, product(t, eng, "A1").Status)

	p := eng.AddProduct("", "Tools")
	require.NoError(t, eng.EditProductField(p.ID, entity.FieldSKU, " N1 "))
	row, err := eng.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "N1", row.SKU)
}

func TestLocalizaciones_ClaveUnica(t *testing.T) {
	eng, _ := newEngine(t)
	id := entity.Persisted("B2")

	err := eng.AddLocalization(id, loc("EN", "US", "Otra", "1"))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	err = eng.EditLocalization(id, entity.LocaleKey{Lang: "es", Country: "mx"}, entity.FieldCountry, "us")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey, "cambiar la clave a una existente se rechaza")

	assert.ErrorIs(t, eng.EditLocalization(id, enUS, entity.FieldPrice, "-3"), domain.ErrInvalidInput)
	require.NoError(t, eng.EditLocalization(id, enUS, entity.FieldPrice, "21.00"))
	assert.True(t, product(t, eng, "B2").State.Dirty)
}

func TestRemoveLocalization_NoQuitaLaUltima(t *testing.T) {
	eng, _ := newEngine(t)

	err := eng.RemoveLocalization(entity.Persisted("A1"), enUS)
	assert.ErrorIs(t, err, domain.ErrLastLocalization)
	assert.Len(t, product(t, eng, "A1").Localizations, 1)

	require.NoError(t, eng.RemoveLocalization(entity.Persisted("B2"), enUS))
	assert.ErrorIs(t, eng.RemoveLocalization(entity.Persisted("B2"), entity.LocaleKey{Lang: "es", Country: "mx"}),
		domain.ErrLastLocalization)
}

func TestAddCategory_NombreDuplicadoSinDistinguirMayusculas(t *testing.T) {
	eng, _ := newEngine(t)

	_, err := eng.AddCategory("  tOOLS ")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = eng.AddCategory("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = eng.MarkCategoryDeleted(entity.Persisted("Seasonal"))
	require.NoError(t, err)
	c, err := eng.AddCategory("seasonal")
	require.NoError(t, err, "una categoría marcada para borrar no reserva el nombre")
	assert.True(t, c.IsNew())
	assert.Empty(t, c.Translations)
}

func TestTraducciones(t *testing.T) {
	eng, _ := newEngine(t)
	id := entity.Persisted("Tools")

	assert.ErrorIs(t, eng.AddTranslation(id, "esp", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, eng.AddTranslation(id, "e1", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, eng.AddTranslation(id, "ES", "Otra"), domain.ErrDuplicateKey)
	assert.ErrorIs(t, eng.EditTranslation(id, "fr", "Outils"), domain.ErrNotFound)

	require.NoError(t, eng.AddTranslation(id, "FR", "Outils"))
	require.NoError(t, eng.EditTranslation(id, "es", "Herramienta"))
	require.NoError(t, eng.RemoveTranslation(id, "fr"))

	row, err := eng.Category(id)
	require.NoError(t, err)
	assert.True(t, row.State.Dirty)
	assert.Equal(t, []entity.Translation{{Lang: "es", Text: "Herramienta"}}, row.Translations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CategoriaVaciaBloqueaGuardado(t *testing.T) {
	eng, cat := newEngine(t)
	require.NoError(t, eng.EditProductField(entity.Persisted("A1"), entity.FieldCategory, ""))

	vs := eng.Validate()
	require.Len(t, vs, 1)
	assert.Equal(t, domain.ViolationMissingCategory, vs[0].Code)

	_, err := eng.Save(context.Background())
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, cat.Calls())
}

func TestValidate_SKUDuplicadoNombraElValor(t *testing.T) {
	eng, _ := newEngine(t)
	p := eng.AddProduct("DUP", "Tools")
	require.NoError(t, eng.EditLocalization(p.ID, enUS, entity.FieldProductName, "Nuevo"))
	q := eng.AddProduct("DUP", "Tools")
	require.NoError(t, eng.EditLocalization(q.ID, enUS, entity.FieldProductName, "Otro"))

	vs := eng.Validate()
	require.Equal(t, []string{domain.ViolationDuplicateSKU}, violationCodes(vs))
	assert.Contains(t, vs[0].Message, "DUP")
}

func TestValidate_SKUNuevoIgualAUnoExistente(t *testing.T) {
	eng, _ := newEngine(t)
	p := eng.AddProduct("A1", "Tools")
	require.NoError(t, eng.EditLocalization(p.ID, enUS, entity.FieldProductName, "Martillo"))

	vs := eng.Validate()
	require.Equal(t, []string{domain.ViolationDuplicateSKU}, violationCodes(vs))
	assert.Contains(t, vs[0].Message, "A1")

	// Marcar el existente para borrar libera el SKU.
	_, err := eng.MarkProductDeleted(entity.Persisted("A1"))
	require.NoError(t, err)
	assert.Empty(t, eng.Validate())
}

func TestValidate_CategoriaBorradaConProductosVivos(t *testing.T) {
	eng, cat := newEngine(t)
	_, err := eng.MarkCategoryDeleted(entity.Persisted("Garden"))
	require.NoError(t, err)

	vs := eng.Validate()
	require.Equal(t, []string{domain.ViolationUnknownCategory}, violationCodes(vs))
	assert.Contains(t, vs[0].Message, "B2")

	_, err = eng.Save(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, cat.Calls(), "una validación fallida no toca la red")
}

func TestValidate_CategoriaReferenciadaSoloPorBorrados(t *testing.T) {
	eng, cat := newEngine(t)
	_, err := eng.MarkProductDeleted(entity.Persisted("B2"))
	require.NoError(t, err)
	_, err = eng.MarkCategoryDeleted(entity.Persisted("Garden"))
	require.NoError(t, err)

	assert.Empty(t, eng.Validate())

	report, err := eng.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Deleted)
	assert.ElementsMatch(t, []string{"DeleteProduct:B2", "DeleteCategory:Garden"}, cat.MutationCalls())
}

func TestValidate_CamposObligatoriosDeFilasModificadas(t *testing.T) {
	eng, _ := newEngine(t)
	p := eng.AddProduct("N1", "Tools")
	require.NoError(t, eng.EditLocalization(p.ID, enUS, entity.FieldCurrency, "XYZ1"))

	codes := violationCodes(eng.Validate())
	assert.ElementsMatch(t, []string{domain.ViolationEmptyField, domain.ViolationInvalidCurrency}, codes)

	p2 := eng.AddProduct("", "Tools")
	require.NoError(t, eng.EditLocalization(p2.ID, enUS, entity.FieldProductName, "x"))
	assert.Contains(t, violationCodes(eng.Validate()), domain.ViolationEmptySKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardado
// ──────────────────────────────────────────────────────────────────────────────

func TestSave_SinCambiosNoLlamaNada(t *testing.T) {
	eng, cat := newEngine(t)
	before := eng.Products()

	report, err := eng.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workspace.SaveReport{}, report)
	assert.Empty(t, cat.Calls())
	assert.Equal(t, before, eng.Products())
}

func TestSave_EdicionRevertidaNoEsUpdate(t *testing.T) {
	eng, cat := newEngine(t)
	id := entity.Persisted("A1")
	require.NoError(t, eng.EditProductField(id, entity.FieldQuantityInStock, "50"))
	require.NoError(t, eng.EditProductField(id, entity.FieldQuantityInStock, "3"))
	require.NoError(t, eng.EditLocalization(id, enUS, entity.FieldPrice, "13"))
	require.NoError(t, eng.EditLocalization(id, enUS, entity.FieldPrice, "12.5"))

	assert.False(t, product(t, eng, "A1").State.Dirty, "12.5 y 12.50 son el mismo precio")
	_, err := eng.Save(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Calls())
}

func TestSave_NuevoYBorradoSeDescartaSinLlamadas(t *testing.T) {
	eng, cat := newEngine(t)
	p := eng.AddProduct("N1", "Tools")
	_, err := eng.MarkProductDeleted(p.ID)
	require.NoError(t, err)
	c, err := eng.AddCategory("Toys")
	require.NoError(t, err)
	_, err = eng.MarkCategoryDeleted(c.ID)
	require.NoError(t, err)

	report, err := eng.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Dropped)
	assert.Empty(t, cat.Calls())
	assert.Len(t, eng.Products(), 3)
	assert.Len(t, eng.Categories(), 3)
}

func TestSave_ClasificaYResincroniza(t *testing.T) {
	eng, cat := newEngine(t)

	c, err := eng.AddCategory("Toys")
	require.NoError(t, err)
	require.NoError(t, eng.AddTranslation(c.ID, "es", "Juguetes"))

	p := eng.AddProduct("N1", "Toys")
	require.NoError(t, eng.EditLocalization(p.ID, enUS, entity.FieldProductName, "Yo-yo"))
	require.NoError(t, eng.EditProductField(entity.Persisted("A1"), entity.FieldQuantityInStock, "10"))
	_, err = eng.MarkProductDeleted(entity.Persisted("C3"))
	require.NoError(t, err)

	report, err := eng.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workspace.SaveReport{Created: 2, Updated: 1, Deleted: 1}, report)

	assert.ElementsMatch(t, []string{
		"CreateCategory:Toys", "UpsertCategoryTranslation:Toys/es",
		"CreateProduct:N1", "UpdateProduct:A1", "DeleteProduct:C3",
	}, cat.MutationCalls())

	// Tras el refetch las filas nuevas pasan a persistidas y nada queda sucio.
	assert.False(t, eng.HasChanges())
	row := product(t, eng, "N1")
	assert.True(t, row.ID.IsPersisted())
	assert.Equal(t, 10, product(t, eng, "A1").QuantityInStock)
	_, err = eng.Product(entity.Persisted("C3"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_FallaParcialReportaYResincroniza(t *testing.T) {
	eng, cat := newEngine(t)
	cat.FailOn("DeleteCategory", "Seasonal", appErr("Category Seasonal is locked"))

	require.NoError(t, eng.EditProductField(entity.Persisted("A1"), entity.FieldQuantityInStock, "7"))
	_, err := eng.MarkCategoryDeleted(entity.Persisted("Seasonal"))
	require.NoError(t, err)

	report, err := eng.Save(context.Background())
	require.Error(t, err)

	var saveErr *domain.SaveError
	require.ErrorAs(t, err, &saveErr)
	require.Len(t, saveErr.Failures, 1)
	assert.Equal(t, "Category Seasonal is locked", saveErr.Failures[0].Message)
	assert.Equal(t, "delete", saveErr.Failures[0].Op)
	assert.ErrorIs(t, err, domain.ErrApplication)
	assert.Equal(t, 1, report.Updated)

	// El refetch muestra la verdad del servidor.
	assert.Equal(t, 7, product(t, eng, "A1").QuantityInStock)
	row, err := eng.Category(entity.Persisted("Seasonal"))
	require.NoError(t, err)
	assert.False(t, row.Deleted)
	assert.False(t, eng.HasChanges())
}

func TestSave_CompensaLoYaAplicadoDeUnProducto(t *testing.T) {
	eng, cat := newEngine(t)
	cat.FailOn("AddLocalizations", "A1", appErr("localization rejected"))
	id := entity.Persisted("A1")

	require.NoError(t, eng.EditProductField(id, entity.FieldQuantityInStock, "5"))
	require.NoError(t, eng.AddLocalization(id, loc("es", "mx", "Martillo", "200")))

	_, err := eng.Save(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"UpdateProduct:A1", "AddLocalizations:A1", "UpdateProduct:A1"}, cat.MutationCalls(),
		"el parche aplicado se revierte")
	server, ok := cat.Product("A1")
	require.True(t, ok)
	assert.Equal(t, 3, server.QuantityInStock)
	assert.Len(t, server.Localizations, 1)
}

func TestSave_LocalizacionesAltasAntesQueBajas(t *testing.T) {
	eng, cat := newEngine(t)
	id := entity.Persisted("B2")

	require.NoError(t, eng.RemoveLocalization(id, enUS))
	require.NoError(t, eng.AddLocalization(id, loc("pt", "br", "Ancinho", "90")))
	require.NoError(t, eng.EditLocalization(id, entity.LocaleKey{Lang: "es", Country: "mx"}, entity.FieldProductName, "Rastrillo grande"))

	_, err := eng.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AddLocalizations:B2", "UpdateLocalizations:B2", "RemoveLocalization:B2/en-us"}, cat.MutationCalls())

	server, _ := cat.Product("B2")
	require.Len(t, server.Localizations, 2)
	l, _, ok := server.Localization(entity.LocaleKey{Lang: "es", Country: "mx"})
	require.True(t, ok)
	assert.Equal(t, "Rastrillo grande", l.ProductName)
}

func TestSave_CategoriaNuevaSeBorraSiFallaUnaTraduccion(t *testing.T) {
	eng, cat := newEngine(t)
	cat.FailOn("UpsertCategoryTranslation", "Toys/es", appErr("translation rejected"))

	c, err := eng.AddCategory("Toys")
	require.NoError(t, err)
	require.NoError(t, eng.AddTranslation(c.ID, "es", "Juguetes"))

	_, err = eng.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"CreateCategory:Toys", "UpsertCategoryTranslation:Toys/es", "DeleteCategory:Toys"}, cat.MutationCalls())
	_, ok := cat.Category("Toys")
	assert.False(t, ok)
}

func TestSave_TraduccionesDeCategoriaExistente(t *testing.T) {
	eng, cat := newEngine(t)
	id := entity.Persisted("Tools")
	require.NoError(t, eng.RemoveTranslation(id, "es"))
	require.NoError(t, eng.AddTranslation(id, "fr", "Outils"))

	_, err := eng.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"UpsertCategoryTranslation:Tools/fr", "RemoveCategoryTranslation:Tools/es"}, cat.MutationCalls())

	server, _ := cat.Category("Tools")
	assert.Equal(t, []entity.Translation{{Lang: "fr", Text: "Outils"}}, server.Translations)
}

// blockingProducts retiene Update hasta que el test lo libera.
type blockingProducts struct {
	*memory.ProductStore
	started chan struct{}
	release chan struct{}
}

func (b *blockingProducts) Update(ctx context.Context, sku string, patch entity.ProductPatch) error {
	close(b.started)
	<-b.release
	return b.ProductStore.Update(ctx, sku, patch)
}

func TestSave_SegundoGuardadoMientrasHayUnoEnCurso(t *testing.T) {
	cat := seedCatalog()
	products := &blockingProducts{ProductStore: cat.Products(), started: make(chan struct{}), release: make(chan struct{})}
	eng := workspace.NewEngine(products, cat.Categories(), logger.Nop())
	require.NoError(t, eng.Refresh(context.Background()))
	require.NoError(t, eng.EditProductField(entity.Persisted("A1"), entity.FieldQuantityInStock, "4"))

	done := make(chan error, 1)
	go func() {
		_, err := eng.Save(context.Background())
		done <- err
	}()

	select {
	case <-products.started:
	case <-time.After(5 * time.Second):
		t.Fatal("el guardado no arrancó")
	}
	assert.True(t, eng.Saving())
	_, err := eng.Save(context.Background())
	assert.ErrorIs(t, err, domain.ErrSaveInProgress)

	close(products.release)
	require.NoError(t, <-done)
	assert.False(t, eng.Saving())
}

func TestSave_CancelacionNoInterrumpe(t *testing.T) {
	eng, cat := newEngine(t)
	require.NoError(t, eng.EditProductField(entity.Persisted("A1"), entity.FieldImageURL, "http://img/a1.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := eng.Save(ctx)
	require.NoError(t, err)

	server, _ := cat.Product("A1")
	assert.Equal(t, "http://img/a1.png", server.ImageURL)
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge de búsquedas
// ──────────────────────────────────────────────────────────────────────────────

func TestMergeProducts_ConservaEdicionesLocales(t *testing.T) {
	eng, cat := newEngine(t)
	require.NoError(t, eng.EditProductField(entity.Persisted("A1"), entity.FieldQuantityInStock, "77"))

	fetched, err := cat.Products().Search(context.Background(), "hammer", "")
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, 3, fetched.Items[0].QuantityInStock)

	merged := eng.MergeProducts(fetched.Items)
	require.Len(t, merged, 1)
	assert.Equal(t, 77, merged[0].QuantityInStock)
	assert.Equal(t, 77, product(t, eng, "A1").QuantityInStock, "la copia de trabajo no se pisa")
}

func TestMergeProducts_IncorporaDesconocidos(t *testing.T) {
	eng, _ := newEngine(t)
	unknown := entity.Product{
		ID: entity.Persisted("Z9"), SKU: "Z9", Category: "Tools", Status: entity.ProductStatusActive,
		Localizations: []entity.Localization{loc("en", "us", "Drill", "99")},
	}

	merged := eng.MergeProducts([]entity.Product{unknown})
	require.Len(t, merged, 1)
	row := product(t, eng, "Z9")
	assert.Equal(t, workspace.RowState{}, row.State, "entra al baseline y a la copia de trabajo")
}

func TestMergeCategories_ConservaMarcaDeBorrado(t *testing.T) {
	eng, cat := newEngine(t)
	_, err := eng.MarkCategoryDeleted(entity.Persisted("Seasonal"))
	require.NoError(t, err)

	found, err := cat.Categories().Search(context.Background(), "season")
	require.NoError(t, err)
	merged := eng.MergeCategories(found)
	require.Len(t, merged, 1)
	assert.True(t, merged[0].Deleted)
}
