package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-admin/internal/application/search"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

func TestParseQuery(t *testing.T) {
	cases := []struct {
		raw  string
		want search.Query
	}{
		{"", search.Query{Kind: search.KindAll}},
		{"   ", search.Query{Kind: search.KindAll}},
		{"hammer", search.Query{Kind: search.KindText, Raw: "hammer", Text: "hammer"}},
		{"sku:A1, B2,,A1", search.Query{Kind: search.KindSKUs, Raw: "sku:A1, B2,,A1", SKUs: []string{"A1", "B2"}}},
		{"SKU:a1", search.Query{Kind: search.KindSKUs, Raw: "SKU:a1", SKUs: []string{"a1"}}},
		{"category: Tools", search.Query{Kind: search.KindCategory, Raw: "category: Tools", Text: "Tools"}},
		{"order:ORD-7", search.Query{Kind: search.KindOrder, Raw: "order:ORD-7", Text: "ORD-7"}},
		{"sku:", search.Query{Kind: search.KindAll, Raw: "sku:"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, search.ParseQuery(c.raw), c.raw)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicio y listas sobre el catálogo en memoria
// ──────────────────────────────────────────────────────────────────────────────

func product(sku, category, name string) entity.Product {
	return entity.Product{
		SKU: sku, Category: category, Status: entity.ProductStatusActive,
		Localizations: []entity.Localization{{
			Lang: "en", Country: "us", ProductName: name, Price: decimal.NewFromInt(10), Currency: "USD",
		}},
	}
}

type fixture struct {
	cat     *memory.Catalog
	engine  *workspace.Engine
	service *search.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cat := memory.NewCatalog(2)
	cat.Seed([]entity.Product{
		product("A1", "Tools", "Hammer"),
		product("A2", "Tools", "Claw hammer"),
		product("A3", "Tools", "Sledge hammer"),
		product("B1", "Garden", "Rake"),
		product("B2", "Garden", "Hose"),
	}, []entity.Category{{Name: "Tools"}, {Name: "Garden"}}, []entity.OrderEvent{
		{EventID: "e1", OrderID: "ORD-1", EventType: "PAYMENT_CREATED", CreatedAt: time.Unix(1, 0)},
		{EventID: "e2", OrderID: "ORD-2", EventType: "PAYMENT_CREATED", CreatedAt: time.Unix(2, 0)},
		{EventID: "e3", OrderID: "ORD-1", EventType: "PAYMENT_SUCCEEDED", CreatedAt: time.Unix(3, 0)},
	})
	eng := workspace.NewEngine(cat.Products(), cat.Categories(), logger.Nop())
	require.NoError(t, eng.Refresh(context.Background()))
	svc := search.NewService(cat.Products(), cat.Categories(), cat.Events(), eng, logger.Nop())
	return fixture{cat: cat, engine: eng, service: svc}
}

func skus(items []entity.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.SKU)
	}
	return out
}

func TestProducts_DespachaSegunLaDirectiva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.service.Products(ctx, search.ParseQuery("sku:B2,A1,ZZ"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"B2", "A1"}, skus(page.Items))
	assert.False(t, page.HasMore())

	page, err = f.service.Products(ctx, search.ParseQuery("category:Garden"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B2"}, skus(page.Items))

	page, err = f.service.Products(ctx, search.ParseQuery("hammer"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, skus(page.Items))
	assert.True(t, page.HasMore())

	_, err = f.service.Products(ctx, search.ParseQuery("order:ORD-1"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProducts_ResultadoFiltradoDevuelveLaVersionDeTrabajo(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.EditProductField(entity.Persisted("B1"), entity.FieldQuantityInStock, "42"))

	page, err := f.service.Products(context.Background(), search.ParseQuery("sku:B1"), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 42, page.Items[0].QuantityInStock)

	server, _ := f.cat.Product("B1")
	assert.Zero(t, server.QuantityInStock)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.service.Categories(ctx, search.ParseQuery("category:Garden"), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Garden", page.Items[0].Name)

	page, err = f.service.Categories(ctx, search.ParseQuery("category:Nada"), "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = f.service.Categories(ctx, search.ParseQuery("too"), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Tools", page.Items[0].Name)
}

func TestOrderEvents_FiltraPorOrden(t *testing.T) {
	f := newFixture(t)

	page, err := f.service.OrderEvents(context.Background(), search.ParseQuery("order:ORD-1"), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "e1", page.Items[0].EventID)
	assert.Equal(t, "e3", page.Items[1].EventID)

	page, err = f.service.OrderEvents(context.Background(), search.ParseQuery(""), "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore())
}

func TestListing_LoadMoreContinuaLaConsultaFiltrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.service.NewListings().Products

	require.NoError(t, l.Apply(ctx, "hammer"))
	f.cat.ResetCalls()
	require.NoError(t, l.LoadMore(ctx))

	assert.Equal(t, []string{"SearchProducts:hammer"}, f.cat.Calls(), "no vuelve al listado sin filtro")
	st := l.State()
	assert.Equal(t, []string{"A1", "A2", "A3"}, skus(st.Items))
	assert.False(t, st.HasMore)

	// Agotada: LoadMore no hace llamadas.
	f.cat.ResetCalls()
	require.NoError(t, l.LoadMore(ctx))
	assert.Empty(t, f.cat.Calls())
}

func TestListing_ClearReiniciaDesdeLaPrimeraPagina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.service.NewListings().Products

	require.NoError(t, l.LoadMore(ctx))
	require.NoError(t, l.LoadMore(ctx))
	assert.Equal(t, []string{"A1", "A2", "A3", "B1"}, skus(l.State().Items))

	require.NoError(t, l.Apply(ctx, "category:Garden"))
	assert.Equal(t, []string{"B1", "B2"}, skus(l.State().Items))

	f.cat.ResetCalls()
	require.NoError(t, l.Clear(ctx))
	assert.Equal(t, []string{"ListProducts:"}, f.cat.Calls(), "sin token viejo")
	st := l.State()
	assert.Equal(t, []string{"A1", "A2"}, skus(st.Items))
	assert.Equal(t, search.KindAll, st.Query.Kind)
	assert.True(t, st.HasMore)
}

func TestListing_SuperponeEdicionesPosteriores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := f.service.NewListings().Products
	require.NoError(t, l.Apply(ctx, "sku:A1"))

	require.NoError(t, f.engine.EditProductField(entity.Persisted("A1"), entity.FieldImageURL, "http://img/a1.png"))
	assert.Equal(t, "http://img/a1.png", l.State().Items[0].ImageURL)
}

func TestListing_UnaCargaALaVez(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	l := search.NewListing[int](func(ctx context.Context, q search.Query, token string) (entity.Page[int], error) {
		close(started)
		<-release
		return entity.Page[int]{Items: []int{1}}, nil
	}, nil)

	done := make(chan error, 1)
	go func() { done <- l.Apply(context.Background(), "") }()
	<-started

	assert.True(t, l.State().Loading)
	assert.ErrorIs(t, l.LoadMore(context.Background()), domain.ErrListingBusy)

	close(release)
	require.NoError(t, <-done)
	st := l.State()
	assert.False(t, st.Loading)
	assert.Equal(t, []int{1}, st.Items)
}
