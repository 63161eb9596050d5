package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Catalogo-admin/internal/application/auth"
	"github.com/jhoicas/Catalogo-admin/internal/application/search"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/infrastructure/graphql"
	"github.com/jhoicas/Catalogo-admin/internal/infrastructure/identity"
	"github.com/jhoicas/Catalogo-admin/internal/infrastructure/sqlite"
	"github.com/jhoicas/Catalogo-admin/pkg/config"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// components servicios armados a partir de la configuración. Close libera la base local.
type components struct {
	db       *sqlx.DB
	provider *auth.CredentialProvider
	engine   *workspace.Engine
	listings *search.Listings
}

func (c *components) Close() error { return c.db.Close() }

// openSession arma solo lo necesario para gestionar la sesión (login, logout, status).
func openSession(ctx context.Context, cfg *config.Config, log *logger.Logger) (*components, error) {
	db, err := sqlite.Open(cfg.Session.DBPath)
	if err != nil {
		return nil, err
	}
	store, err := sqlite.NewSessionStore(db, cfg.Session.Secret)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	backend := identity.NewOAuthBackend(identity.Config{
		TokenURL:     cfg.Identity.TokenURL,
		ClientID:     cfg.Identity.ClientID,
		ClientSecret: cfg.Identity.ClientSecret,
		Scopes:       cfg.Identity.Scopes,
		UseIDToken:   cfg.Identity.UseIDToken,
		Timeout:      cfg.Gateway.Timeout,
	}, log)
	provider := auth.NewCredentialProvider(backend, store, cfg.Identity.RefreshLeeway, log)
	if err := provider.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("restaurar sesión: %w", err)
	}
	return &components{db: db, provider: provider}, nil
}

// openAll agrega el gateway, el motor del conjunto de trabajo y las listas.
func openAll(ctx context.Context, cfg *config.Config, log *logger.Logger) (*components, error) {
	comp, err := openSession(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	client := graphql.NewClient(cfg.Gateway.URL, cfg.Gateway.Timeout, comp.provider, log,
		graphql.WithUnauthenticatedHandler(func(ctx context.Context) {
			if err := comp.provider.Logout(context.WithoutCancel(ctx)); err != nil {
				log.Warn().Err(err).Msg("limpiar sesión rechazada")
			}
		}))
	products := graphql.NewProductRepository(client, cfg.App.PageSize)
	categories := graphql.NewCategoryRepository(client, cfg.App.PageSize)
	events := graphql.NewOrderEventRepository(client, cfg.App.PageSize)

	comp.engine = workspace.NewEngine(products, categories, log)
	comp.listings = search.NewService(products, categories, events, comp.engine, log).NewListings()
	return comp, nil
}
