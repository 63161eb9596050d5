package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-admin/internal/application/auth"
	"github.com/jhoicas/Catalogo-admin/internal/application/search"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Provider *auth.CredentialProvider
	Engine   *workspace.Engine
	Listings *search.Listings
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.Provider, func(c *fiber.Ctx) error {
		return deps.Engine.Refresh(c.UserContext())
	})
	session := api.Group("/session")
	session.Get("/", sessionHandler.Status)
	session.Post("/login", sessionHandler.Login)
	session.Post("/logout", sessionHandler.Logout)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", RequireSession(deps.Provider))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Engine)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.EditField)
	products.Delete("/:id", productHandler.Remove)
	products.Post("/:id/delete-toggle", productHandler.ToggleDeleted)
	products.Post("/:id/revert", productHandler.Revert)
	products.Post("/:id/localizations", productHandler.AddLocalization)
	products.Patch("/:id/localizations/:lang/:country", productHandler.EditLocalization)
	products.Delete("/:id/localizations/:lang/:country", productHandler.RemoveLocalization)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.Engine)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Delete("/:id", categoryHandler.Remove)
	categories.Post("/:id/delete-toggle", categoryHandler.ToggleDeleted)
	categories.Post("/:id/revert", categoryHandler.Revert)
	categories.Post("/:id/translations", categoryHandler.AddTranslation)
	categories.Put("/:id/translations/:lang", categoryHandler.EditTranslation)
	categories.Delete("/:id/translations/:lang", categoryHandler.RemoveTranslation)

	ws := protected.Group("/workspace")
	workspaceHandler := NewWorkspaceHandler(deps.Engine)
	ws.Get("/changes", workspaceHandler.Changes)
	ws.Post("/refresh", workspaceHandler.Refresh)
	ws.Post("/validate", workspaceHandler.Validate)
	ws.Post("/save", workspaceHandler.Save)
	ws.Post("/discard", workspaceHandler.Discard)

	listings := protected.Group("/listings")
	listingHandler := NewListingHandler(deps.Listings, deps.Engine)
	listings.Get("/:list", listingHandler.Get)
	listings.Post("/:list/search", listingHandler.Search)
	listings.Post("/:list/more", listingHandler.More)
	listings.Post("/:list/clear", listingHandler.Clear)
}
