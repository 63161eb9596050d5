package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpRouter "github.com/jhoicas/Catalogo-admin/internal/interfaces/http"
	"github.com/jhoicas/Catalogo-admin/pkg/config"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func newServeCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Servir el panel por HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log.Info().
				Str("env", cfg.App.Env).
				Str("app", cfg.App.Name).
				Str("gateway", cfg.Gateway.URL).
				Msg("iniciando aplicación")

			comp, err := openAll(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer comp.Close()

			// Con sesión restaurada el conjunto de trabajo se carga al arrancar; sin sesión
			// se carga tras el login.
			if comp.provider.IsAuthenticated() {
				if err := comp.engine.Refresh(ctx); err != nil {
					log.Warn().Err(err).Msg("carga inicial del catálogo")
				}
			}

			app := fiber.New(fiber.Config{
				AppName:      cfg.App.Name,
				ReadTimeout:  time.Second * 10,
				WriteTimeout: cfg.Gateway.Timeout + time.Second*10,
				IdleTimeout:  time.Second * 60,
				UnescapePath: true,
			})
			app.Use(recover.New())

			// Swagger UI en local: http://localhost:<port>/docs (solo si se generó la doc)
			if _, err := os.Stat(swaggerFile); err == nil {
				app.Use(swagger.New(swagger.Config{
					BasePath: "/",
					FilePath: swaggerFile,
					Path:     "docs",
					Title:    "Catalog Admin API",
				}))
			}

			app.Get("/health", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
			})

			httpRouter.Router(app, httpRouter.RouterDeps{
				Provider: comp.provider,
				Engine:   comp.engine,
				Listings: comp.listings,
			})

			go func() {
				if err := app.Listen(cfg.HTTP.Addr()); err != nil {
					log.Error().Err(err).Msg("servidor HTTP finalizado")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("señal de apagado recibida, cerrando servidor...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("apagado del servidor")
			}

			log.Info().Msg("aplicación detenida")
			return nil
		},
	}
	return cmd
}

func newLoginCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión y guardarla para los próximos arranques",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("--username y --password (o ADMIN_PASSWORD) son requeridos")
			}
			comp, err := openSession(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer comp.Close()

			if _, err := comp.provider.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sesión iniciada como %s\n", comp.provider.Username())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "usuario del proveedor de identidad")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (por defecto ADMIN_PASSWORD)")
	return cmd
}

func newLogoutCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			comp, err := openSession(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer comp.Close()

			if err := comp.provider.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sesión cerrada")
			return nil
		},
	}
}

func newStatusCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Mostrar la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			comp, err := openSession(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer comp.Close()

			if !comp.provider.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "sin sesión")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sesión activa: %s\n", comp.provider.Username())
			return nil
		},
	}
}
