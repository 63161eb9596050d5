package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Catalogo-admin/pkg/config"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	root := &cobra.Command{
		Use:           "catalog-admin",
		Short:         "Panel de administración del catálogo de productos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(cfg, log),
		newLoginCmd(cfg, log),
		newLogoutCmd(cfg, log),
		newStatusCmd(cfg, log),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("comando fallido")
		os.Exit(1)
	}
}
