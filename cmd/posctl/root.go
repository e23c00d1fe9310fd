package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-ledger-api/pkg/config"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "posctl",
	Short: "Herramientas de operación del POS ledger",
	Long: `posctl agrupa tareas que no pasan por la API HTTP:
aplicar migraciones, crear el primer administrador y revisar la configuración
efectiva (variables de entorno, .env o config.yaml).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute corre el comando raíz; cualquier error termina con código 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.New(logger.Config{Env: "development"})
		log.Error().Err(err).Msg("posctl")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig carga y valida la configuración común a todos los subcomandos.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "posctl"})
	return cfg, log, nil
}

// openPool exige el driver postgres: las tareas de posctl no tienen sentido en memoria.
func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return nil, fmt.Errorf("posctl requiere STORAGE_DRIVER=%s (actual: %s)", config.StoragePostgres, cfg.Storage.Driver)
	}
	return postgres.NewPool(ctx, cfg.DB)
}
