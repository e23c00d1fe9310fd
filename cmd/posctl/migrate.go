package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	Example: `  # Contra la base configurada en DATABASE_URL
  posctl migrate`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		pool, err := openPool(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := postgres.Migrate(cmd.Context(), pool, log.Component("migrate"))
		if err != nil {
			return err
		}
		log.Info().Int("applied", applied).Msg("migraciones al día")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
