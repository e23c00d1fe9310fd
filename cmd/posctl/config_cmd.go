package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Muestra la configuración efectiva (sin secretos) y la valida",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		row := func(k string, v any) { fmt.Fprintf(w, "%s\t%v\n", k, v) }
		row("APP_ENV", cfg.App.Env)
		row("APP_NAME", cfg.App.Name)
		row("STORE_NAME", cfg.App.StoreName)
		row("LOG_LEVEL", cfg.Log.Level)
		row("STORAGE_DRIVER", cfg.Storage.Driver)
		row("DB", cfg.DB.Host+":"+fmt.Sprint(cfg.DB.Port)+"/"+cfg.DB.DBName)
		row("DATABASE_URL", redact(cfg.DB.DatabaseURL))
		row("DB_MAX_CONNS", cfg.DB.MaxConns)
		row("HTTP", cfg.HTTP.Addr())
		row("JWT_SECRET", redact(cfg.JWT.Secret))
		row("JWT_EXPIRATION_MINUTES", cfg.JWT.Expiration)
		row("ROLE_CAPABILITIES", cfg.Auth.RoleCapabilities)
		if err := w.Flush(); err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		if _, err := entity.ParseRoleCapabilities(cfg.Auth.RoleCapabilities); err != nil {
			return fmt.Errorf("ROLE_CAPABILITIES: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "configuración válida")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func redact(s string) string {
	if s == "" {
		return "(vacío)"
	}
	return "****"
}
