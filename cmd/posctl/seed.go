package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/postgres"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Crea un usuario administrador",
	Example: `  posctl seed-admin --email admin@tienda.co --password 'cambiar-esto'
  posctl seed-admin --email bodega@tienda.co --password 'x12345678' --role warehouse`,
	RunE: runSeedAdmin,
}

func init() {
	rootCmd.AddCommand(seedAdminCmd)

	seedAdminCmd.Flags().String("email", "", "Email del usuario (requerido)")
	seedAdminCmd.Flags().String("password", "", "Password, mínimo 8 caracteres (requerido)")
	seedAdminCmd.Flags().String("name", "Administrador", "Nombre visible")
	seedAdminCmd.Flags().String("role", entity.RoleAdmin, "Rol: admin, cashier o warehouse")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := openPool(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: cfg.JWT.Secret})
	user, err := uc.CreateUser(cmd.Context(), dto.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("crear usuario: %w", err)
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("usuario creado")
	fmt.Fprintln(cmd.OutOrStdout(), user.ID)
	return nil
}
