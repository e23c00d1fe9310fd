package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pos-ledger-api/internal/application/assembly"
	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/cashregister"
	"github.com/jhoicas/pos-ledger-api/internal/application/customers"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pos-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/pos-ledger-api/pkg/config"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	roleCaps, err := entity.ParseRoleCapabilities(cfg.Auth.RoleCapabilities)
	if err != nil {
		log.Fatal().Err(err).Msg("ROLE_CAPABILITIES")
	}

	ctx := context.Background()
	var (
		repos    repository.Repos
		txRunner ledger.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = store.Repos()
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("driver en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if _, err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repos = postgres.NewRepos(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	audit := ledger.NewAuditWriter(nil)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	saleUC := sales.NewSaleUseCase(txRunner, repos, audit, log.Component("sales"))

	// PDF: comprobante de venta
	receiptUC := sales.NewReceiptUseCase(repos, infrapdf.NewReceiptGenerator(), cfg.App.StoreName)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        inventory.NewItemUseCase(repos),
		CategoryUC:    inventory.NewCategoryUseCase(repos),
		AdjustmentUC:  inventory.NewStockAdjustmentUseCase(txRunner, repos, audit, log.Component("inventory")),
		SessionUC:     cashregister.NewSessionUseCase(txRunner, repos, log.Component("cashregister")),
		SaleUC:        saleUC,
		ReceiptUC:     receiptUC,
		CustomerUC:    customers.NewCustomerUseCase(repos.Customers),
		BankAccountUC: customers.NewBankAccountUseCase(repos.BankAccounts, repos.Money),
		PurchaseUC:    purchasing.NewPurchaseOrderUseCase(txRunner, repos, audit, log.Component("purchasing")),
		AssemblyUC:    assembly.NewAssemblyUseCase(txRunner, repos, audit, log.Component("assembly")),
		RoleCaps:      roleCaps,
		JWTSecret:     cfg.JWT.Secret,
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
}
