package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/assembly"
	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/cashregister"
	"github.com/jhoicas/pos-ledger-api/internal/application/customers"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ItemUC        *inventory.ItemUseCase
	CategoryUC    *inventory.CategoryUseCase
	AdjustmentUC  *inventory.StockAdjustmentUseCase
	SessionUC     *cashregister.SessionUseCase
	SaleUC        *sales.SaleUseCase
	ReceiptUC     *sales.ReceiptUseCase
	CustomerUC    *customers.CustomerUseCase
	BankAccountUC *customers.BankAccountUseCase
	PurchaseUC    *purchasing.PurchaseOrderUseCase
	AssemblyUC    *assembly.AssemblyUseCase
	RoleCaps      entity.RoleCapabilities
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ResolveCapabilities(deps.RoleCaps))
	admin := RequireRole(entity.RoleAdmin)

	protected.Post("/users", admin, authHandler.CreateUser)

	// Ítems: lectura para cualquier usuario autenticado, escritura con inventario.
	itemHandler := NewItemHandler(deps.ItemUC, deps.AdjustmentUC)
	inv := RequireCapability(entity.CapInventory)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/logs", inv, itemHandler.Logs)
	items.Get("/:id/adjustments", inv, itemHandler.Adjustments)
	items.Post("/", inv, itemHandler.Create)
	items.Put("/:id", inv, itemHandler.Update)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	protected.Get("/categories", categoryHandler.List)
	protected.Post("/categories", inv, categoryHandler.Create)

	adjustments := protected.Group("/adjustments", inv)
	adjustments.Post("/", itemHandler.CreateAdjustment)
	adjustments.Delete("/:id", itemHandler.ReverseAdjustment)

	// Caja
	sessionHandler := NewSessionHandler(deps.SessionUC)
	sessions := protected.Group("/sessions", RequireCapability(entity.CapSessions))
	sessions.Post("/open", sessionHandler.Open)
	sessions.Get("/current", sessionHandler.Current)
	sessions.Get("/:id", sessionHandler.GetByID)
	sessions.Post("/:id/close", sessionHandler.Close)
	sessions.Get("/:id/transactions", sessionHandler.Transactions)
	sessions.Get("/:id/amendments", sessionHandler.Amendments)
	sessions.Post("/:id/access-requests", sessionHandler.RequestAccess)
	sessions.Post("/:id/amend", sessionHandler.Amend)
	protected.Post("/access-requests/:id/resolve", admin, sessionHandler.ResolveAccess)

	// POS
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	pos := RequireCapability(entity.CapPOS)
	salesGroup := protected.Group("/sales", pos)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	protected.Get("/warranties", pos, saleHandler.Warranties)

	// Clientes y abonos
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.SaleUC)
	customersGroup := protected.Group("/customers", RequireCapability(entity.CapCustomers))
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Post("/:id/payments", customerHandler.Pay)
	customersGroup.Get("/:id/payments", customerHandler.Payments)

	bankHandler := NewBankAccountHandler(deps.BankAccountUC)
	banks := protected.Group("/bank-accounts", RequireCapability(entity.CapBanking))
	banks.Post("/", bankHandler.Create)
	banks.Get("/", bankHandler.List)
	banks.Get("/:id/balance", bankHandler.Balance)

	// Compras
	poHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	orders := protected.Group("/purchase-orders", RequireCapability(entity.CapPurchasing))
	orders.Post("/", poHandler.Create)
	orders.Get("/:id", poHandler.GetByID)
	orders.Put("/:id", poHandler.Update)
	orders.Delete("/:id", poHandler.Delete)
	orders.Post("/:id/approve", admin, poHandler.Approve)
	orders.Post("/:id/receive", poHandler.Receive)

	// Ensamble
	assemblyHandler := NewAssemblyHandler(deps.AssemblyUC)
	assemblies := protected.Group("/assemblies", RequireCapability(entity.CapAssembly))
	assemblies.Post("/", assemblyHandler.Create)
	assemblies.Get("/:id", assemblyHandler.GetByID)
}
