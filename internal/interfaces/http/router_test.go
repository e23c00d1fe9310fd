package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-ledger-api/internal/application/assembly"
	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/cashregister"
	"github.com/jhoicas/pos-ledger-api/internal/application/customers"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pos-ledger-api/internal/interfaces/http"
)

type stubRenderer struct{}

func (stubRenderer) RenderSaleReceipt(context.Context, sales.ReceiptData) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

// newTestServer arma el router completo sobre el driver en memoria con un admin y un cajero.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	audit := ledger.NewAuditWriter(nil)
	log := zerolog.Nop()

	roleCaps, err := entity.ParseRoleCapabilities("cashier=pos,customers,sessions")
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}).
		WithHashCost(bcrypt.MinCost)
	for _, u := range []dto.CreateUserRequest{
		{Email: "admin@pos.test", Password: "admin-pass", Role: entity.RoleAdmin},
		{Email: "caja@pos.test", Password: "caja-pass", Role: entity.RoleCashier},
	} {
		_, err := authUC.CreateUser(context.Background(), u)
		require.NoError(t, err)
	}

	saleUC := sales.NewSaleUseCase(tx, repos, audit, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        inventory.NewItemUseCase(repos),
		CategoryUC:    inventory.NewCategoryUseCase(repos),
		AdjustmentUC:  inventory.NewStockAdjustmentUseCase(tx, repos, audit, log),
		SessionUC:     cashregister.NewSessionUseCase(tx, repos, log),
		SaleUC:        saleUC,
		ReceiptUC:     sales.NewReceiptUseCase(repos, stubRenderer{}, "Tienda"),
		CustomerUC:    customers.NewCustomerUseCase(repos.Customers),
		BankAccountUC: customers.NewBankAccountUseCase(repos.BankAccounts, repos.Money),
		PurchaseUC:    purchasing.NewPurchaseOrderUseCase(tx, repos, audit, log),
		AssemblyUC:    assembly.NewAssemblyUseCase(tx, repos, audit, log),
		RoleCaps:      roleCaps,
		JWTSecret:     testJWTSecret,
	})
	return app
}

// call envía body como JSON y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	var out dto.LoginResponse
	status := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := newTestServer(t)

	// Caso 1: password incorrecto
	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@pos.test", Password: "otra-cosa"}, &errBody)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errBody.Code)

	// Caso 2: usuario inexistente también es 401
	status = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@pos.test", Password: "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Caso 3: cuerpo incompleto es 400
	status = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestVentaEnEfectivo_IdaYVuelta(t *testing.T) {
	app := newTestServer(t)
	adminTok := login(t, app, "admin@pos.test", "admin-pass")
	cajaTok := login(t, app, "caja@pos.test", "caja-pass")

	// Alta de ítem y stock inicial (admin)
	var item dto.ItemResponse
	status := call(t, app, http.MethodPost, "/api/items", adminTok, dto.ItemRequest{SKU: "MOU-1", Name: "Mouse", Price: decimal.NewFromInt(50)}, &item)
	require.Equal(t, http.StatusCreated, status)
	status = call(t, app, http.MethodPost, "/api/adjustments", adminTok, dto.StockAdjustmentRequest{ItemID: item.ID, QuantityChange: 10, Reason: "adjustment"}, nil)
	require.Equal(t, http.StatusCreated, status)

	// El cajero no puede tocar inventario
	status = call(t, app, http.MethodPost, "/api/adjustments", cajaTok, dto.StockAdjustmentRequest{ItemID: item.ID, QuantityChange: 1, Reason: "adjustment"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Venta sin sesión abierta → 409
	sale := dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ItemID: item.ID, Quantity: 2}},
	}
	var errBody dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/sales", cajaTok, sale, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NO_OPEN_SESSION", errBody.Code)

	var session dto.SessionResponse
	status = call(t, app, http.MethodPost, "/api/sessions/open", cajaTok, dto.OpenSessionRequest{OpeningBalance: decimal.NewFromInt(1000)}, &session)
	require.Equal(t, http.StatusCreated, status)

	paid := decimal.NewFromInt(100)
	sale.AmountPaid = &paid
	var out dto.SaleResponse
	status = call(t, app, http.MethodPost, "/api/sales", cajaTok, sale, &out)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.ChangeGiven.IsZero())
	assert.Equal(t, session.ID, out.SessionID)

	var current dto.SessionResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sessions/current", cajaTok, nil, &current))
	assert.True(t, current.CashSales.Equal(decimal.NewFromInt(100)))
	assert.True(t, current.ExpectedCash.Equal(decimal.NewFromInt(1100)))

	var after dto.ItemResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/items/"+item.ID, cajaTok, nil, &after))
	assert.Equal(t, 8, after.Stock)

	// Stock insuficiente → 409 sin efectos
	sale.Lines[0].Quantity = 50
	status = call(t, app, http.MethodPost, "/api/sales", cajaTok, sale, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/items/"+item.ID, cajaTok, nil, &after))
	assert.Equal(t, 8, after.Stock)

	// Comprobante
	req := httptest.NewRequest(http.MethodGet, "/api/sales/"+out.ID+"/receipt", nil)
	req.Header.Set("Authorization", "Bearer "+cajaTok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestAssemblies_CantidadFueraDeRango(t *testing.T) {
	app := newTestServer(t)
	adminTok := login(t, app, "admin@pos.test", "admin-pass")

	var errBody dto.ErrorResponse
	body := dto.AssemblyRequest{
		FinalItemID: "pc",
		Quantity:    4,
		Parts:       []dto.AssemblyPartRequest{{ItemID: "board", PerUnitQuantity: 1 << 62}},
	}
	status := call(t, app, http.MethodPost, "/api/assemblies", adminTok, body, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
}
