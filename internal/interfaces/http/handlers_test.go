package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	pkgjwt "github.com/jhoicas/Contable-api/pkg/jwt"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegisterLoginMe(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@example.com")

	var login dto.LoginResponse
	status := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ANA@example.com", "password": "secreto123"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	var me dto.UserResponse
	status = s.do(t, http.MethodGet, "/api/auth/me", login.Token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana@example.com", me.Email)
	assert.Equal(t, login.User.BusinessID, me.BusinessID)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@example.com")

	var e dto.ErrorResponse
	status := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "otra-clave"}, &e)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", e.Code)

	status = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nadie@example.com", "password": "otra-clave"}, &e)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_RegisterDuplicateAndValidation(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@example.com")

	var e dto.ErrorResponse
	status := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ana@example.com", "password": "secreto123", "business_name": "Otra",
	}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", e.Code)

	status = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "no-es-email", "password": "123"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Fields, "email")
	assert.Contains(t, e.Fields, "password")
	assert.Contains(t, e.Fields, "business_name")
}

func TestAuthMiddleware_RejectsMissingAndInvalidTokens(t *testing.T) {
	s := newTestServer(t)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/products", "", nil, &e))
	assert.Equal(t, "MISSING_TOKEN", e.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/products", "token.invalido.aqui", nil, &e))
	assert.Equal(t, "INVALID_TOKEN", e.Code)

	expired, err := pkgjwt.Generate(testJWTSecret, "u", "b", "x@example.com", "test", -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/products", expired, nil, &e))

	other, err := pkgjwt.Generate("otro-secret", "u", "b", "x@example.com", "test", 60)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/products", other, nil, &e))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGoogleLogin_DisabledWithoutProvider(t *testing.T) {
	s := newTestServer(t)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/auth/oauth/google", "", nil, &e))
	assert.Equal(t, "OAUTH_DISABLED", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro: compras, ventas y stock
// ──────────────────────────────────────────────────────────────────────────────

func createSupplier(t *testing.T, s *testServer, token string) string {
	t.Helper()
	var sup dto.SupplierResponse
	status := s.do(t, http.MethodPost, "/api/suppliers", token, map[string]string{
		"name": "Mayorista", "product_types": "abarrotes", "purchase_days": "lunes",
	}, &sup)
	require.Equal(t, http.StatusCreated, status)
	return sup.ID
}

func TestLedger_PurchaseSellDeleteFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")
	supplierID := createSupplier(t, s, token)

	var purchase dto.PurchaseResponse
	status := s.do(t, http.MethodPost, "/api/purchases", token, map[string]any{
		"supplier_id": supplierID,
		"new_product": map[string]string{"name": "Widget", "selling_price": "15"},
		"quantity":    "10",
		"total_cost":  "100",
	}, &purchase)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, purchase.ProductID)
	productID := *purchase.ProductID
	assert.True(t, purchase.CostPerUnit.Equal(dec("10")))

	var sale dto.SaleResponse
	status = s.do(t, http.MethodPost, "/api/sales", token, map[string]any{"product_id": productID, "quantity": "4"}, &sale)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, sale.Amount.Equal(dec("60")), "4 x 15")

	var product dto.ProductResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/products/"+productID, token, nil, &product))
	assert.True(t, product.Quantity.Equal(dec("6")))

	var e dto.ErrorResponse
	status = s.do(t, http.MethodPost, "/api/sales", token, map[string]any{"product_id": productID, "quantity": "7"}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	status = s.do(t, http.MethodDelete, "/api/sales/"+sale.ID, token, map[string]any{"product_id": productID, "quantity": "3"}, &e)
	assert.Equal(t, http.StatusConflict, status, "datos capturados que no coinciden")
	assert.Equal(t, "CONFLICT", e.Code)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/sales/"+sale.ID, token, nil, nil))
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/products/"+productID, token, nil, &product))
	assert.True(t, product.Quantity.Equal(dec("10")))

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/sales/"+sale.ID, token, nil, &e))

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/purchases/"+purchase.ID, token, nil, nil))
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/products/"+productID, token, nil, &product))
	assert.True(t, product.Quantity.IsZero(), "el producto ad-hoc se conserva con cantidad 0")
}

func TestLedger_DeletePurchaseBelowZero(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")
	supplierID := createSupplier(t, s, token)

	var purchase dto.PurchaseResponse
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/purchases", token, map[string]any{
		"supplier_id": supplierID,
		"new_product": map[string]string{"name": "Caja", "selling_price": "5"},
		"quantity":    "3",
		"total_cost":  "6",
	}, &purchase))
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/sales", token, map[string]any{
		"product_id": *purchase.ProductID, "quantity": "2",
	}, nil))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodDelete, "/api/purchases/"+purchase.ID, token, nil, &e))
	assert.Equal(t, "NEGATIVE_STOCK", e.Code)
}

func TestLedger_Validation(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	var e dto.ErrorResponse
	status := s.do(t, http.MethodPost, "/api/sales", token, map[string]any{"quantity": "0"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, e.Fields, "quantity")
	assert.Contains(t, e.Fields, "product_name")

	status = s.do(t, http.MethodPost, "/api/purchases", token, map[string]any{"supplier_id": "x", "quantity": "1", "total_cost": "1"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, e.Fields, "supplier_id")

	e = dto.ErrorResponse{}
	status = s.do(t, http.MethodPost, "/api/sales", token, map[string]any{"product_name": "Pan", "quantity": "1.00005", "amount": "10"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "máximo 4 decimales", e.Fields["quantity"])

	e = dto.ErrorResponse{}
	status = s.do(t, http.MethodPost, "/api/expenses", token, map[string]any{"category": "arriendo", "amount": "10.005"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, e.Fields, "amount")
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/sales/abc", token, nil, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/products/abc", token, nil, &e))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/purchases/abc", token, nil, &e))
}

func TestOwnershipIsolation(t *testing.T) {
	s := newTestServer(t)
	ana := s.register(t, "ana@example.com")
	beto := s.register(t, "beto@example.com")

	var product dto.ProductResponse
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/products", ana, map[string]any{"name": "Pan", "selling_price": "2"}, &product))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/products/"+product.ID, beto, nil, &e))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/sales", beto, map[string]any{"product_id": product.ID, "quantity": "1"}, &e))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/products/"+product.ID, beto, nil, &e))

	var list dto.ProductListResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/products", beto, nil, &list))
	assert.Empty(t, list.Items)
}

func TestSupplierDeleteBlockedByPurchases(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")
	supplierID := createSupplier(t, s, token)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/purchases", token, map[string]any{
		"supplier_id": supplierID,
		"new_product": map[string]string{"name": "Leche", "selling_price": "3"},
		"quantity":    "1",
		"total_cost":  "2",
	}, nil))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodDelete, "/api/suppliers/"+supplierID, token, nil, &e))
	assert.Equal(t, "CONFLICT", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas, egresos y reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestMetricsSummary_ExpensesPurchasesSales(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")
	supplierID := createSupplier(t, s, token)

	for _, amount := range []string{"30", "20"} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/expenses", token, map[string]any{"category": "servicios", "amount": amount}, nil))
	}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/purchases", token, map[string]any{
		"supplier_id": supplierID,
		"new_product": map[string]string{"name": "Harina", "selling_price": "1"},
		"quantity":    "5",
		"total_cost":  "50",
	}, nil))
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/sales", token, map[string]any{
		"product_name": "Pedido especial", "quantity": "1", "amount": "100",
	}, nil))

	var m dto.MetricsSummaryDTO
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/metrics/summary", token, nil, &m))
	assert.True(t, m.Revenue.Equal(dec("100")))
	assert.True(t, m.Expenses.Equal(dec("100")))
	assert.True(t, m.Profit.IsZero())
	assert.True(t, m.Margin.IsZero())
	assert.Equal(t, 1, m.SalesCount)
	assert.Equal(t, 2, m.ExpenseCount)
	assert.Equal(t, 1, m.PurchaseCount)

	var entries struct {
		Items []dto.ExpenseEntryResponse `json:"items"`
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/expenses/entries", token, nil, &entries))
	require.Len(t, entries.Items, 3)
	kinds := map[string]int{}
	for _, e := range entries.Items {
		kinds[e.Kind]++
		assert.Equal(t, e.Kind == "expense", e.Deletable)
	}
	assert.Equal(t, 2, kinds["expense"])
	assert.Equal(t, 1, kinds["purchase"])

	var dash dto.DashboardDTO
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/metrics/dashboard", token, nil, &dash))
	assert.True(t, dash.Today.Revenue.Equal(dec("100")))
}

func TestMetricsSummary_ZeroRevenue(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	var m dto.MetricsSummaryDTO
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/metrics/summary", token, nil, &m))
	assert.True(t, m.Margin.IsZero())
}

func TestMetricsSummary_InvalidPeriod(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/metrics/summary?from=ayer", token, nil, &e))
	assert.Contains(t, e.Fields, "from")
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/metrics/summary?from=2026-02-01&to=2026-01-01", token, nil, &e))
	assert.Contains(t, e.Fields, "to")
}

func TestSummaryPDF(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/summary.pdf?from=2026-01-01", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Smart Buy
// ──────────────────────────────────────────────────────────────────────────────

func TestSmartBuy_FallbackOnGeneratorError(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")
	s.gen.err = errors.New("timeout")

	var out dto.SmartBuyResponse
	status := s.do(t, http.MethodPost, "/api/ai/smart-buy", token, dto.SmartBuyRequest{DailySales: "[]"}, &out)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.SmartBuyFallback, out.Suggestion)
}

func TestSmartBuy_ReturnsModelTextVerbatim(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")
	s.gen.err = nil
	s.gen.out = "  Compra 10 kg de harina el lunes.\n"

	var out dto.SmartBuyResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/ai/smart-buy", token, dto.SmartBuyRequest{
		DailySales: "ventas", Expenses: "gastos", Purchases: "compras", Products: "productos", SupplierInfo: "proveedores",
	}, &out))
	assert.Equal(t, s.gen.out, out.Suggestion)
	require.Len(t, s.gen.prompts, 1)
	for _, part := range []string{"ventas", "gastos", "compras", "productos", "proveedores"} {
		assert.Contains(t, s.gen.prompts[0], part)
	}

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/ai/smart-buy/auto", token, nil, &out))
	assert.Len(t, s.gen.prompts, 2)
}

func TestSmartBuy_SchemaIsPublic(t *testing.T) {
	s := newTestServer(t)
	var schemas map[string]map[string]any
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/ai/smart-buy/schema", "", nil, &schemas))
	assert.Contains(t, schemas, "input")
	assert.Contains(t, schemas, "output")
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	s := newTestServer(t)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/nada", "", nil, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)
}
