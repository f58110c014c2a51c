package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/logger"
	"github.com/jhoicas/Contable-api/pkg/validate"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

// fakeGenerator TextGenerator controlable desde el test.
type fakeGenerator struct {
	out     string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

type testServer struct {
	app *fiber.App
	gen *fakeGenerator
}

// newTestServer arma la API completa sobre el store en memoria.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	gen := &fakeGenerator{err: errors.New("sin modelo")}

	authUC := auth.NewAuthUseCase(repos.Users, store, nil, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "test"})
	metricsUC := analytics.NewMetricsUseCase(repos.Sales, repos.Expenses, repos.Purchases)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(repos.Users),
		ProductUC:  usecase.NewProductUseCase(repos.Products, store, logger.Nop()),
		SupplierUC: usecase.NewSupplierUseCase(repos.Suppliers, repos.Purchases),
		ExpenseUC:  usecase.NewExpenseUseCase(repos.Expenses, repos.Purchases),
		Ledger:     ledger.NewStockLedgerUseCase(store, logger.Nop(), nil),
		Queries:    usecase.NewTransactionQueryUseCase(repos.Sales, repos.Purchases),
		MetricsUC:  metricsUC,
		ReportUC:   analytics.NewReportUseCase(metricsUC, repos.Businesses, pdf.NewSummaryRenderer()),
		SmartBuyUC: usecase.NewSmartBuyUseCase(gen, usecase.SmartBuyReaders{
			Sales: repos.Sales, Expenses: repos.Expenses, Purchases: repos.Purchases,
			Products: repos.Products, Suppliers: repos.Suppliers,
		}, logger.Nop(), time.Second),
		Validator: validate.New(),
		JWTSecret: testJWTSecret,
	})
	return &testServer{app: app, gen: gen}
}

// do envía la petición y decodifica la respuesta JSON en out (si no es nil).
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// register crea un negocio nuevo y devuelve el token de su dueño.
func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	var out dto.LoginResponse
	status := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secreto123", "name": "Dueño", "business_name": "Tienda " + email,
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, out.Token)
	return out.Token
}
