package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/pkg/validate"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	ExpenseUC  *usecase.ExpenseUseCase
	Ledger     *ledger.StockLedgerUseCase
	Queries    *usecase.TransactionQueryUseCase
	MetricsUC  *analytics.MetricsUseCase
	ReportUC   *analytics.ReportUseCase
	SmartBuyUC *usecase.SmartBuyUseCase
	Validator  *validate.Validator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	val := deps.Validator
	if val == nil {
		val = validate.New()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, val)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/oauth/google", authHandler.GoogleLogin)
	authGroup.Get("/oauth/google/callback", authHandler.GoogleCallback)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	smartBuyHandler := NewSmartBuyHandler(deps.SmartBuyUC)
	api.Get("/ai/smart-buy/schema", smartBuyHandler.Schema)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, val)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, val)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, val)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/entries", expenseHandler.Entries)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Libro de inventario: ventas y compras
	ledgerHandler := NewLedgerHandler(deps.Ledger, deps.Queries, val)
	sales := protected.Group("/sales")
	sales.Post("/", ledgerHandler.RecordSale)
	sales.Get("/", ledgerHandler.ListSales)
	sales.Get("/:id", ledgerHandler.GetSale)
	sales.Delete("/:id", ledgerHandler.DeleteSale)

	purchases := protected.Group("/purchases")
	purchases.Post("/", ledgerHandler.RecordPurchase)
	purchases.Get("/", ledgerHandler.ListPurchases)
	purchases.Get("/:id", ledgerHandler.GetPurchase)
	purchases.Delete("/:id", ledgerHandler.DeletePurchase)

	metricsHandler := NewMetricsHandler(deps.MetricsUC, deps.ReportUC)
	protected.Get("/metrics/summary", metricsHandler.Summary)
	protected.Get("/metrics/dashboard", metricsHandler.Dashboard)
	if deps.ReportUC != nil {
		protected.Get("/reports/summary.pdf", metricsHandler.SummaryPDF)
	}

	protected.Post("/ai/smart-buy", smartBuyHandler.Suggest)
	protected.Post("/ai/smart-buy/auto", smartBuyHandler.SuggestAuto)
}
