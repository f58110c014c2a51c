package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	infraai "github.com/jhoicas/Contable-api/internal/infrastructure/ai"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contable-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Contable-api/internal/infrastructure/oauth"
	infrapdf "github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
	"github.com/jhoicas/Contable-api/pkg/validate"
)

const swaggerFile = "./docs/swagger.json"

// storage agrupa los repositorios y el runner transaccional del driver elegido.
type storage struct {
	businesses repository.BusinessRepository
	users      repository.UserRepository
	products   repository.ProductRepository
	sales      repository.SaleRepository
	purchases  repository.PurchaseRepository
	expenses   repository.ExpenseRepository
	suppliers  repository.SupplierRepository
	tx         interface {
		ledger.TxRunner
		auth.SignupTxRunner
	}
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	m := metrics.New()
	var recorder ledger.OperationRecorder
	if cfg.Metrics.Enabled {
		recorder = m
	}

	gen, err := infraai.NewTextGenerator(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar proveedor de IA")
	}

	// nil explícito: un *GoogleProvider nil dentro de la interfaz no sería nil.
	var google ports.OAuthProvider
	if p := oauth.NewGoogleProvider(cfg.OAuth); p != nil {
		google = p
	}

	authUC := auth.NewAuthUseCase(store.users, store.tx, google, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	metricsUC := analytics.NewMetricsUseCase(store.sales, store.expenses, store.purchases)
	reportUC := analytics.NewReportUseCase(metricsUC, store.businesses, infrapdf.NewSummaryRenderer())
	smartBuyUC := usecase.NewSmartBuyUseCase(gen, usecase.SmartBuyReaders{
		Sales:     store.sales,
		Expenses:  store.expenses,
		Purchases: store.purchases,
		Products:  store.products,
		Suppliers: store.suppliers,
	}, log.Component("smartbuy"), cfg.AI.Timeout)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.AI.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	if cfg.Metrics.Enabled {
		app.Use(m.Middleware(cfg.Metrics.Path))
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(m.Handler()))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions}, ","),
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Contable API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(store.users),
		ProductUC:  usecase.NewProductUseCase(store.products, store.tx, log.Component("products")),
		SupplierUC: usecase.NewSupplierUseCase(store.suppliers, store.purchases),
		ExpenseUC:  usecase.NewExpenseUseCase(store.expenses, store.purchases),
		Ledger:     ledger.NewStockLedgerUseCase(store.tx, log.Component("ledger"), recorder),
		Queries:    usecase.NewTransactionQueryUseCase(store.sales, store.purchases),
		MetricsUC:  metricsUC,
		ReportUC:   reportUC,
		SmartBuyUC: smartBuyUC,
		Validator:  validate.New(),
		JWTSecret:  cfg.JWT.Secret,
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

// openStorage abre PostgreSQL (con migraciones opcionales) o el store en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.New()
		r := s.Repos()
		return &storage{
			businesses: r.Businesses,
			users:      r.Users,
			products:   r.Products,
			sales:      r.Sales,
			purchases:  r.Purchases,
			expenses:   r.Expenses,
			suppliers:  r.Suppliers,
			tx:         s,
			close:      func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	return &storage{
		businesses: postgres.NewBusinessRepository(pool),
		users:      postgres.NewUserRepository(pool),
		products:   postgres.NewProductRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		purchases:  postgres.NewPurchaseRepository(pool),
		expenses:   postgres.NewExpenseRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		tx:         postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
