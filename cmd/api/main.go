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

	"github.com/jhoicas/erp-api/internal/application/auth"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/purchases"
	"github.com/jhoicas/erp-api/internal/application/reports"
	"github.com/jhoicas/erp-api/internal/application/returns"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/erp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/erp-api/internal/interfaces/http"
	"github.com/jhoicas/erp-api/pkg/config"
	"github.com/jhoicas/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	returnRepo := postgres.NewSalesReturnRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, txRunner)
	userUC := usecase.NewUserUseCase(userRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo, invRepo)
	inventoryUC := inventory.NewInventoryUseCase(txRunner, invRepo, productRepo)
	salesUC := sales.NewSalesUseCase(txRunner, saleRepo, customerRepo, productRepo, companyRepo, pdfGenerator)
	purchasesUC := purchases.NewPurchasesUseCase(txRunner, purchaseRepo, customerRepo, productRepo)
	returnsUC := returns.NewReturnsUseCase(txRunner, returnRepo, saleRepo)
	reportsUC := reports.NewReportsUseCase(saleRepo, purchaseRepo, invRepo, analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		UserUC:      userUC,
		CustomerUC:  customerUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		SalesUC:     salesUC,
		PurchasesUC: purchasesUC,
		ReturnsUC:   returnsUC,
		ReportsUC:   reportsUC,
		JWTSecret:   cfg.JWT.Secret,
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
