package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/auth"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/purchases"
	"github.com/jhoicas/erp-api/internal/application/reports"
	"github.com/jhoicas/erp-api/internal/application/returns"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/application/usecase"
	"github.com/jhoicas/erp-api/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *inventory.InventoryUseCase
	SalesUC     *sales.SalesUseCase
	PurchasesUC *purchases.PurchasesUseCase
	ReturnsUC   *returns.ReturnsUseCase
	ReportsUC   *reports.ReportsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Companies (protegido; crear/listar/eliminar exigen superadmin en el caso de uso)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Users (protegido, solo admin/superadmin)
	users := protected.Group("/users", RequireRole(domain.RoleSuperadmin, domain.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Customers / suppliers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/:productId", inventoryHandler.GetByProduct)
	invGroup.Put("/:productId", inventoryHandler.Update)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Patch("/:id/status", saleHandler.UpdateStatus)
	salesGroup.Get("/:id/pdf", saleHandler.PDF)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Purchases (protegido)
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Put("/:id", purchaseHandler.Update)
	purchasesGroup.Patch("/:id/status", purchaseHandler.UpdateStatus)
	purchasesGroup.Post("/:id/receive", purchaseHandler.Receive)
	purchasesGroup.Delete("/:id", purchaseHandler.Delete)

	// Sales returns (protegido)
	returnsGroup := protected.Group("/returns")
	returnHandler := NewSalesReturnHandler(deps.ReturnsUC)
	returnsGroup.Post("/", returnHandler.Create)
	returnsGroup.Get("/", returnHandler.List)
	returnsGroup.Get("/returnable/:saleId", returnHandler.ReturnableItems)
	returnsGroup.Get("/:id", returnHandler.GetByID)
	returnsGroup.Patch("/:id/status", returnHandler.UpdateStatus)
	returnsGroup.Delete("/:id", returnHandler.Delete)

	// Reports + dashboard (protegido)
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/sales/csv", reportHandler.SalesCSV)
	reportsGroup.Get("/purchases", reportHandler.Purchases)
	reportsGroup.Get("/purchases/csv", reportHandler.PurchasesCSV)
	protected.Get("/dashboard", reportHandler.Dashboard)
}
