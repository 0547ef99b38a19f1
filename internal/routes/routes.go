package routes

import (
	"time"

	"go-inventory-tracker/internal/handler"
	"go-inventory-tracker/internal/middleware"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/internal/service"
	"go-inventory-tracker/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

const appName = "Inventory Tracker v1.0"

// Deps is everything the HTTP layer needs, built once in main
type Deps struct {
	Inventory      service.InventoryService
	Dashboard      service.DashboardService
	Auth           service.AuthService
	Reports        service.ReportService
	Roles          repository.RoleRepository
	Privileges     repository.PrivilegeRepository
	Hub            *ws.Hub
	Log            zerolog.Logger
	CORSOrigins    string
	RequestTimeout time.Duration
}

// NewApp builds the fiber application with middleware and every route registered
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: handler.ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: d.CORSOrigins}))
	app.Use(middleware.RequestLogger(d.Log))

	invHandler := handler.NewInventoryHandler(d.Inventory)
	dashHandler := handler.NewDashboardHandler(d.Dashboard)
	authHandler := handler.NewAuthHandler(d.Auth)
	roleHandler := handler.NewRoleHandler(d.Roles, d.Privileges)
	reportHandler := handler.NewReportHandler(d.Reports)
	healthHandler := handler.NewHealthHandler(d.Hub)

	api := app.Group("/api/v1")
	if d.RequestTimeout > 0 {
		api.Use(middleware.Timeout(d.RequestTimeout))
	}

	// ============ PUBLIC ROUTES ============
	api.Get("/health", healthHandler.Health)

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/logout", middleware.RequireAuth(d.Auth), authHandler.Logout)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(d.Auth))

	// Dashboard
	dashboard := protected.Group("/dashboard", middleware.RequirePrivilege(model.PrivDashboardView))
	dashboard.Get("/stats", dashHandler.GetDashboardStats)
	dashboard.Get("/stock-movement", dashHandler.GetStockMovement)
	dashboard.Get("/top-stock-out", dashHandler.GetTopStockOut)
	dashboard.Get("/recent-products", dashHandler.GetRecentProducts)

	// Products
	protected.Get("/products", middleware.RequirePrivilege(model.PrivProductView), invHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege(model.PrivProductCreate), invHandler.CreateProduct)
	protected.Delete("/products", middleware.RequirePrivilege(model.PrivProductArchive), invHandler.ArchiveAllProducts)
	protected.Get("/products/:id", middleware.RequirePrivilege(model.PrivProductView), invHandler.GetProduct)
	protected.Get("/products/:id/transactions", middleware.RequirePrivilege(model.PrivTransactionView), invHandler.GetProductTransactions)
	protected.Patch("/products/:id", middleware.RequirePrivilege(model.PrivProductUpdate), invHandler.UpdateProduct)
	protected.Patch("/products/:id/archive", middleware.RequirePrivilege(model.PrivProductArchive), invHandler.ArchiveProduct)
	protected.Patch("/products/:id/restore", middleware.RequirePrivilege(model.PrivProductArchive), invHandler.RestoreProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege(model.PrivProductArchive), invHandler.ArchiveProduct)

	// Transactions
	protected.Get("/transactions", middleware.RequirePrivilege(model.PrivTransactionView), invHandler.GetTransactions)
	protected.Post("/transactions", middleware.RequirePrivilege(model.PrivTransactionCreate), invHandler.CreateTransaction)
	protected.Delete("/transactions", middleware.RequirePrivilege(model.PrivTransactionPurge), invHandler.DeleteAllTransactions)
	protected.Get("/transactions/:id", middleware.RequirePrivilege(model.PrivTransactionView), invHandler.GetTransaction)
	protected.Delete("/transactions/:id", middleware.RequirePrivilege(model.PrivTransactionPurge), invHandler.DeleteTransaction)

	// Reports
	protected.Get("/reports/inventory.xlsx", middleware.RequirePrivilege(model.PrivReportExport), reportHandler.ExportInventory)

	// Roles & privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(d.Hub.Serve))

	return app
}
