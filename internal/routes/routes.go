package routes

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/example/grocery/internal/config"
	"github.com/example/grocery/internal/events"
	"github.com/example/grocery/internal/handlers"
	"github.com/example/grocery/internal/metrics"
	"github.com/example/grocery/internal/middleware"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/services"
)

// Dependencies are the long-lived collaborators the HTTP layer is built from.
// A nil Provider disables checkout; a nil Events publisher drops events.
type Dependencies struct {
	Store     *repository.Store
	Config    *config.Config
	Provider  services.CheckoutProvider
	Events    events.Publisher
	Log       *slog.Logger
	AccessLog bool
}

// NewApp builds the fiber application with the shared middleware stack and every route.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Grocery Ecommerce API",
		ErrorHandler: handlers.ErrorHandler(deps.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.Config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions,
		}, ","),
	}))
	app.Use(middleware.Metrics())

	Register(app, deps)
	return app
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Dependencies) {
	store, cfg, log := deps.Store, deps.Config, deps.Log

	authService := services.NewAuthService(store.Users, cfg.JWTSecret, cfg.TokenExpires, log)
	catalogService := services.NewCatalogService(store.Products, store.Categories, log)
	orderService := services.NewOrderService(store.Orders, deps.Events, log)
	paymentService := services.NewPaymentService(store.Payments, store.Orders, deps.Provider, deps.Events, log)
	adminService := services.NewAdminService(store, log)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, cfg.FrontendURL)
	adminHandler := handlers.NewAdminHandler(adminService, orderService, catalogService, paymentService)

	requireAuth := middleware.AuthMiddleware(authService)
	requireAdmin := middleware.RequireAdmin()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Grocery Ecommerce API is running"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "message": "API is running"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", requireAuth, authHandler.Me)
	auth.Put("/me", requireAuth, authHandler.UpdateMe)

	// Catalog routes
	products := api.Group("/products")
	productHandler.RegisterProductRoutes(products, requireAuth, requireAdmin)

	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", requireAuth, requireAdmin, catalogHandler.CreateCategory)
	categories.Put("/:id", requireAuth, requireAdmin, catalogHandler.UpdateCategory)
	categories.Delete("/:id", requireAuth, requireAdmin, catalogHandler.DeleteCategory)

	// Protected routes
	orders := api.Group("/orders", requireAuth)
	orders.Get("/", orderHandler.ListOrders)
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Put("/:id", orderHandler.UpdateOrder)
	orders.Delete("/:id", orderHandler.CancelOrder)

	payments := api.Group("/payments", requireAuth)
	payments.Post("/checkout/session", paymentHandler.CreateCheckoutSession)
	payments.Get("/checkout/status/:session_id", paymentHandler.CheckoutStatus)
	payments.Get("/transactions", paymentHandler.ListTransactions)
	payments.Get("/transactions/:id", paymentHandler.GetTransaction)

	admin := api.Group("/admin", requireAuth, requireAdmin)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Put("/orders/:id", adminHandler.UpdateOrder)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/products", adminHandler.ListProducts)
	admin.Get("/payments", adminHandler.ListPayments)
}
