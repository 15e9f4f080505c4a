package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rizosfelices/pedidos-api/internal/application/analytics"
	"github.com/rizosfelices/pedidos-api/internal/application/auth"
	"github.com/rizosfelices/pedidos-api/internal/application/orders"
	"github.com/rizosfelices/pedidos-api/internal/application/usecase"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	Orders        *orders.Service
	DashboardUC   *analytics.DashboardUseCase
	UserRepo      repository.UserRepository
	WarehouseRepo repository.WarehouseRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UserRepo))

	// Registro de usuarios: solo el admin da de alta cuentas
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Post("/direct", orderHandler.CreateDirect)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Patch("/:id/estado", orderHandler.UpdateStatus)

	// Store (bodegas)
	store := protected.Group("/store", RequireRole(entity.RoleBodega))
	storeHandler := NewStoreHandler(deps.Orders, deps.ProductUC)
	store.Post("/orders/:id/procesar", storeHandler.Procesar)
	store.Get("/inventario", storeHandler.Inventario)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/productos-populares", dashboardHandler.Populares)

	// Bodegas (catálogo de solo lectura)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseRepo)
	protected.Get("/bodegas", warehouseHandler.List)
}
