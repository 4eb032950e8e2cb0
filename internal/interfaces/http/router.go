package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastor/inventario-api/internal/application/auth"
	"github.com/abastor/inventario-api/internal/application/inventory"
	"github.com/abastor/inventario-api/internal/application/orders"
	"github.com/abastor/inventario-api/internal/application/usecase"
	"github.com/abastor/inventario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	Inventory  *inventory.ApplyMovementUseCase
	Orders     *orders.OrderUseCase
	JWTSecret  string
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

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)
	warehouseRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products: lectura para todos los roles, mutaciones de catálogo solo admin.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Inventory)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Put("/:id/quantity", warehouseRoles, productHandler.SetQuantity)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", anyRole, categoryHandler.List)
	categories.Get("/:id", anyRole, categoryHandler.GetByID)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Inventory: movimientos y reposición. Cualquier rol puede registrar
	// movimientos (las ventas las ingresan los vendedores).
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	invGroup.Post("/movements", anyRole, inventoryHandler.ApplyMovement)
	invGroup.Get("/movements", anyRole, inventoryHandler.ListMovements)
	invGroup.Get("/reorder", anyRole, inventoryHandler.ListReorder)

	// Purchase orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders)
	ordersGroup.Get("/", warehouseRoles, orderHandler.List)
	ordersGroup.Get("/:id", warehouseRoles, orderHandler.GetByID)
	ordersGroup.Post("/", warehouseRoles, orderHandler.Create)
	ordersGroup.Post("/:id/receipts", warehouseRoles, orderHandler.ReceiveItems)
	ordersGroup.Post("/:id/cancel", adminOnly, orderHandler.Cancel)
}
