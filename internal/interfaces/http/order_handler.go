package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/application/orders"
)

// OrderHandler maneja órdenes de compra y recepciones (protegido).
type OrderHandler struct {
	uc *orders.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create crea una orden de compra en estado pendiente.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateOrder(c.Context(), in)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una orden con sus ítems.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(out)
}

// List lista órdenes, con filtro opcional por proveedor.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListOrders(c.Context(), c.Query("supplier_id"), page)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(out)
}

// ReceiveItems registra recepciones sobre los ítems de una orden: incrementa lo
// recibido, escribe los movimientos tipo compra y recalcula el estado, todo en
// una sola transacción.
func (h *OrderHandler) ReceiveItems(c *fiber.Ctx) error {
	var in dto.ReceiveItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReceiveItems(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(out)
}

// Cancel cancela una orden pendiente.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.CancelOrder(c.Context(), c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(out)
}
