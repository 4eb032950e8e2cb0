package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/application/inventory"
)

// InventoryHandler maneja movimientos de inventario y la lista de reposición (protegido).
type InventoryHandler struct {
	uc *inventory.ApplyMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ApplyMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ApplyMovement registra un movimiento de inventario (entrada, venta, uso,
// ajuste_manual, compra). Devuelve el producto actualizado y la entrada del libro.
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Apply(c.Context(), inventory.MovementInput{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		ReferenceID: in.ReferenceID,
		Note:        in.Note,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements lista movimientos, filtrables por producto y rango de fechas.
// Fechas en formato RFC 3339 (query params from/to).
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	in := dto.ListMovementsRequest{ProductID: c.Query("product_id")}
	in.Limit = c.QueryInt("limit", 20)
	in.Offset = c.QueryInt("offset", 0)

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC 3339"})
		}
		in.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC 3339"})
		}
		in.To = &t
	}

	out, err := h.uc.ListMovements(c.Context(), in)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(out)
}

// ListReorder devuelve los productos en o bajo su umbral de reposición.
func (h *InventoryHandler) ListReorder(c *fiber.Ctx) error {
	out, err := h.uc.ListReorderCandidates(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(out)
}
