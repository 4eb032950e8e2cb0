package orders

import (
	"context"
	"time"

	"github.com/abastor/inventario-api/internal/application/inventory"
	"github.com/abastor/inventario-api/internal/domain/entity"
	"github.com/abastor/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repositorios
// que necesita el motor de órdenes. La recepción completa (ítems, movimientos del
// libro y recálculo de estado) se confirma o revierte como una sola unidad.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// StockApplier escribe movimientos de inventario dentro de la transacción del caller.
// Lo implementa inventory.ApplyMovementUseCase; la interfaz evita el acople directo.
type StockApplier interface {
	ApplyInTx(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		in inventory.MovementInput,
		now time.Time,
	) (*entity.Product, *entity.StockMovement, error)
}
