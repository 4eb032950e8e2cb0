package repository

import (
	"time"

	"github.com/abastor/inventario-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra (DIP).
// Los ítems se cargan siempre junto con la orden.
type PurchaseOrderRepository interface {
	// Create persiste la orden con sus ítems.
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateItemReceived(itemID string, quantityReceived int) error
	UpdateStatus(orderID, status string, updatedAt time.Time) error
	List(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
