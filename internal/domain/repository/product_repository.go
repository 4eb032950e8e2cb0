package repository

import (
	"time"

	"github.com/abastor/inventario-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity solo se actualiza vía UpdateQuantity, dentro de la transacción del ledger.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListBelowReorderThreshold lista productos con quantity <= reorder_threshold,
	// ordenados por cantidad ascendente y luego nombre.
	ListBelowReorderThreshold() ([]*entity.Product, error)
	Delete(id string) error
}
