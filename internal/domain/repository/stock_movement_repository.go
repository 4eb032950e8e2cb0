package repository

import (
	"time"

	"github.com/abastor/inventario-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de movimientos (DIP).
// Los movimientos son inmutables: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
