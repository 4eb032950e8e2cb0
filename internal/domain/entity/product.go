package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Quantity solo se modifica a través del libro de movimientos (ApplyMovement);
// los endpoints de edición no la tocan.
type Product struct {
	ID               string
	SKU              string // código único
	Name             string
	Description      string
	CostPrice        decimal.Decimal
	SalePrice        decimal.Decimal
	Quantity         int    // existencias actuales, nunca negativo
	ReorderThreshold int    // cantidad a partir de la cual se sugiere reponer
	CategoryID       string // vacío si no tiene categoría
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BelowReorderThreshold indica si el producto debe aparecer en la lista de reposición.
func (p *Product) BelowReorderThreshold() bool {
	return p.Quantity <= p.ReorderThreshold
}
