package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	CategoryID       string          `json:"category_id,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto.
// No incluye Quantity: las existencias se modifican solo vía movimientos.
type UpdateProductRequest struct {
	SKU              *string          `json:"sku"`
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	ReorderThreshold *int             `json:"reorder_threshold"`
	CategoryID       *string          `json:"category_id"`
}

// SetQuantityRequest entrada para fijar existencias absolutas.
// Se aplica como ajuste_manual con delta = target - actual.
type SetQuantityRequest struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	CategoryID       string          `json:"category_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
