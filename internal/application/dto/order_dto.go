package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest línea de una orden de compra nueva.
type CreateOrderItemRequest struct {
	ProductID       string          `json:"product_id"`
	QuantityOrdered int             `json:"quantity_ordered"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SupplierID       string                   `json:"supplier_id"`
	ExpectedDelivery *time.Time               `json:"expected_delivery,omitempty"`
	Items            []CreateOrderItemRequest `json:"items"`
}

// ReceiptRequest una recepción sobre un ítem de la orden.
type ReceiptRequest struct {
	ItemID           string `json:"item_id"`
	QuantityReceived int    `json:"quantity_received"`
}

// ReceiveItemsRequest body para POST /api/orders/:id/receipts.
type ReceiveItemsRequest struct {
	Receipts []ReceiptRequest `json:"receipts"`
}

// OrderItemResponse salida de una línea de orden.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden de compra con sus ítems.
type OrderResponse struct {
	ID               string              `json:"id"`
	SupplierID       string              `json:"supplier_id"`
	Status           string              `json:"status"`
	ExpectedDelivery *time.Time          `json:"expected_delivery,omitempty"`
	Total            decimal.Decimal     `json:"total"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
