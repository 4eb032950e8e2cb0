package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. El estado es función pura de los ítems
// (ver DeriveOrderStatus), salvo cancelada que solo se alcanza desde pendiente.
const (
	OrderStatusPendiente  = "pendiente"
	OrderStatusParcial    = "parcialmente_recibida"
	OrderStatusCompleta   = "recibida_completa"
	OrderStatusCancelada  = "cancelada"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// Total es derivado: suma de los subtotales de sus ítems.
type PurchaseOrder struct {
	ID               string
	SupplierID       string
	Status           string
	ExpectedDelivery *time.Time // nil si no se pactó fecha
	Total            decimal.Decimal
	Items            []PurchaseOrderItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PurchaseOrderItem es una línea de una orden de compra.
// Subtotal se calcula al crear (ordered × unit_cost) y no se recalcula en recepciones parciales.
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	QuantityOrdered  int
	QuantityReceived int // inicia en 0, solo crece, nunca supera QuantityOrdered
	UnitCost         decimal.Decimal
	Subtotal         decimal.Decimal
}

// DeriveOrderStatus calcula el estado de la orden a partir de sus ítems:
// pendiente si ningún ítem tiene recepciones, recibida_completa si todos
// recibieron lo pedido, parcialmente_recibida en cualquier otro caso.
func DeriveOrderStatus(items []PurchaseOrderItem) string {
	anyReceived := false
	allComplete := len(items) > 0
	for _, it := range items {
		if it.QuantityReceived > 0 {
			anyReceived = true
		}
		if it.QuantityReceived < it.QuantityOrdered {
			allComplete = false
		}
	}
	switch {
	case !anyReceived:
		return OrderStatusPendiente
	case allComplete:
		return OrderStatusCompleta
	default:
		return OrderStatusParcial
	}
}
