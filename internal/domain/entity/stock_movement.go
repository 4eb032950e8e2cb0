package entity

import "time"

// Tipos de movimiento de inventario (enumeración cerrada).
const (
	MovementTypeEntrada      = "entrada"       // ingreso genérico de mercancía
	MovementTypeSalida       = "salida"        // egreso genérico
	MovementTypeVenta        = "venta"         // salida por venta
	MovementTypeUso          = "uso"           // salida por consumo interno
	MovementTypeAjusteManual = "ajuste_manual" // ajuste con signo (positivo o negativo)
	MovementTypeCompra       = "compra"        // recepción de orden de compra
)

// ValidMovementType verifica que el tipo pertenezca a la enumeración.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeVenta,
		MovementTypeUso, MovementTypeAjusteManual, MovementTypeCompra:
		return true
	}
	return false
}

// OutboundMovementType indica si el tipo resta existencias.
// ajuste_manual no aparece aquí: su signo viene en la cantidad.
func OutboundMovementType(t string) bool {
	switch t {
	case MovementTypeSalida, MovementTypeVenta, MovementTypeUso:
		return true
	}
	return false
}

// StockMovement es una entrada del libro de movimientos: registro inmutable
// del delta aplicado a un producto y del saldo resultante.
type StockMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    int    // delta con signo: positivo entrada, negativo salida
	Balance     int    // existencias del producto después de aplicar el delta
	ReferenceID string // ej. orden de compra que originó el movimiento; vacío si no aplica
	Note        string
	CreatedAt   time.Time
	CreatedBy   string // UserID del actor; vacío si no hubo usuario autenticado
}
