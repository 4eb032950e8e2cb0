package entity

import "time"

// Supplier representa un proveedor; dueño de cero o más órdenes de compra.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
