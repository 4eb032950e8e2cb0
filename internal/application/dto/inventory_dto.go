package dto

import "time"

// ApplyMovementRequest body para POST /api/inventory/movements.
// Quantity es positiva para todos los tipos salvo ajuste_manual, que admite signo.
type ApplyMovementRequest struct {
	ProductID   string `json:"product_id"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	ReferenceID string `json:"reference_id,omitempty"`
	Note        string `json:"note,omitempty"`
}

// MovementResponse salida de una entrada del libro de movimientos.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Balance     int       `json:"balance"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

// ApplyMovementResponse resultado de aplicar un movimiento: el producto
// actualizado y la entrada creada en el libro.
type ApplyMovementResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}

// ListMovementsRequest filtros para GET /api/inventory/movements.
type ListMovementsRequest struct {
	ProductID string     `query:"product_id"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
	PageRequest
}

// MovementListResponse lista paginada de movimientos (timestamp descendente).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReorderListResponse productos en o bajo su umbral de reposición.
type ReorderListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
