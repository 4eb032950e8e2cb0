package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abastor/inventario-api/internal/domain"
	"github.com/abastor/inventario-api/internal/domain/entity"
	"github.com/abastor/inventario-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = "id, supplier_id, status, expected_delivery, total, created_at, updated_at"
const orderItemColumns = "id, order_id, product_id, quantity_ordered, quantity_received, unit_cost, subtotal"

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los ítems viven en purchase_order_items con borrado en cascada junto a la orden.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden con sus ítems.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.Status, order.ExpectedDelivery,
		order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_order_items (` + orderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range order.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.OrderID, item.ProductID, item.QuantityOrdered,
			item.QuantityReceived, item.UnitCost, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus ítems.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// UpdateItemReceived fija lo recibido acumulado de un ítem.
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, quantityReceived int) error {
	query := `UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, itemID, quantityReceived)
	if err != nil {
		return fmt.Errorf("update item received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus persiste el estado derivado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status string, updatedAt time.Time) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, orderID, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes (opcionalmente por proveedor), más reciente primero, con sus ítems.
func (r *PurchaseOrderRepo) List(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders`
	args := []any{}
	pos := 1
	if supplierID != "" {
		query += fmt.Sprintf(" WHERE supplier_id = $%d", pos)
		args = append(args, supplierID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.Status, &o.ExpectedDelivery,
			&o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.listItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

func (r *PurchaseOrderRepo) getOne(query, id string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.SupplierID, &o.Status, &o.ExpectedDelivery,
		&o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.listItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PurchaseOrderRepo) listItems(orderID string) ([]entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.QuantityOrdered,
			&it.QuantityReceived, &it.UnitCost, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
