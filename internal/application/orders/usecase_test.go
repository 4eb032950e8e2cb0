package orders_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/application/inventory"
	"github.com/abastor/inventario-api/internal/application/orders"
	"github.com/abastor/inventario-api/internal/domain"
	"github.com/abastor/inventario-api/internal/domain/entity"
	"github.com/abastor/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El fakeTxRunner toma snapshot de órdenes, productos y libro antes de fn y
// restaura todo si fn falla: así los tests verifican que una recepción fallida
// no deja recepciones parciales.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity int, updatedAt time.Time) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) ListBelowReorderThreshold() ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) snapshot() map[string]*entity.Product {
	snap := make(map[string]*entity.Product, len(r.products))
	for id, p := range r.products {
		cp := *p
		snap[id] = &cp
	}
	return snap
}

type fakeMovementRepo struct {
	entries []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }

func (r *fakeMovementRepo) List(*time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return &cp
}

func (r *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) UpdateItemReceived(itemID string, quantityReceived int) error {
	for _, o := range r.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].QuantityReceived = quantityReceived
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) UpdateStatus(orderID, status string, updatedAt time.Time) error {
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *fakeOrderRepo) List(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if supplierID != "" && o.SupplierID != supplierID {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) snapshot() map[string]*entity.PurchaseOrder {
	snap := make(map[string]*entity.PurchaseOrder, len(r.orders))
	for id, o := range r.orders {
		snap[id] = copyOrder(o)
	}
	return snap
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) Update(*entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) List(int, int) ([]*entity.Supplier, error) { return nil, nil }

func (r *fakeSupplierRepo) Delete(string) error { return nil }

type fakeTxRunner struct {
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (tx *fakeTxRunner) RunOrders(_ context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	orderSnap := tx.orders.snapshot()
	prodSnap := tx.products.snapshot()
	movSnap := len(tx.movements.entries)
	if err := fn(tx.orders, tx.products, tx.movements); err != nil {
		tx.orders.orders = orderSnap
		tx.products.products = prodSnap
		tx.movements.entries = tx.movements.entries[:movSnap]
		return err
	}
	return nil
}

type fixture struct {
	uc        *orders.OrderUseCase
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func newFixture(products ...*entity.Product) *fixture {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Distribuidora Andina"},
	}}
	tx := &fakeTxRunner{orders: orderRepo, products: productRepo, movements: movementRepo}
	// Solo se usa ApplyInTx, que opera sobre los repos de la tx del caller.
	stock := inventory.NewApplyMovementUseCase(nil, nil, nil)
	uc := orders.NewOrderUseCase(tx, stock, orderRepo, supplierRepo, productRepo)
	return &fixture{uc: uc, orders: orderRepo, products: productRepo, movements: movementRepo}
}

func teclado() *entity.Product {
	return &entity.Product{ID: "prod-teclado", SKU: "ELEC-003", Name: "Teclado", Quantity: 2, ReorderThreshold: 5}
}

// createOrder crea una orden de 10 unidades a 2.00 y devuelve la respuesta.
func createOrder(t *testing.T, f *fixture) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.CreateOrderItemRequest{
			{ProductID: "prod-teclado", QuantityOrdered: 10, UnitCost: decimal.RequireFromString("2.00")},
		},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_TotalDerivadoYEstadoPendiente(t *testing.T) {
	f := newFixture(teclado())
	out := createOrder(t, f)

	assert.Equal(t, entity.OrderStatusPendiente, out.Status)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("20.00")), "total = 10 × 2.00")
	require.Len(t, out.Items, 1)
	assert.Equal(t, 10, out.Items[0].QuantityOrdered)
	assert.Equal(t, 0, out.Items[0].QuantityReceived, "nada recibido al crear")
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.RequireFromString("20.00")))
}

func TestCreateOrder_SinItems(t *testing.T) {
	f := newFixture(teclado())
	_, err := f.uc.CreateOrder(context.Background(), dto.CreateOrderRequest{SupplierID: "sup-1"})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	f := newFixture(teclado())
	_, err := f.uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: "no-existe",
		Items:      []dto.CreateOrderItemRequest{{ProductID: "prod-teclado", QuantityOrdered: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_CantidadCero(t *testing.T) {
	f := newFixture(teclado())
	_, err := f.uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: "sup-1",
		Items:      []dto.CreateOrderItemRequest{{ProductID: "prod-teclado", QuantityOrdered: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveItems
// ──────────────────────────────────────────────────────────────────────────────

// Recepción parcial: suma a lo recibido, incrementa existencias, escribe un
// movimiento compra con referencia a la orden y deriva parcialmente_recibida.
func TestReceiveItems_RecepcionParcial(t *testing.T) {
	f := newFixture(teclado())
	order := createOrder(t, f)

	out, err := f.uc.ReceiveItems(context.Background(), order.ID, "user-1", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{{ItemID: order.Items[0].ID, QuantityReceived: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusParcial, out.Status)
	assert.Equal(t, 4, out.Items[0].QuantityReceived)

	product, _ := f.products.GetByID("prod-teclado")
	assert.Equal(t, 6, product.Quantity, "2 + 4 recibidas")

	require.Len(t, f.movements.entries, 1)
	mov := f.movements.entries[0]
	assert.Equal(t, entity.MovementTypeCompra, mov.Type)
	assert.Equal(t, 4, mov.Quantity)
	assert.Equal(t, 6, mov.Balance)
	assert.Equal(t, order.ID, mov.ReferenceID, "el movimiento referencia la orden")
	assert.Equal(t, "user-1", mov.CreatedBy)
}

// Completar lo pendiente lleva la orden a recibida_completa.
func TestReceiveItems_RecepcionCompleta(t *testing.T) {
	f := newFixture(teclado())
	order := createOrder(t, f)
	itemID := order.Items[0].ID

	_, err := f.uc.ReceiveItems(context.Background(), order.ID, "", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{{ItemID: itemID, QuantityReceived: 4}},
	})
	require.NoError(t, err)

	out, err := f.uc.ReceiveItems(context.Background(), order.ID, "", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{{ItemID: itemID, QuantityReceived: 6}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleta, out.Status)
	assert.Equal(t, 10, out.Items[0].QuantityReceived)

	product, _ := f.products.GetByID("prod-teclado")
	assert.Equal(t, 12, product.Quantity, "2 + 10 recibidas")
}

// Recibir más de lo pedido se rechaza y nada queda aplicado.
func TestReceiveItems_SobreRecepcion(t *testing.T) {
	f := newFixture(teclado())
	order := createOrder(t, f)

	_, err := f.uc.ReceiveItems(context.Background(), order.ID, "", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{{ItemID: order.Items[0].ID, QuantityReceived: 11}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	stored, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, 0, stored.Items[0].QuantityReceived)
	assert.Equal(t, entity.OrderStatusPendiente, stored.Status)
}

// Un ítem ajeno a la orden invalida la recepción COMPLETA: la recepción válida
// previa del mismo lote también se revierte.
func TestReceiveItems_ItemAjenoRevierteTodoElLote(t *testing.T) {
	f := newFixture(teclado())
	order := createOrder(t, f)

	_, err := f.uc.ReceiveItems(context.Background(), order.ID, "", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{
			{ItemID: order.Items[0].ID, QuantityReceived: 4},
			{ItemID: "item-ajeno", QuantityReceived: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	stored, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, 0, stored.Items[0].QuantityReceived, "la recepción válida del lote se revierte")
	product, _ := f.products.GetByID("prod-teclado")
	assert.Equal(t, 2, product.Quantity, "las existencias no deben cambiar")
	assert.Empty(t, f.movements.entries, "el libro no debe tener entradas")
}

func TestReceiveItems_OrdenCancelada(t *testing.T) {
	f := newFixture(teclado())
	order := createOrder(t, f)

	_, err := f.uc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.uc.ReceiveItems(context.Background(), order.ID, "", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{{ItemID: order.Items[0].ID, QuantityReceived: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReceiveItems_OrdenInexistente(t *testing.T) {
	f := newFixture(teclado())
	_, err := f.uc.ReceiveItems(context.Background(), "no-existe", "", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{{ItemID: "x", QuantityReceived: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_DesdePendiente(t *testing.T) {
	f := newFixture(teclado())
	order := createOrder(t, f)

	out, err := f.uc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelada, out.Status)
}

// Una orden con recepciones ya no se puede cancelar.
func TestCancelOrder_ConRecepcionesFalla(t *testing.T) {
	f := newFixture(teclado())
	order := createOrder(t, f)

	_, err := f.uc.ReceiveItems(context.Background(), order.ID, "", dto.ReceiveItemsRequest{
		Receipts: []dto.ReceiptRequest{{ItemID: order.Items[0].ID, QuantityReceived: 1}},
	})
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
