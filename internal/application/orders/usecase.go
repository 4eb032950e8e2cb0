package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/application/inventory"
	"github.com/abastor/inventario-api/internal/domain"
	"github.com/abastor/inventario-api/internal/domain/entity"
	"github.com/abastor/inventario-api/internal/domain/repository"
)

// OrderUseCase motor de órdenes de compra: creación, recepción de ítems
// (con escritura en el libro de movimientos) y derivación de estado.
type OrderUseCase struct {
	txRunner     TxRunner
	stockApplier StockApplier
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	stockApplier StockApplier,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		stockApplier: stockApplier,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// CreateOrder crea una orden en estado pendiente con sus ítems y el total derivado.
// Todo dentro de una transacción.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		SupplierID:       in.SupplierID,
		Status:           entity.OrderStatusPendiente,
		ExpectedDelivery: in.ExpectedDelivery,
		Total:            decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, item := range in.Items {
		if item.QuantityOrdered <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if item.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		subtotal := item.UnitCost.Mul(decimal.NewFromInt(int64(item.QuantityOrdered)))
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			QuantityOrdered: item.QuantityOrdered,
			UnitCost:        item.UnitCost,
			Subtotal:        subtotal,
		})
		order.Total = order.Total.Add(subtotal)
	}

	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ReceiveItems procesa recepciones sobre una orden en UNA transacción: incrementa
// lo recibido por ítem, escribe un movimiento tipo compra por cada recepción y
// recalcula el estado de la orden. Cualquier fallo revierte la recepción completa.
func (uc *OrderUseCase) ReceiveItems(ctx context.Context, orderID, userID string, in dto.ReceiveItemsRequest) (*dto.OrderResponse, error) {
	if len(in.Receipts) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.OrderResponse
	err := uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelada {
			return domain.ErrConflict
		}

		now := time.Now()
		for _, receipt := range in.Receipts {
			if receipt.QuantityReceived <= 0 {
				return domain.ErrInvalidQuantity
			}
			item := findItem(order, receipt.ItemID)
			if item == nil {
				// El ítem no pertenece a la orden: la recepción completa se rechaza,
				// nunca se omite en silencio.
				return domain.ErrNotFound
			}
			if item.QuantityReceived+receipt.QuantityReceived > item.QuantityOrdered {
				return domain.ErrInvalidQuantity
			}
			item.QuantityReceived += receipt.QuantityReceived
			if err := orderRepo.UpdateItemReceived(item.ID, item.QuantityReceived); err != nil {
				return err
			}
			_, _, err := uc.stockApplier.ApplyInTx(productRepo, movementRepo, inventory.MovementInput{
				ProductID:   item.ProductID,
				Type:        entity.MovementTypeCompra,
				Quantity:    receipt.QuantityReceived,
				ReferenceID: order.ID,
				UserID:      userID,
			}, now)
			if err != nil {
				return err
			}
		}

		order.Status = entity.DeriveOrderStatus(order.Items)
		order.UpdatedAt = now
		if err := orderRepo.UpdateStatus(order.ID, order.Status, now); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelOrder cancela una orden; solo es válido desde pendiente.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	err := uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPendiente {
			return domain.ErrConflict
		}
		now := time.Now()
		order.Status = entity.OrderStatusCancelada
		order.UpdatedAt = now
		if err := orderRepo.UpdateStatus(order.ID, order.Status, now); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrder obtiene una orden con sus ítems.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	_ = ctx
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes con filtro opcional por proveedor.
func (uc *OrderUseCase) ListOrders(ctx context.Context, supplierID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	_ = ctx
	page.DefaultPage()
	list, err := uc.orderRepo.List(supplierID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func findItem(order *entity.PurchaseOrder, itemID string) *entity.PurchaseOrderItem {
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			return &order.Items[i]
		}
	}
	return nil
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
			Subtotal:         it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:               o.ID,
		SupplierID:       o.SupplierID,
		Status:           o.Status,
		ExpectedDelivery: o.ExpectedDelivery,
		Total:            o.Total,
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
