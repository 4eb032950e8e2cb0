package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/domain"
	"github.com/abastor/inventario-api/internal/domain/entity"
	"github.com/abastor/inventario-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos de inventario de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), aplica el delta y registra
// la entrada en el libro de movimientos, todo con Commit/Rollback conjunto.
type ApplyMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// MovementInput entrada para aplicar un movimiento.
// Quantity es positiva para todos los tipos salvo ajuste_manual, cuyo signo
// indica la dirección del ajuste.
type MovementInput struct {
	ProductID   string
	Type        string
	Quantity    int
	ReferenceID string
	Note        string
	UserID      string
}

// Apply valida la entrada, inicia una transacción y aplica el movimiento.
// Devuelve el producto actualizado y la entrada creada en el libro.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, in MovementInput) (*dto.ApplyMovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidMovementType
	}
	if in.Quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Type != entity.MovementTypeAjusteManual && in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var out *dto.ApplyMovementResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, movement, err := applyInTx(productRepo, movementRepo, in, time.Now())
		if err != nil {
			return err
		}
		out = &dto.ApplyMovementResponse{
			Product:  *toProductResponse(product),
			Movement: *toMovementResponse(movement),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyInTx aplica un movimiento usando repositorios ya atados a la transacción
// del caller (ej. la recepción de una orden de compra). La validación de tipo y
// cantidad corre igual que en Apply.
func (uc *ApplyMovementUseCase) ApplyInTx(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	in MovementInput,
	now time.Time,
) (*entity.Product, *entity.StockMovement, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, nil, domain.ErrInvalidMovementType
	}
	if in.Quantity == 0 || (in.Type != entity.MovementTypeAjusteManual && in.Quantity < 0) {
		return nil, nil, domain.ErrInvalidQuantity
	}
	return applyInTx(productRepo, movementRepo, in, now)
}

// applyInTx bloquea el producto, calcula el delta con signo según el tipo,
// rechaza el underflow y persiste producto + movimiento.
func applyInTx(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	in MovementInput,
	now time.Time,
) (*entity.Product, *entity.StockMovement, error) {
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	delta := in.Quantity
	if entity.OutboundMovementType(in.Type) {
		delta = -in.Quantity
	}
	newQuantity := product.Quantity + delta
	if newQuantity < 0 {
		return nil, nil, domain.ErrInsufficientStock
	}

	product.Quantity = newQuantity
	product.UpdatedAt = now
	if err := productRepo.UpdateQuantity(product.ID, newQuantity, now); err != nil {
		return nil, nil, err
	}

	movement := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    delta,
		Balance:     newQuantity,
		ReferenceID: in.ReferenceID,
		Note:        in.Note,
		CreatedAt:   now,
		CreatedBy:   in.UserID,
	}
	if err := movementRepo.Create(movement); err != nil {
		return nil, nil, err
	}
	return product, movement, nil
}

// SetQuantity fija existencias absolutas vía el libro: aplica un ajuste_manual
// con delta = target - actual. Un delta cero devuelve el producto sin crear
// entrada en el libro.
func (uc *ApplyMovementUseCase) SetQuantity(ctx context.Context, productID string, target int, note, userID string) (*dto.ApplyMovementResponse, error) {
	if target < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var out *dto.ApplyMovementResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta := target - product.Quantity
		if delta == 0 {
			out = &dto.ApplyMovementResponse{Product: *toProductResponse(product)}
			return nil
		}
		in := MovementInput{
			ProductID: productID,
			Type:      entity.MovementTypeAjusteManual,
			Quantity:  delta,
			Note:      note,
			UserID:    userID,
		}
		updated, movement, err := applyInTx(productRepo, movementRepo, in, time.Now())
		if err != nil {
			return err
		}
		out = &dto.ApplyMovementResponse{
			Product:  *toProductResponse(updated),
			Movement: *toMovementResponse(movement),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
