package inventory

import (
	"context"

	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/domain/entity"
)

// ListMovements devuelve movimientos ordenados por fecha descendente, filtrables
// por producto y rango de fechas. Solo lectura, reiniciable (sin cursor ni caché).
func (uc *ApplyMovementUseCase) ListMovements(ctx context.Context, in dto.ListMovementsRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	_ = ctx

	var (
		list []*entity.StockMovement
		err  error
	)
	if in.ProductID != "" {
		list, err = uc.movementRepo.ListByProduct(in.ProductID, in.From, in.To, in.Limit, in.Offset)
	} else {
		list, err = uc.movementRepo.List(in.From, in.To, in.Limit, in.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ListReorderCandidates devuelve los productos en o bajo su umbral de reposición,
// ordenados por cantidad ascendente y luego nombre. Siempre consulta el estado
// confirmado más reciente.
func (uc *ApplyMovementUseCase) ListReorderCandidates(ctx context.Context) (*dto.ReorderListResponse, error) {
	_ = ctx
	list, err := uc.productRepo.ListBelowReorderThreshold()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ReorderListResponse{Items: items, Total: len(items)}, nil
}
