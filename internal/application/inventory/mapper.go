package inventory

import (
	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		CostPrice:        p.CostPrice,
		SalePrice:        p.SalePrice,
		Quantity:         p.Quantity,
		ReorderThreshold: p.ReorderThreshold,
		CategoryID:       p.CategoryID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Balance:     m.Balance,
		ReferenceID: m.ReferenceID,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}
