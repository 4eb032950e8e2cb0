package inventory_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abastor/inventario-api/internal/application/dto"
	"github.com/abastor/inventario-api/internal/application/inventory"
	"github.com/abastor/inventario-api/internal/domain"
	"github.com/abastor/inventario-api/internal/domain/entity"
	"github.com/abastor/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Emulan Postgres a nivel de contrato: copias al leer, snapshot/rollback en el
// TxRunner para verificar que un fallo a mitad de camino no deja estado parcial.
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

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) ListBelowReorderThreshold() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Quantity <= p.ReorderThreshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
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

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.entries {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.ListByProduct("", from, to, limit, offset)
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.entries {
		if productID != "" && m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// fakeTxRunner ejecuta fn sobre los fakes y, si falla, restaura el estado previo
// (el Rollback de la tx real).
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	prodSnap := tx.products.snapshot()
	movSnap := len(tx.movements.entries)
	if err := fn(tx.products, tx.movements); err != nil {
		tx.products.products = prodSnap
		tx.movements.entries = tx.movements.entries[:movSnap]
		return err
	}
	return nil
}

func buildUseCase(products ...*entity.Product) (*inventory.ApplyMovementUseCase, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: productRepo, movements: movementRepo}
	return inventory.NewApplyMovementUseCase(tx, productRepo, movementRepo), productRepo, movementRepo
}

func laptop() *entity.Product {
	return &entity.Product{
		ID:               "prod-laptop",
		SKU:              "ELEC-001",
		Name:             "Laptop 14\"",
		Quantity:         10,
		ReorderThreshold: 5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

// Una venta descuenta existencias y deja exactamente una entrada en el libro
// con delta negativo y el saldo resultante.
func TestApply_VentaDescuentaYRegistraMovimiento(t *testing.T) {
	uc, productRepo, movementRepo := buildUseCase(laptop())

	out, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "prod-laptop",
		Type:      entity.MovementTypeVenta,
		Quantity:  3,
		UserID:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, out.Product.Quantity, "10 - 3 = 7")
	assert.Equal(t, entity.MovementTypeVenta, out.Movement.Type)
	assert.Equal(t, -3, out.Movement.Quantity, "el delta de una salida es negativo")
	assert.Equal(t, 7, out.Movement.Balance, "el saldo registrado debe ser el posterior al movimiento")
	assert.Equal(t, "user-1", out.Movement.CreatedBy)

	stored, err := productRepo.GetByID("prod-laptop")
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Quantity, "las existencias persistidas deben coincidir")
	assert.Len(t, movementRepo.entries, 1, "exactamente una entrada en el libro")
}

func TestApply_EntradaAumentaExistencias(t *testing.T) {
	uc, _, _ := buildUseCase(laptop())

	out, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "prod-laptop",
		Type:      entity.MovementTypeEntrada,
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, out.Product.Quantity)
	assert.Equal(t, 5, out.Movement.Quantity, "el delta de una entrada es positivo")
	assert.Equal(t, 15, out.Movement.Balance)
}

// ajuste_manual admite signo: una cantidad negativa descuenta.
func TestApply_AjusteManualNegativo(t *testing.T) {
	uc, _, _ := buildUseCase(laptop())

	out, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "prod-laptop",
		Type:      entity.MovementTypeAjusteManual,
		Quantity:  -4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, out.Product.Quantity)
	assert.Equal(t, -4, out.Movement.Quantity)
}

// Si el movimiento dejaría existencias negativas se rechaza completo:
// ni las existencias ni el libro cambian.
func TestApply_StockInsuficiente_NoDejaEstadoParcial(t *testing.T) {
	p := laptop()
	p.Quantity = 2
	uc, productRepo, movementRepo := buildUseCase(p)

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "prod-laptop",
		Type:      entity.MovementTypeVenta,
		Quantity:  5,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := productRepo.GetByID("prod-laptop")
	assert.Equal(t, 2, stored.Quantity, "las existencias no deben cambiar")
	assert.Empty(t, movementRepo.entries, "no debe quedar entrada en el libro")
}

func TestApply_CantidadInvalida(t *testing.T) {
	uc, _, _ := buildUseCase(laptop())

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "prod-laptop", Type: entity.MovementTypeVenta, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad cero se rechaza")

	_, err = uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "prod-laptop", Type: entity.MovementTypeVenta, Quantity: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad negativa solo es válida en ajuste_manual")
}

func TestApply_TipoDesconocido(t *testing.T) {
	uc, _, _ := buildUseCase(laptop())

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "prod-laptop", Type: "regalo", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestApply_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildUseCase()

	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "no-existe", Type: entity.MovementTypeEntrada, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity
// ──────────────────────────────────────────────────────────────────────────────

// Fijar existencias absolutas pasa por el libro como ajuste_manual con
// delta = objetivo - actual.
func TestSetQuantity_RegistraAjusteConDelta(t *testing.T) {
	uc, _, movementRepo := buildUseCase(laptop())

	out, err := uc.SetQuantity(context.Background(), "prod-laptop", 12, "conteo físico", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 12, out.Product.Quantity)
	assert.Equal(t, entity.MovementTypeAjusteManual, out.Movement.Type)
	assert.Equal(t, 2, out.Movement.Quantity, "delta = 12 - 10")
	assert.Equal(t, "conteo físico", out.Movement.Note)
	assert.Len(t, movementRepo.entries, 1)
}

// Si el objetivo coincide con las existencias actuales no se escribe en el libro.
func TestSetQuantity_SinCambioNoEscribeLibro(t *testing.T) {
	uc, _, movementRepo := buildUseCase(laptop())

	out, err := uc.SetQuantity(context.Background(), "prod-laptop", 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, 10, out.Product.Quantity)
	assert.Empty(t, movementRepo.entries, "delta cero no genera entrada")
}

func TestSetQuantity_ObjetivoNegativo(t *testing.T) {
	uc, _, _ := buildUseCase(laptop())

	_, err := uc.SetQuantity(context.Background(), "prod-laptop", -1, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas: libro y lista de reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_FiltraPorProducto(t *testing.T) {
	other := &entity.Product{ID: "prod-mouse", SKU: "ELEC-002", Name: "Mouse", Quantity: 40, ReorderThreshold: 10}
	uc, _, _ := buildUseCase(laptop(), other)

	ctx := context.Background()
	_, err := uc.Apply(ctx, inventory.MovementInput{ProductID: "prod-laptop", Type: entity.MovementTypeVenta, Quantity: 1})
	require.NoError(t, err)
	_, err = uc.Apply(ctx, inventory.MovementInput{ProductID: "prod-mouse", Type: entity.MovementTypeVenta, Quantity: 2})
	require.NoError(t, err)

	all, err := uc.ListMovements(ctx, dto.ListMovementsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	onlyLaptop, err := uc.ListMovements(ctx, dto.ListMovementsRequest{ProductID: "prod-laptop"})
	require.NoError(t, err)
	require.Len(t, onlyLaptop.Items, 1)
	assert.Equal(t, "prod-laptop", onlyLaptop.Items[0].ProductID)
}

// Escenario de reposición: un producto con umbral 5 entra a la lista cuando su
// cantidad queda en o bajo 5, y no antes.
func TestListReorderCandidates_UmbralInclusivo(t *testing.T) {
	uc, _, _ := buildUseCase(laptop())
	ctx := context.Background()

	// 10 → 7: todavía sobre el umbral
	_, err := uc.Apply(ctx, inventory.MovementInput{ProductID: "prod-laptop", Type: entity.MovementTypeVenta, Quantity: 3})
	require.NoError(t, err)
	list, err := uc.ListReorderCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Items, "con 7 unidades y umbral 5 no debe sugerirse reposición")

	// 7 → 4: en o bajo el umbral
	_, err = uc.Apply(ctx, inventory.MovementInput{ProductID: "prod-laptop", Type: entity.MovementTypeVenta, Quantity: 3})
	require.NoError(t, err)
	list, err = uc.ListReorderCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "prod-laptop", list.Items[0].ID)
	assert.Equal(t, 4, list.Items[0].Quantity)
	assert.Equal(t, 1, list.Total)
}
