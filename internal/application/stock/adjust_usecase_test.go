package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Traslados-api/internal/application/stock"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func stockKey(productID string, loc domain.Location) string {
	return productID + "|" + loc.String()
}

type memStockRepo struct {
	rows map[string]*entity.Stock
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{rows: make(map[string]*entity.Stock)}
}

func (r *memStockRepo) set(productID string, loc domain.Location, qty int64) {
	r.rows[stockKey(productID, loc)] = &entity.Stock{ProductID: productID, Location: loc, Quantity: qty, Version: 1}
}

func (r *memStockRepo) quantity(productID string, loc domain.Location) int64 {
	if row, ok := r.rows[stockKey(productID, loc)]; ok {
		return row.Quantity
	}
	return 0
}

func (r *memStockRepo) Get(_ context.Context, productID string, loc domain.Location) (*entity.Stock, error) {
	if row, ok := r.rows[stockKey(productID, loc)]; ok {
		cp := *row
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, Location: loc}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, productID string, loc domain.Location) (*entity.Stock, error) {
	return r.Get(ctx, productID, loc)
}

func (r *memStockRepo) Save(_ context.Context, s *entity.Stock) error {
	cp := *s
	cp.Version++
	r.rows[stockKey(s.ProductID, s.Location)] = &cp
	return nil
}

func (r *memStockRepo) Summary(_ context.Context, productID string) (entity.StockSummary, error) {
	var warehouse, store int64
	for _, row := range r.rows {
		if row.ProductID != productID {
			continue
		}
		if row.Location.Kind == domain.LocationWarehouse {
			warehouse += row.Quantity
		} else {
			store += row.Quantity
		}
	}
	return entity.NewStockSummary(warehouse, store), nil
}

type memAdjustmentRepo struct {
	entries []*entity.StockAdjustment
}

func (r *memAdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	cp := *a
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memAdjustmentRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ProductID == productID {
			out = append(out, r.entries[i])
		}
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeTxRunner pasa los repos compartidos sin transacción real. Suficiente
// aquí: el caso de uso valida antes de escribir.
type fakeTxRunner struct {
	stockRepo      *memStockRepo
	adjustmentRepo *memAdjustmentRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) error) error {
	return fn(f.stockRepo, f.adjustmentRepo)
}

func newFixture() (*stock.AdjustStockUseCase, *memStockRepo, *memAdjustmentRepo) {
	stockRepo := newMemStockRepo()
	adjustmentRepo := &memAdjustmentRepo{}
	productRepo := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Café molido 500g"},
	}}
	uc := stock.NewAdjustStockUseCase(
		&fakeTxRunner{stockRepo: stockRepo, adjustmentRepo: adjustmentRepo},
		productRepo, stockRepo, adjustmentRepo,
	)
	return uc, stockRepo, adjustmentRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_EscribeCantidadYAuditoria(t *testing.T) {
	uc, stockRepo, adjustmentRepo := newFixture()
	stockRepo.set("p1", domain.Warehouse(), 50)

	adj, err := uc.AdjustStock(context.Background(), stock.AdjustInput{
		ProductID:   "p1",
		Location:    domain.Warehouse(),
		NewQuantity: 42,
		Reason:      "conteo físico mensual",
		UserID:      "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), stockRepo.quantity("p1", domain.Warehouse()))
	assert.Equal(t, int64(50), adj.PreviousQuantity)
	assert.Equal(t, int64(42), adj.NewQuantity)
	assert.Equal(t, int64(-8), adj.Delta)
	assert.Equal(t, "u1", adj.UserID)
	require.Len(t, adjustmentRepo.entries, 1)
}

// Repetir el mismo objetivo absoluto es idempotente en cantidad: la segunda
// llamada registra auditoría con delta 0 y el stock no cambia.
func TestAdjustStock_MismoObjetivoDejaDeltaCero(t *testing.T) {
	uc, stockRepo, adjustmentRepo := newFixture()
	stockRepo.set("p1", domain.Warehouse(), 50)

	in := stock.AdjustInput{
		ProductID:   "p1",
		Location:    domain.Warehouse(),
		NewQuantity: 42,
		Reason:      "conteo físico mensual",
		UserID:      "u1",
	}
	_, err := uc.AdjustStock(context.Background(), in)
	require.NoError(t, err)
	second, err := uc.AdjustStock(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(42), stockRepo.quantity("p1", domain.Warehouse()))
	assert.Equal(t, int64(0), second.Delta)
	assert.Len(t, adjustmentRepo.entries, 2, "cada llamada deja su registro de auditoría")
}

func TestAdjustStock_CantidadNegativaRechazada(t *testing.T) {
	uc, stockRepo, _ := newFixture()
	stockRepo.set("p1", domain.Warehouse(), 50)

	_, err := uc.AdjustStock(context.Background(), stock.AdjustInput{
		ProductID:   "p1",
		Location:    domain.Warehouse(),
		NewQuantity: -1,
		UserID:      "u1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, int64(50), stockRepo.quantity("p1", domain.Warehouse()), "sin mutación")
}

func TestAdjustStock_MotivoCortoRechazado(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.AdjustStock(context.Background(), stock.AdjustInput{
		ProductID:   "p1",
		Location:    domain.Warehouse(),
		NewQuantity: 10,
		Reason:      "corto",
		UserID:      "u1",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "reason", verr.Fields[0].Field)
}

func TestAdjustStock_MotivoVacioPermitido(t *testing.T) {
	uc, stockRepo, _ := newFixture()
	stockRepo.set("p1", domain.Warehouse(), 5)

	_, err := uc.AdjustStock(context.Background(), stock.AdjustInput{
		ProductID:   "p1",
		Location:    domain.Warehouse(),
		NewQuantity: 7,
		UserID:      "u1",
	})
	assert.NoError(t, err, "el motivo es opcional; el mínimo aplica solo si se envía")
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.AdjustStock(context.Background(), stock.AdjustInput{
		ProductID:   "ghost",
		Location:    domain.Warehouse(),
		NewQuantity: 10,
		UserID:      "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_UbicacionInvalida(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.AdjustStock(context.Background(), stock.AdjustInput{
		ProductID:   "p1",
		Location:    domain.Location{Kind: "truck"},
		NewQuantity: 10,
		UserID:      "u1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStockSummary_AgregaUbicaciones(t *testing.T) {
	uc, stockRepo, _ := newFixture()
	stockRepo.set("p1", domain.Warehouse(), 30)
	stockRepo.set("p1", domain.Store("s1"), 8)
	stockRepo.set("p1", domain.Store("s2"), 4)

	summary, err := uc.GetStockSummary(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), summary.Warehouse)
	assert.Equal(t, int64(12), summary.Store, "los locales se agregan")
	assert.Equal(t, int64(42), summary.Total)
}

func TestListAdjustments_MasRecientePrimero(t *testing.T) {
	uc, stockRepo, _ := newFixture()
	stockRepo.set("p1", domain.Warehouse(), 0)

	for _, qty := range []int64{10, 20, 30} {
		_, err := uc.AdjustStock(context.Background(), stock.AdjustInput{
			ProductID:   "p1",
			Location:    domain.Warehouse(),
			NewQuantity: qty,
			UserID:      "u1",
		})
		require.NoError(t, err)
	}

	list, err := uc.ListAdjustments(context.Background(), "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(30), list[0].NewQuantity, "el último ajuste sale primero")
}
