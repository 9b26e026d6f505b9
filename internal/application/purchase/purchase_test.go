package purchase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Traslados-api/internal/application/purchase"
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

func (r *memStockRepo) snapshot() map[string]*entity.Stock {
	cp := make(map[string]*entity.Stock, len(r.rows))
	for k, v := range r.rows {
		row := *v
		cp[k] = &row
	}
	return cp
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

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return &cp
}

type memOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
	seq    int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func (r *memOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.orders[id]; ok {
		return copyOrder(o), nil
	}
	return nil, nil
}

func (r *memOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *memOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (r *memOrderRepo) NextOrderNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("OC-%06d", r.seq), nil
}

func (r *memOrderRepo) snapshot() map[string]*entity.PurchaseOrder {
	cp := make(map[string]*entity.PurchaseOrder, len(r.orders))
	for k, v := range r.orders {
		cp[k] = copyOrder(v)
	}
	return cp
}

type fakeTxRunner struct {
	orderRepo      *memOrderRepo
	stockRepo      *memStockRepo
	adjustmentRepo *memAdjustmentRepo
}

func (f *fakeTxRunner) RunPurchase(_ context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	stockRepo repository.StockRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) error) error {
	stockSnap := f.stockRepo.snapshot()
	orderSnap := f.orderRepo.snapshot()
	adjLen := len(f.adjustmentRepo.entries)

	if err := fn(f.orderRepo, f.stockRepo, f.adjustmentRepo); err != nil {
		f.stockRepo.rows = stockSnap
		f.orderRepo.orders = orderSnap
		f.adjustmentRepo.entries = f.adjustmentRepo.entries[:adjLen]
		return err
	}
	return nil
}

type fixture struct {
	create  *purchase.CreateOrderUseCase
	receive *purchase.ReceiveOrderUseCase
	cancel  *purchase.CancelOrderUseCase

	stockRepo *memStockRepo
	orderRepo *memOrderRepo
}

func newFixture() *fixture {
	stockRepo := newMemStockRepo()
	orderRepo := newMemOrderRepo()
	adjustmentRepo := &memAdjustmentRepo{}
	productRepo := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Café molido 500g"},
		"p2": {ID: "p2", Name: "Azúcar 1kg"},
	}}
	tx := &fakeTxRunner{orderRepo: orderRepo, stockRepo: stockRepo, adjustmentRepo: adjustmentRepo}

	return &fixture{
		create:    purchase.NewCreateOrderUseCase(tx, productRepo),
		receive:   purchase.NewReceiveOrderUseCase(tx),
		cancel:    purchase.NewCancelOrderUseCase(tx),
		stockRepo: stockRepo,
		orderRepo: orderRepo,
	}
}

func newOrder(t *testing.T, f *fixture, qty int64, price int64) *entity.PurchaseOrder {
	t.Helper()
	order, err := f.create.CreateOrder(context.Background(), purchase.CreateInput{
		SupplierID: "prov1",
		Items: []purchase.CreateItemInput{
			{ProductID: "p1", Quantity: qty, UnitPrice: decimal.NewFromInt(price)},
		},
		UserID: "u1",
	})
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear orden
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_TotalesYNumero(t *testing.T) {
	f := newFixture()

	order, err := f.create.CreateOrder(context.Background(), purchase.CreateInput{
		SupplierID: "prov1",
		Items: []purchase.CreateItemInput{
			{ProductID: "p1", Quantity: 100, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: "p2", Quantity: 5, UnitPrice: decimal.NewFromFloat(2.5)},
		},
		UserID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, "OC-000001", order.OrderNumber)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(1012.5)),
		"total ordenado: 100×10 + 5×2.5")
	assert.Equal(t, "Café molido 500g", order.Items[0].ProductName,
		"nombre congelado al crear")
}

func TestCreateOrder_NoTocaStock(t *testing.T) {
	f := newFixture()
	f.stockRepo.set("p1", domain.Warehouse(), 3)

	newOrder(t, f, 100, 10)
	assert.Equal(t, int64(3), f.stockRepo.quantity("p1", domain.Warehouse()),
		"el stock solo se mueve al recepcionar")
}

func TestCreateOrder_ValidacionDeLineas(t *testing.T) {
	f := newFixture()

	_, err := f.create.CreateOrder(context.Background(), purchase.CreateInput{
		SupplierID: "",
		Items: []purchase.CreateItemInput{
			{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(-1)},
		},
		UserID: "u1",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Fields), 3)
}

func TestCreateOrder_ProductoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.create.CreateOrder(context.Background(), purchase.CreateInput{
		SupplierID: "prov1",
		Items: []purchase.CreateItemInput{
			{ProductID: "ghost", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
		UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepcionar orden
// ──────────────────────────────────────────────────────────────────────────────

// Entrega corta: ordenar 100 a $10 y recibir 95 deja la orden partial con
// total $950 (lo recibido, no lo ordenado) y el stock en destino +95.
func TestReceiveOrder_EntregaCorta(t *testing.T) {
	f := newFixture()
	order := newOrder(t, f, 100, 10)

	received, err := f.receive.ReceiveOrder(context.Background(), purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 95},
		},
		StockLocation: domain.Warehouse(),
		InvoiceNumber: "FV-1234",
		UserID:        "u2",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPartial, received.Status)
	assert.True(t, received.Total.Equal(decimal.NewFromInt(950)),
		"el total se recalcula desde lo recibido")
	assert.Equal(t, int64(95), f.stockRepo.quantity("p1", domain.Warehouse()))
	assert.Equal(t, "FV-1234", received.InvoiceNumber)
	require.NotNil(t, received.ReceivedDate)
}

// La tolerancia del proveedor admite hasta ceil(ordenado × 1.1).
func TestReceiveOrder_ToleranciaEnElLimite(t *testing.T) {
	f := newFixture()
	order := newOrder(t, f, 100, 10)

	received, err := f.receive.ReceiveOrder(context.Background(), purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 110},
		},
		StockLocation: domain.Warehouse(),
		UserID:        "u2",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusReceived, received.Status)
	assert.True(t, received.Total.Equal(decimal.NewFromInt(1100)))
	assert.Equal(t, int64(110), f.stockRepo.quantity("p1", domain.Warehouse()))
}

func TestReceiveOrder_FueraDeToleranciaRechazada(t *testing.T) {
	f := newFixture()
	order := newOrder(t, f, 100, 10)

	_, err := f.receive.ReceiveOrder(context.Background(), purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 115},
		},
		StockLocation: domain.Warehouse(),
		UserID:        "u2",
	})
	require.ErrorIs(t, err, domain.ErrValidation,
		"115 supera el máximo 110 para 100 ordenados")

	assert.Equal(t, int64(0), f.stockRepo.quantity("p1", domain.Warehouse()), "sin mutación")
	stored, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
}

// Multi-línea: una línea fuera de tolerancia rechaza la llamada completa,
// incluidas las líneas válidas.
func TestReceiveOrder_MultiLineaTodoONada(t *testing.T) {
	f := newFixture()
	order, err := f.create.CreateOrder(context.Background(), purchase.CreateInput{
		SupplierID: "prov1",
		Items: []purchase.CreateItemInput{
			{ProductID: "p1", Quantity: 100, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: "p2", Quantity: 10, UnitPrice: decimal.NewFromInt(2)},
		},
		UserID: "u1",
	})
	require.NoError(t, err)

	_, err = f.receive.ReceiveOrder(context.Background(), purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 100},
			{ItemID: order.Items[1].ID, ReceivedQuantity: 12}, // máximo 11
		},
		StockLocation: domain.Warehouse(),
		UserID:        "u2",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, int64(0), f.stockRepo.quantity("p1", domain.Warehouse()),
		"la línea válida tampoco se aplica")
	assert.Equal(t, int64(0), f.stockRepo.quantity("p2", domain.Warehouse()))
}

func TestReceiveOrder_CompletaQuedaReceived(t *testing.T) {
	f := newFixture()
	order := newOrder(t, f, 100, 10)

	received, err := f.receive.ReceiveOrder(context.Background(), purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 100},
		},
		StockLocation: domain.Store("s1"),
		UserID:        "u2",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusReceived, received.Status)
	assert.Equal(t, int64(100), f.stockRepo.quantity("p1", domain.Store("s1")),
		"la recepción entra en la ubicación elegida")
}

func TestReceiveOrder_SegundaRecepcionRechazada(t *testing.T) {
	f := newFixture()
	order := newOrder(t, f, 100, 10)

	in := purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 95},
		},
		StockLocation: domain.Warehouse(),
		UserID:        "u2",
	}
	_, err := f.receive.ReceiveOrder(context.Background(), in)
	require.NoError(t, err)

	_, err = f.receive.ReceiveOrder(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"una orden partial es terminal: el reclamo al proveedor va aparte")
	assert.Equal(t, int64(95), f.stockRepo.quantity("p1", domain.Warehouse()))
}

func TestReceiveOrder_RequiereTodasLasLineas(t *testing.T) {
	f := newFixture()
	order, err := f.create.CreateOrder(context.Background(), purchase.CreateInput{
		SupplierID: "prov1",
		Items: []purchase.CreateItemInput{
			{ProductID: "p1", Quantity: 10, UnitPrice: decimal.NewFromInt(1)},
			{ProductID: "p2", Quantity: 10, UnitPrice: decimal.NewFromInt(1)},
		},
		UserID: "u1",
	})
	require.NoError(t, err)

	_, err = f.receive.ReceiveOrder(context.Background(), purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 10},
		},
		StockLocation: domain.Warehouse(),
		UserID:        "u2",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelar orden
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_PendienteSeCancelaSinTocarStock(t *testing.T) {
	f := newFixture()
	order := newOrder(t, f, 100, 10)

	cancelled, err := f.cancel.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(0), f.stockRepo.quantity("p1", domain.Warehouse()))
}

func TestCancelOrder_TerminalRechazada(t *testing.T) {
	f := newFixture()
	order := newOrder(t, f, 100, 10)

	_, err := f.receive.ReceiveOrder(context.Background(), purchase.ReceiveInput{
		OrderID: order.ID,
		Lines: []purchase.ReceiveLineInput{
			{ItemID: order.Items[0].ID, ReceivedQuantity: 100},
		},
		StockLocation: domain.Warehouse(),
		UserID:        "u2",
	})
	require.NoError(t, err)

	_, err = f.cancel.CancelOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
