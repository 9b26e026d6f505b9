package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool
// o tx). La tabla stock tiene PK (product_id, location_kind, store_id) y una
// columna version para el compare-and-swap en Save.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock; cantidad 0 y versión 0 si aún no existe.
func (r *StockRepo) Get(ctx context.Context, productID string, loc domain.Location) (*entity.Stock, error) {
	query := `
		SELECT quantity, version, updated_at
		FROM stock WHERE product_id = $1 AND location_kind = $2 AND store_id = $3`
	return r.get(ctx, query, productID, loc)
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) por el resto de
// la transacción, serializando escrituras concurrentes sobre el mismo
// (producto, ubicación).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string, loc domain.Location) (*entity.Stock, error) {
	query := `
		SELECT quantity, version, updated_at
		FROM stock WHERE product_id = $1 AND location_kind = $2 AND store_id = $3
		FOR UPDATE`
	return r.get(ctx, query, productID, loc)
}

func (r *StockRepo) get(ctx context.Context, query, productID string, loc domain.Location) (*entity.Stock, error) {
	s := entity.Stock{ProductID: productID, Location: loc}
	err := r.q.QueryRow(ctx, query, productID, string(loc.Kind), loc.StoreID).Scan(
		&s.Quantity, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, Location: loc}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Save inserta o actualiza con compare-and-swap sobre version: si la fila
// cambió desde la lectura el upsert no afecta filas y se devuelve
// ConcurrencyConflictError para que el caller reintente con datos frescos.
func (r *StockRepo) Save(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, location_kind, store_id, quantity, version, updated_at)
		VALUES ($1, $2, $3, $4, 1, now())
		ON CONFLICT (product_id, location_kind, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, version = stock.version + 1, updated_at = now()
		WHERE stock.version = $5`
	tag, err := r.q.Exec(ctx, query,
		stock.ProductID, string(stock.Location.Kind), stock.Location.StoreID,
		stock.Quantity, stock.Version,
	)
	if err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ConcurrencyConflictError{ProductID: stock.ProductID, Location: stock.Location}
	}
	return nil
}

// Summary agrega las filas de un producto: warehouse, store (todos los locales)
// y total derivado. El total nunca se almacena por separado.
func (r *StockRepo) Summary(ctx context.Context, productID string) (entity.StockSummary, error) {
	query := `
		SELECT location_kind, COALESCE(SUM(quantity), 0)
		FROM stock WHERE product_id = $1
		GROUP BY location_kind`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return entity.StockSummary{}, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()

	var warehouse, store int64
	for rows.Next() {
		var kind string
		var qty int64
		if err := rows.Scan(&kind, &qty); err != nil {
			return entity.StockSummary{}, fmt.Errorf("scan stock summary: %w", err)
		}
		switch domain.LocationKind(kind) {
		case domain.LocationWarehouse:
			warehouse = qty
		case domain.LocationStore:
			store = qty
		}
	}
	if err := rows.Err(); err != nil {
		return entity.StockSummary{}, fmt.Errorf("stock summary: %w", err)
	}
	return entity.NewStockSummary(warehouse, store), nil
}
