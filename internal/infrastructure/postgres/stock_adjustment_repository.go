package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación append-only del registro de auditoría
// sobre PostgreSQL (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un registro de ajuste. No existe Update ni Delete.
func (r *StockAdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustments (id, product_id, location_kind, store_id, previous_quantity, new_quantity, delta, reason, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	reason := (*string)(nil)
	if a.Reason != "" {
		reason = &a.Reason
	}
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, string(a.Location.Kind), a.Location.StoreID,
		a.PreviousQuantity, a.NewQuantity, a.Delta, reason, a.UserID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock adjustment: %w", err)
	}
	return nil
}

// ListByProduct histórico de un producto, más reciente primero.
func (r *StockAdjustmentRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, product_id, location_kind, store_id, previous_quantity, new_quantity, delta, reason, user_id, created_at
		FROM stock_adjustments
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		var kind, storeID string
		var reason *string
		if err := rows.Scan(
			&a.ID, &a.ProductID, &kind, &storeID,
			&a.PreviousQuantity, &a.NewQuantity, &a.Delta, &reason, &a.UserID, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		a.Location = domain.Location{Kind: domain.LocationKind(kind), StoreID: storeID}
		if reason != nil {
			a.Reason = *reason
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	return out, nil
}
