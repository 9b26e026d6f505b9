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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo persistencia de traslados sobre PostgreSQL: cabecera en
// stock_transfers, líneas en stock_transfer_items (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, transfer_number, from_kind, from_store_id, to_kind, to_store_id,
	status, notes, created_at, created_by, received_at, received_by`

// Create persiste cabecera y líneas. Se invoca dentro de la transacción del
// caso de uso, junto con los decrementos del origen.
func (r *TransferRepo) Create(ctx context.Context, t *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	receivedBy := (*string)(nil)
	if t.ReceivedBy != "" {
		receivedBy = &t.ReceivedBy
	}
	_, err := r.q.Exec(ctx, query,
		t.ID, t.TransferNumber,
		string(t.From.Kind), t.From.StoreID, string(t.To.Kind), t.To.StoreID,
		t.Status, t.Notes, t.CreatedAt, t.CreatedBy, t.ReceivedAt, receivedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}

	for i := range t.Items {
		item := &t.Items[i]
		itemQuery := `
			INSERT INTO stock_transfer_items (id, transfer_id, product_id, product_name, quantity, quantity_received, source_stock_before, note, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, t.ID, item.ProductID, item.ProductName,
			item.Quantity, item.QuantityReceived, item.SourceStockBefore, item.Note, i,
		); err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado con sus líneas; nil si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate obtiene el traslado bloqueando la cabecera (SELECT FOR UPDATE):
// cancelación y recepción concurrentes del mismo traslado se serializan aquí.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *TransferRepo) getOne(ctx context.Context, query, id string) (*entity.StockTransfer, error) {
	t, err := r.scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.loadItems(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update persiste estado, campos de recepción y quantity_received/note por
// línea. Cabecera y líneas viajan en la misma transacción del caso de uso.
func (r *TransferRepo) Update(ctx context.Context, t *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, notes = $3, received_at = $4, received_by = $5
		WHERE id = $1`
	receivedBy := (*string)(nil)
	if t.ReceivedBy != "" {
		receivedBy = &t.ReceivedBy
	}
	tag, err := r.q.Exec(ctx, query, t.ID, t.Status, t.Notes, t.ReceivedAt, receivedBy)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "traslado", ID: t.ID}
	}

	for i := range t.Items {
		item := &t.Items[i]
		itemQuery := `
			UPDATE stock_transfer_items
			SET quantity_received = $2, note = $3
			WHERE id = $1`
		if _, err := r.q.Exec(ctx, itemQuery, item.ID, item.QuantityReceived, item.Note); err != nil {
			return fmt.Errorf("update transfer item: %w", err)
		}
	}
	return nil
}

// List traslados paginados, más reciente primero, con sus líneas.
func (r *TransferRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM stock_transfers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockTransfer
	for rows.Next() {
		t, err := r.scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	for _, t := range out {
		if err := r.loadItems(ctx, t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NextTransferNumber consume la secuencia y devuelve el número legible.
func (r *TransferRepo) NextTransferNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('transfer_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next transfer number: %w", err)
	}
	return fmt.Sprintf("TR-%06d", n), nil
}

func (r *TransferRepo) scanTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	var fromKind, fromStore, toKind, toStore string
	var receivedBy *string
	err := row.Scan(
		&t.ID, &t.TransferNumber,
		&fromKind, &fromStore, &toKind, &toStore,
		&t.Status, &t.Notes, &t.CreatedAt, &t.CreatedBy, &t.ReceivedAt, &receivedBy,
	)
	if err != nil {
		return nil, err
	}
	t.From = domain.Location{Kind: domain.LocationKind(fromKind), StoreID: fromStore}
	t.To = domain.Location{Kind: domain.LocationKind(toKind), StoreID: toStore}
	if receivedBy != nil {
		t.ReceivedBy = *receivedBy
	}
	return &t, nil
}

func (r *TransferRepo) loadItems(ctx context.Context, t *entity.StockTransfer) error {
	query := `
		SELECT id, product_id, product_name, quantity, quantity_received, source_stock_before, note
		FROM stock_transfer_items
		WHERE transfer_id = $1
		ORDER BY position`
	rows, err := r.q.Query(ctx, query, t.ID)
	if err != nil {
		return fmt.Errorf("load transfer items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.TransferItem
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.QuantityReceived, &item.SourceStockBefore, &item.Note,
		); err != nil {
			return fmt.Errorf("scan transfer item: %w", err)
		}
		t.Items = append(t.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load transfer items: %w", err)
	}
	return nil
}
