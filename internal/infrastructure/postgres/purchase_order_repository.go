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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo persistencia de órdenes de compra sobre PostgreSQL:
// cabecera en purchase_orders, líneas en purchase_order_items.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, order_number, supplier_id, status, total, invoice_number, notes,
	estimated_delivery_date, received_date, created_at, created_by`

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	invoice := (*string)(nil)
	if o.InvoiceNumber != "" {
		invoice = &o.InvoiceNumber
	}
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.SupplierID, o.Status, o.Total, invoice, o.Notes,
		o.EstimatedDeliveryDate, o.ReceivedDate, o.CreatedAt, o.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		itemQuery := `
			INSERT INTO purchase_order_items (id, order_id, product_id, product_name, quantity, unit_price, total, received_quantity, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, o.ID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.Total, item.ReceivedQuantity, i,
		); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate obtiene la orden bloqueando la cabecera durante la transacción.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	o, err := r.scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update persiste estado, totales, factura y received_quantity por línea.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, total = $3, invoice_number = $4, notes = $5, received_date = $6
		WHERE id = $1`
	invoice := (*string)(nil)
	if o.InvoiceNumber != "" {
		invoice = &o.InvoiceNumber
	}
	tag, err := r.q.Exec(ctx, query, o.ID, o.Status, o.Total, invoice, o.Notes, o.ReceivedDate)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "orden de compra", ID: o.ID}
	}

	for i := range o.Items {
		item := &o.Items[i]
		itemQuery := `
			UPDATE purchase_order_items
			SET received_quantity = $2, total = $3
			WHERE id = $1`
		if _, err := r.q.Exec(ctx, itemQuery, item.ID, item.ReceivedQuantity, item.Total); err != nil {
			return fmt.Errorf("update purchase order item: %w", err)
		}
	}
	return nil
}

// List órdenes paginadas, más reciente primero, con sus líneas.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM purchase_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	for _, o := range out {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NextOrderNumber consume la secuencia y devuelve el número legible.
func (r *PurchaseOrderRepo) NextOrderNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('purchase_order_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}
	return fmt.Sprintf("OC-%06d", n), nil
}

func (r *PurchaseOrderRepo) scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var invoice *string
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.SupplierID, &o.Status, &o.Total, &invoice, &o.Notes,
		&o.EstimatedDeliveryDate, &o.ReceivedDate, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if invoice != nil {
		o.InvoiceNumber = *invoice
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		SELECT id, product_id, product_name, quantity, unit_price, total, received_quantity
		FROM purchase_order_items
		WHERE order_id = $1
		ORDER BY position`
	rows, err := r.q.Query(ctx, query, o.ID)
	if err != nil {
		return fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Total, &item.ReceivedQuantity,
		); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load purchase order items: %w", err)
	}
	return nil
}
