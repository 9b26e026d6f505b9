package repository

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// TransferRepository puerto de persistencia de traslados y sus líneas.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	GetByID(ctx context.Context, id string) (*entity.StockTransfer, error)
	// GetForUpdate bloquea la cabecera del traslado durante la tx (cancelación
	// y recepción concurrentes sobre el mismo traslado se serializan aquí).
	GetForUpdate(ctx context.Context, id string) (*entity.StockTransfer, error)
	// Update persiste estado, campos de recepción y quantity_received por línea.
	Update(ctx context.Context, transfer *entity.StockTransfer) error
	List(ctx context.Context, limit, offset int) ([]*entity.StockTransfer, error)
	// NextTransferNumber consume la secuencia y devuelve el número legible (TR-000001).
	NextTransferNumber(ctx context.Context) (string, error)
}
