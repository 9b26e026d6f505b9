package repository

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// StockRepository puerto para consultar y actualizar stock por producto y
// ubicación. Las escrituras se usan solo dentro de transacciones.
type StockRepository interface {
	// Get devuelve la fila de stock; cantidad 0 y versión 0 si aún no existe.
	Get(ctx context.Context, productID string, loc domain.Location) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para el resto de la tx.
	GetForUpdate(ctx context.Context, productID string, loc domain.Location) (*entity.Stock, error)
	// Save inserta o actualiza con compare-and-swap sobre Version; devuelve
	// ConcurrencyConflictError si la fila cambió desde la lectura.
	Save(ctx context.Context, stock *entity.Stock) error
	// Summary resumen warehouse/store/total de un producto (agrega locales).
	Summary(ctx context.Context, productID string) (entity.StockSummary, error)
}
