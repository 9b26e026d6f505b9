package entity

import (
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
)

// StockAdjustment registro de auditoría de una corrección absoluta de stock.
// Append-only: nunca se actualiza ni se borra. Toda mutación de stock (ajuste
// manual, traslado, cancelación, recepción) produce uno de estos registros.
type StockAdjustment struct {
	ID               string
	ProductID        string
	Location         domain.Location
	PreviousQuantity int64
	NewQuantity      int64
	Delta            int64 // NewQuantity - PreviousQuantity
	Reason           string
	UserID           string
	CreatedAt        time.Time
}
