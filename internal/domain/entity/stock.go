package entity

import (
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
)

// Stock cantidad actual de un producto en una ubicación. Version respalda el
// compare-and-swap optimista en la escritura; dentro de una transacción la fila
// además se bloquea con SELECT FOR UPDATE.
type Stock struct {
	ProductID string
	Location  domain.Location
	Quantity  int64
	Version   int64
	UpdatedAt time.Time
}
