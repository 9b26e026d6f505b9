package transfer

import (
	"context"
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de traslado atados a esa tx. Todas las líneas de un
// createTransfer/cancelTransfer/confirmReceipt y la actualización de la
// cabecera confirman o revierten juntas.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error) error
}

// GuideData datos para la guía de traslado imprimible.
type GuideData struct {
	Transfer    *entity.StockTransfer
	FromName    string // nombre legible del origen (bodega o local)
	ToName      string
	CompanyName string
	GeneratedAt time.Time
}

// GuideGenerator puerto de presentación: render de la guía de traslado en PDF.
type GuideGenerator interface {
	GenerateTransferGuide(ctx context.Context, data GuideData) ([]byte, error)
}
