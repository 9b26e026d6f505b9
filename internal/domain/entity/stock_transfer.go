package entity

import (
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
)

// Estados de un traslado. received y cancelled son terminales e inmutables.
// Un traslado recibido con faltante conserva el estado received; la discrepancia
// por línea es la fuente de verdad de lo perdido/faltante.
const (
	TransferStatusPending   = "pending"
	TransferStatusInTransit = "in_transit"
	TransferStatusReceived  = "received"
	TransferStatusCancelled = "cancelled"
)

// StockTransfer traslado de stock entre dos ubicaciones. El origen se
// decrementa al crear (la mercadería queda en tránsito, no disponible); el
// destino se incrementa al confirmar recepción.
type StockTransfer struct {
	ID             string
	TransferNumber string // secuencial legible: TR-000001
	From           domain.Location
	To             domain.Location
	Items          []TransferItem
	Status         string
	Notes          string
	CreatedAt      time.Time
	CreatedBy      string
	ReceivedAt     *time.Time
	ReceivedBy     string
}

// TransferItem línea de un traslado. ProductName es un snapshot al momento de
// creación para que el histórico no cambie si el producto se renombra.
// SourceStockBefore es el stock del origen antes de reservar, usado al cancelar.
type TransferItem struct {
	ID                string
	ProductID         string
	ProductName       string
	Quantity          int64  // solicitado
	QuantityReceived  *int64 // se completa en la reconciliación
	SourceStockBefore int64
	Note              string
}

// IsTerminal indica si el traslado ya no admite mutaciones.
func (t *StockTransfer) IsTerminal() bool {
	return t.Status == TransferStatusReceived || t.Status == TransferStatusCancelled
}

// Item busca una línea por ID; nil si no existe.
func (t *StockTransfer) Item(itemID string) *TransferItem {
	for i := range t.Items {
		if t.Items[i].ID == itemID {
			return &t.Items[i]
		}
	}
	return nil
}

// Discrepancy faltante de la línea: solicitado - recibido. Cero mientras no se
// haya reconciliado.
func (it *TransferItem) Discrepancy() int64 {
	if it.QuantityReceived == nil {
		return 0
	}
	return it.Quantity - *it.QuantityReceived
}

// HasShortfall indica si el traslado se recibió con al menos una línea corta.
func (t *StockTransfer) HasShortfall() bool {
	for i := range t.Items {
		if t.Items[i].Discrepancy() > 0 {
			return true
		}
	}
	return false
}
