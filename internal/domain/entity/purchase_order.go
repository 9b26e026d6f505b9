package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. received, partial y cancelled dejan la orden
// inmutable para el motor (partial admite reclamo al proveedor, fuera de alcance).
const (
	OrderStatusPending   = "pending"
	OrderStatusInTransit = "in_transit"
	OrderStatusReceived  = "received"
	OrderStatusPartial   = "partial"
	OrderStatusCancelled = "cancelled"
)

// PurchaseOrder orden de compra a un proveedor. Total se deriva de las líneas:
// de lo ordenado al crear, de lo efectivamente recibido al recepcionar.
type PurchaseOrder struct {
	ID                    string
	OrderNumber           string // secuencial legible: OC-000001
	SupplierID            string
	Items                 []PurchaseOrderItem
	Status                string
	Total                 decimal.Decimal
	InvoiceNumber         string
	Notes                 string
	EstimatedDeliveryDate *time.Time
	ReceivedDate          *time.Time
	CreatedAt             time.Time
	CreatedBy             string
}

// PurchaseOrderItem línea de orden de compra. ProductName es snapshot al crear.
// Total = Quantity×UnitPrice al ordenar; se recalcula a
// ReceivedQuantity×UnitPrice al recepcionar.
type PurchaseOrderItem struct {
	ID               string
	ProductID        string
	ProductName      string
	Quantity         int64 // ordenado
	UnitPrice        decimal.Decimal
	Total            decimal.Decimal
	ReceivedQuantity *int64
}

// IsTerminal indica si la orden ya no admite recepción ni cancelación.
func (o *PurchaseOrder) IsTerminal() bool {
	switch o.Status {
	case OrderStatusReceived, OrderStatusPartial, OrderStatusCancelled:
		return true
	}
	return false
}

// Item busca una línea por ID; nil si no existe.
func (o *PurchaseOrder) Item(itemID string) *PurchaseOrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// MaxReceivable tope de sobre-entrega del proveedor: ceil(ordenado × 1.1).
// La tolerancia del 10% aplica solo a recepciones de proveedor, nunca a
// traslados internos.
func (it *PurchaseOrderItem) MaxReceivable() int64 {
	return (it.Quantity*11 + 9) / 10
}

// LineTotal total de la línea para una cantidad dada.
func (it *PurchaseOrderItem) LineTotal(quantity int64) decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(quantity))
}
