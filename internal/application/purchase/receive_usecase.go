package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Traslados-api/internal/application/stock"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// ReceiveOrderUseCase aplica la recepción de una orden de compra al stock de la
// ubicación elegida por el caller (una sola ubicación para toda la recepción).
type ReceiveOrderUseCase struct {
	txRunner TxRunner
}

// NewReceiveOrderUseCase construye el caso de uso.
func NewReceiveOrderUseCase(txRunner TxRunner) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{txRunner: txRunner}
}

// ReceiveLineInput cantidad efectivamente entregada por el proveedor.
type ReceiveLineInput struct {
	ItemID           string
	ReceivedQuantity int64
}

// ReceiveInput entrada de receiveOrder.
type ReceiveInput struct {
	OrderID       string
	Lines         []ReceiveLineInput
	StockLocation domain.Location
	InvoiceNumber string
	Notes         string
	UserID        string
}

// ReceiveOrder valida el set completo de líneas y aplica los incrementos en una
// sola transacción.
//
// Los proveedores tienen tolerancia de sobre-entrega del 10%:
// recibido ≤ ceil(ordenado × 1.1); cualquier línea por encima rechaza la
// llamada completa con el detalle de cada línea ofensora (a diferencia de los
// traslados internos, que no admiten exceso alguno). Los totales de línea y de
// orden se recalculan desde lo recibido, no desde lo ordenado. La orden queda
// received si toda línea recibió al menos lo ordenado, partial en caso
// contrario; se persisten invoiceNumber y notes para auditoría.
func (uc *ReceiveOrderUseCase) ReceiveOrder(ctx context.Context, in ReceiveInput) (*entity.PurchaseOrder, error) {
	if !in.StockLocation.Valid() {
		return nil, domain.NewValidationError("stock_location", "ubicación inválida")
	}

	now := time.Now()
	var received *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Resource: "orden de compra", ID: in.OrderID}
		}
		// Barrera dura contra recepción duplicada: una orden ya recibida (o
		// parcial, o cancelada) no admite otra recepción.
		if order.IsTerminal() {
			return &domain.InvalidStateError{Resource: "orden de compra", ID: in.OrderID, Status: order.Status}
		}

		if err := validateReceiveLines(order, in.Lines); err != nil {
			return err
		}

		total := decimal.Zero
		fullyReceived := true
		for _, line := range in.Lines {
			item := order.Item(line.ItemID)
			qty := line.ReceivedQuantity
			item.ReceivedQuantity = &qty
			item.Total = item.LineTotal(qty)
			total = total.Add(item.Total)
			if qty < item.Quantity {
				fullyReceived = false
			}

			if qty == 0 {
				continue
			}
			dest, err := stockRepo.GetForUpdate(ctx, item.ProductID, in.StockLocation)
			if err != nil {
				return err
			}
			reason := fmt.Sprintf("Recepción de orden %s", order.OrderNumber)
			if _, err := stock.Apply(ctx, stockRepo, adjustmentRepo, stock.ApplyInput{
				ProductID:   item.ProductID,
				Location:    in.StockLocation,
				NewQuantity: dest.Quantity + qty,
				Reason:      reason,
				UserID:      in.UserID,
				Now:         now,
			}); err != nil {
				return err
			}
		}

		order.Total = total
		order.ReceivedDate = &now
		order.InvoiceNumber = in.InvoiceNumber
		if in.Notes != "" {
			order.Notes = in.Notes
		}
		if fullyReceived {
			order.Status = entity.OrderStatusReceived
		} else {
			order.Status = entity.OrderStatusPartial
		}
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// validateReceiveLines valida cobertura y cotas de tolerancia antes de escribir.
func validateReceiveLines(order *entity.PurchaseOrder, lines []ReceiveLineInput) error {
	verr := &domain.ValidationError{}
	seen := make(map[string]bool, len(lines))

	for i, line := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		item := order.Item(line.ItemID)
		if item == nil {
			verr.Add(field+".item_id", "línea desconocida en la orden")
			continue
		}
		if seen[line.ItemID] {
			verr.Add(field+".item_id", "línea repetida")
			continue
		}
		seen[line.ItemID] = true

		if line.ReceivedQuantity < 0 {
			verr.Add(field+".received_quantity", "la cantidad recibida no puede ser negativa")
		}
		if max := item.MaxReceivable(); line.ReceivedQuantity > max {
			verr.Add(field+".received_quantity",
				fmt.Sprintf("recibido %d supera la tolerancia del 10%%: máximo %d sobre %d ordenados",
					line.ReceivedQuantity, max, item.Quantity))
		}
	}

	for _, item := range order.Items {
		if !seen[item.ID] {
			verr.Add("lines", fmt.Sprintf("falta la línea %s (%s)", item.ID, item.ProductName))
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
