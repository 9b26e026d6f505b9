package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Traslados-api/internal/application/stock"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// ConfirmReceiptUseCase finaliza un traslado en tránsito: incrementa el destino
// con lo efectivamente recibido y calcula la discrepancia por línea.
type ConfirmReceiptUseCase struct {
	txRunner TxRunner
}

// NewConfirmReceiptUseCase construye el caso de uso.
func NewConfirmReceiptUseCase(txRunner TxRunner) *ConfirmReceiptUseCase {
	return &ConfirmReceiptUseCase{txRunner: txRunner}
}

// ReceiveLineInput cantidad efectivamente recibida de una línea.
type ReceiveLineInput struct {
	ItemID           string
	QuantityReceived int64
	Note             string
}

// ReceiveInput entrada de confirmReceipt.
type ReceiveInput struct {
	TransferID string
	Lines      []ReceiveLineInput
	UserID     string
}

// ConfirmReceipt valida todas las líneas contra el traslado y aplica los
// incrementos del destino en una sola transacción.
//
// Reglas: cada línea del traslado debe venir exactamente una vez;
// 0 ≤ recibido ≤ solicitado (los traslados internos no admiten sobre-recepción:
// un excedente se reporta como ajuste aparte, nunca se absorbe en silencio);
// al menos una línea con recibido > 0. El traslado queda en estado received;
// la discrepancia por línea es la fuente de verdad del faltante.
func (uc *ConfirmReceiptUseCase) ConfirmReceipt(ctx context.Context, in ReceiveInput) (*entity.StockTransfer, error) {
	now := time.Now()
	var received *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(ctx, in.TransferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return &domain.NotFoundError{Resource: "traslado", ID: in.TransferID}
		}
		// El chequeo de estado dentro de la tx es la barrera dura contra una
		// recepción reintentada: un segundo confirmReceipt ve received y falla
		// sin volver a incrementar el destino.
		if transfer.IsTerminal() {
			return &domain.InvalidStateError{Resource: "traslado", ID: in.TransferID, Status: transfer.Status}
		}

		if err := validateReceiveLines(transfer, in.Lines); err != nil {
			return err
		}

		for _, line := range in.Lines {
			item := transfer.Item(line.ItemID)
			qty := line.QuantityReceived
			item.QuantityReceived = &qty
			item.Note = line.Note

			if qty == 0 {
				continue
			}
			dest, err := stockRepo.GetForUpdate(ctx, item.ProductID, transfer.To)
			if err != nil {
				return err
			}
			reason := fmt.Sprintf("Recepción traslado %s: entrada a %s", transfer.TransferNumber, transfer.To)
			if _, err := stock.Apply(ctx, stockRepo, adjustmentRepo, stock.ApplyInput{
				ProductID:   item.ProductID,
				Location:    transfer.To,
				NewQuantity: dest.Quantity + qty,
				Reason:      reason,
				UserID:      in.UserID,
				Now:         now,
			}); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferStatusReceived
		transfer.ReceivedAt = &now
		transfer.ReceivedBy = in.UserID
		if err := transferRepo.Update(ctx, transfer); err != nil {
			return err
		}
		received = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// validateReceiveLines valida el set completo antes de escribir: cobertura de
// todas las líneas del traslado, cotas por línea y al menos una recepción > 0.
func validateReceiveLines(transfer *entity.StockTransfer, lines []ReceiveLineInput) error {
	verr := &domain.ValidationError{}
	seen := make(map[string]bool, len(lines))
	anyPositive := false

	for i, line := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		item := transfer.Item(line.ItemID)
		if item == nil {
			verr.Add(field+".item_id", "línea desconocida en el traslado")
			continue
		}
		if seen[line.ItemID] {
			verr.Add(field+".item_id", "línea repetida")
			continue
		}
		seen[line.ItemID] = true

		if line.QuantityReceived < 0 {
			verr.Add(field+".quantity_received", "la cantidad recibida no puede ser negativa")
		}
		if line.QuantityReceived > item.Quantity {
			verr.Add(field+".quantity_received",
				fmt.Sprintf("recibido %d supera lo solicitado %d (sin sobre-recepción interna)",
					line.QuantityReceived, item.Quantity))
		}
		if line.QuantityReceived > 0 {
			anyPositive = true
		}
	}

	for _, item := range transfer.Items {
		if !seen[item.ID] {
			verr.Add("lines", fmt.Sprintf("falta la línea %s (%s)", item.ID, item.ProductName))
		}
	}
	if !anyPositive {
		verr.Add("lines", "al menos una línea debe tener cantidad recibida mayor que cero")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
