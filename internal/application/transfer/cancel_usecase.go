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

// CancelTransferUseCase revierte la reserva de un traslado no terminal:
// devuelve al origen exactamente lo que se restó al crear.
type CancelTransferUseCase struct {
	txRunner TxRunner
}

// NewCancelTransferUseCase construye el caso de uso.
func NewCancelTransferUseCase(txRunner TxRunner) *CancelTransferUseCase {
	return &CancelTransferUseCase{txRunner: txRunner}
}

// CancelTransfer cancela un traslado pending/in_transit restaurando el stock
// del origen línea a línea en una sola transacción. Sobre un traslado terminal
// falla con InvalidStateError sin mutar nada.
func (uc *CancelTransferUseCase) CancelTransfer(ctx context.Context, transferID, userID string) (*entity.StockTransfer, error) {
	now := time.Now()
	var cancelled *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return &domain.NotFoundError{Resource: "traslado", ID: transferID}
		}
		if transfer.IsTerminal() {
			return &domain.InvalidStateError{Resource: "traslado", ID: transferID, Status: transfer.Status}
		}

		for _, item := range transfer.Items {
			source, err := stockRepo.GetForUpdate(ctx, item.ProductID, transfer.From)
			if err != nil {
				return err
			}
			reason := fmt.Sprintf("Cancelación traslado %s: devolución a %s", transfer.TransferNumber, transfer.From)
			if _, err := stock.Apply(ctx, stockRepo, adjustmentRepo, stock.ApplyInput{
				ProductID:   item.ProductID,
				Location:    transfer.From,
				NewQuantity: source.Quantity + item.Quantity,
				Reason:      reason,
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferStatusCancelled
		if err := transferRepo.Update(ctx, transfer); err != nil {
			return err
		}
		cancelled = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}
