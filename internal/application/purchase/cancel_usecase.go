package purchase

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// CancelOrderUseCase cancela órdenes de compra no terminales. Como la creación
// no reservó stock, cancelar no muta inventario.
type CancelOrderUseCase struct {
	txRunner TxRunner
}

// NewCancelOrderUseCase construye el caso de uso.
func NewCancelOrderUseCase(txRunner TxRunner) *CancelOrderUseCase {
	return &CancelOrderUseCase{txRunner: txRunner}
}

// CancelOrder marca la orden como cancelled; falla con InvalidStateError si la
// orden ya es terminal.
func (uc *CancelOrderUseCase) CancelOrder(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	var cancelled *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.StockRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Resource: "orden de compra", ID: orderID}
		}
		if order.IsTerminal() {
			return &domain.InvalidStateError{Resource: "orden de compra", ID: orderID, Status: order.Status}
		}
		order.Status = entity.OrderStatusCancelled
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// QueryUseCase lecturas de órdenes para las pantallas de back-office.
type QueryUseCase struct {
	orderRepo repository.PurchaseOrderRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(orderRepo repository.PurchaseOrderRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo}
}

// GetOrder devuelve una orden con sus líneas.
func (uc *QueryUseCase) GetOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.NotFoundError{Resource: "orden de compra", ID: id}
	}
	return order, nil
}

// ListOrders lista paginada, más reciente primero.
func (uc *QueryUseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(ctx, limit, offset)
}
