package purchase

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de órdenes de compra atados a esa tx. Todas las líneas de un
// receiveOrder y la actualización de la orden confirman o revierten juntas.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error) error
}
