package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de compra a proveedor. La creación no toca
// stock: el inventario solo se mueve al recepcionar.
type CreateOrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *CreateOrderUseCase {
	return &CreateOrderUseCase{txRunner: txRunner, productRepo: productRepo}
}

// CreateItemInput línea ordenada a proveedor.
type CreateItemInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CreateInput entrada de createPurchaseOrder.
type CreateInput struct {
	SupplierID            string
	Items                 []CreateItemInput
	EstimatedDeliveryDate *time.Time
	Notes                 string
	UserID                string
}

// CreateOrder valida las líneas, congela el snapshot de nombres y calcula el
// total ordenado (quantity × unitPrice por línea). Estado inicial pending.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, in CreateInput) (*entity.PurchaseOrder, error) {
	verr := &domain.ValidationError{}
	if in.SupplierID == "" {
		verr.Add("supplier_id", "proveedor requerido")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "la orden requiere al menos una línea")
	}
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == "" {
			verr.Add(field+".product_id", "producto requerido")
		}
		if item.Quantity <= 0 {
			verr.Add(field+".quantity", "la cantidad debe ser mayor que cero")
		}
		if item.UnitPrice.IsNegative() {
			verr.Add(field+".unit_price", "el precio unitario no puede ser negativo")
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:                    uuid.New().String(),
		SupplierID:            in.SupplierID,
		Status:                entity.OrderStatusPending,
		Total:                 decimal.Zero,
		Notes:                 in.Notes,
		EstimatedDeliveryDate: in.EstimatedDeliveryDate,
		CreatedAt:             now,
		CreatedBy:             in.UserID,
	}

	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.NotFoundError{Resource: "producto", ID: item.ProductID}
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:          uuid.New().String(),
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       lineTotal,
		})
		order.Total = order.Total.Add(lineTotal)
	}

	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.StockRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		number, err := orderRepo.NextOrderNumber(ctx)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
