package stock

import (
	"context"
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// Largo mínimo del motivo cuando se proporciona: regla blanda para mantener
// calidad de auditoría en ajustes manuales.
const minReasonLength = 10

// AdjustStockUseCase ajuste manual y auditado de stock a una cantidad absoluta.
type AdjustStockUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	stockRepo      repository.StockRepository
	adjustmentRepo repository.StockAdjustmentRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		stockRepo:      stockRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// AdjustInput entrada del ajuste manual.
type AdjustInput struct {
	ProductID   string
	Location    domain.Location
	NewQuantity int64
	Reason      string
	UserID      string
}

// AdjustStock valida, inicia la transacción y aplica el ajuste vía la primitiva
// Apply. Ajustar dos veces seguidas a la misma cantidad deja delta 0 en la
// segunda llamada y el stock sin cambios.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*entity.StockAdjustment, error) {
	if in.NewQuantity < 0 {
		return nil, domain.NewValidationError("new_quantity", "la cantidad no puede ser negativa")
	}
	if !in.Location.Valid() {
		return nil, domain.NewValidationError("location", "ubicación inválida")
	}
	if in.Reason != "" && len([]rune(in.Reason)) < minReasonLength {
		return nil, domain.NewValidationError("reason", "el motivo debe tener al menos 10 caracteres")
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: in.ProductID}
	}

	now := time.Now()
	var adjustment *entity.StockAdjustment
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		adjustment, err = Apply(ctx, stockRepo, adjustmentRepo, ApplyInput{
			ProductID:   in.ProductID,
			Location:    in.Location,
			NewQuantity: in.NewQuantity,
			Reason:      in.Reason,
			UserID:      in.UserID,
			Now:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}

// ListAdjustments histórico de auditoría de un producto, más reciente primero.
func (uc *AdjustStockUseCase) ListAdjustments(ctx context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	return uc.adjustmentRepo.ListByProduct(ctx, productID, limit, offset)
}

// GetStockSummary resumen warehouse/store/total de un producto.
func (uc *AdjustStockUseCase) GetStockSummary(ctx context.Context, productID string) (entity.StockSummary, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return entity.StockSummary{}, err
	}
	if product == nil {
		return entity.StockSummary{}, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	return uc.stockRepo.Summary(ctx, productID)
}
