package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Traslados-api/internal/application/stock"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// CreateTransferUseCase crea traslados entre dos ubicaciones decrementando el
// origen de inmediato: la mercadería queda en tránsito y no disponible.
type CreateTransferUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewCreateTransferUseCase construye el caso de uso.
func NewCreateTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *CreateTransferUseCase {
	return &CreateTransferUseCase{txRunner: txRunner, productRepo: productRepo, storeRepo: storeRepo}
}

// CreateItemInput línea solicitada de un traslado.
type CreateItemInput struct {
	ProductID string
	Quantity  int64
}

// CreateInput entrada de createTransfer.
type CreateInput struct {
	From   domain.Location
	To     domain.Location
	Items  []CreateItemInput
	Notes  string
	UserID string
}

// CreateTransfer valida todas las líneas antes de escribir y aplica los
// decrementos del origen dentro de una sola transacción: si cualquier línea
// falla (incluido stock insuficiente) no se muta ninguna.
func (uc *CreateTransferUseCase) CreateTransfer(ctx context.Context, in CreateInput) (*entity.StockTransfer, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}

	// Snapshot de nombres de producto al momento de creación: el histórico no
	// cambia si el producto se renombra después.
	products := make(map[string]*entity.Product, len(in.Items))
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.NotFoundError{Resource: "producto", ID: item.ProductID}
		}
		products[item.ProductID] = product
	}

	now := time.Now()
	var created *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		number, err := transferRepo.NextTransferNumber(ctx)
		if err != nil {
			return err
		}

		transfer := &entity.StockTransfer{
			ID:             uuid.New().String(),
			TransferNumber: number,
			From:           in.From,
			To:             in.To,
			Status:         entity.TransferStatusInTransit,
			Notes:          in.Notes,
			CreatedAt:      now,
			CreatedBy:      in.UserID,
		}

		for _, item := range in.Items {
			product := products[item.ProductID]

			source, err := stockRepo.GetForUpdate(ctx, item.ProductID, in.From)
			if err != nil {
				return err
			}
			if item.Quantity > source.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: product.Name,
					Location:    in.From,
					Requested:   item.Quantity,
					Available:   source.Quantity,
				}
			}

			reason := fmt.Sprintf("Traslado %s: salida de %s", number, in.From)
			if _, err := stock.Apply(ctx, stockRepo, adjustmentRepo, stock.ApplyInput{
				ProductID:   item.ProductID,
				Location:    in.From,
				NewQuantity: source.Quantity - item.Quantity,
				Reason:      reason,
				UserID:      in.UserID,
				Now:         now,
			}); err != nil {
				return err
			}

			transfer.Items = append(transfer.Items, entity.TransferItem{
				ID:                uuid.New().String(),
				ProductID:         item.ProductID,
				ProductName:       product.Name,
				Quantity:          item.Quantity,
				SourceStockBefore: source.Quantity,
			})
		}

		if err := transferRepo.Create(ctx, transfer); err != nil {
			return err
		}
		created = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// validate reglas de campo, previas a cualquier escritura. Se acumulan todas
// las líneas ofensoras para que el caller corrija de una vez.
func (uc *CreateTransferUseCase) validate(ctx context.Context, in CreateInput) error {
	verr := &domain.ValidationError{}
	if !in.From.Valid() {
		verr.Add("from", "ubicación origen inválida")
	}
	if !in.To.Valid() {
		verr.Add("to", "ubicación destino inválida")
	}
	if in.From.Equal(in.To) {
		verr.Add("to", "origen y destino deben ser distintos")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "el traslado requiere al menos una línea")
	}
	seen := make(map[string]bool, len(in.Items))
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == "" {
			verr.Add(field+".product_id", "producto requerido")
		}
		if item.Quantity <= 0 {
			verr.Add(field+".quantity", "la cantidad debe ser mayor que cero")
		}
		if seen[item.ProductID] {
			verr.Add(field+".product_id", "producto repetido en el traslado")
		}
		seen[item.ProductID] = true
	}
	if verr.HasErrors() {
		return verr
	}

	// Traslados hacia/desde un local: el local debe existir y estar activo.
	for _, loc := range []struct {
		field string
		loc   domain.Location
	}{{"from", in.From}, {"to", in.To}} {
		if loc.loc.Kind != domain.LocationStore || loc.loc.StoreID == "" {
			continue
		}
		store, err := uc.storeRepo.GetByID(ctx, loc.loc.StoreID)
		if err != nil {
			return err
		}
		if store == nil {
			return &domain.NotFoundError{Resource: "local", ID: loc.loc.StoreID}
		}
		if !store.Active {
			return domain.NewValidationError(loc.field, fmt.Sprintf("local %q inactivo", store.Name))
		}
	}
	return nil
}
