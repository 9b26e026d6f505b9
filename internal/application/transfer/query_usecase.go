package transfer

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// QueryUseCase lecturas de traslados para las pantallas de back-office.
type QueryUseCase struct {
	transferRepo repository.TransferRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(transferRepo repository.TransferRepository) *QueryUseCase {
	return &QueryUseCase{transferRepo: transferRepo}
}

// GetTransfer devuelve un traslado con sus líneas.
func (uc *QueryUseCase) GetTransfer(ctx context.Context, id string) (*entity.StockTransfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, &domain.NotFoundError{Resource: "traslado", ID: id}
	}
	return transfer, nil
}

// ListTransfers lista paginada, más reciente primero.
func (uc *QueryUseCase) ListTransfers(ctx context.Context, limit, offset int) ([]*entity.StockTransfer, error) {
	return uc.transferRepo.List(ctx, limit, offset)
}
