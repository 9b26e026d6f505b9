package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// ApplyInput parámetros de la primitiva de escritura de stock.
type ApplyInput struct {
	ProductID   string
	Location    domain.Location
	NewQuantity int64 // objetivo absoluto, no delta
	Reason      string
	UserID      string
	Now         time.Time
}

// Apply es la única vía de escritura al stock: bloquea la fila
// (SELECT FOR UPDATE), escribe la cantidad absoluta objetivo y agrega el
// registro de auditoría con delta = nueva - anterior. Traslados, cancelaciones
// y recepciones calculan su objetivo y pasan por aquí, de modo que toda
// mutación queda uniformemente auditada.
//
// Debe invocarse con repositorios atados a la transacción del caso de uso.
func Apply(
	ctx context.Context,
	stockRepo repository.StockRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
	in ApplyInput,
) (*entity.StockAdjustment, error) {
	if in.NewQuantity < 0 {
		return nil, domain.NewValidationError("new_quantity", "la cantidad no puede ser negativa")
	}
	if !in.Location.Valid() {
		return nil, domain.NewValidationError("location", "ubicación inválida")
	}

	current, err := stockRepo.GetForUpdate(ctx, in.ProductID, in.Location)
	if err != nil {
		return nil, err
	}

	previous := current.Quantity
	current.Quantity = in.NewQuantity
	current.UpdatedAt = in.Now
	if err := stockRepo.Save(ctx, current); err != nil {
		return nil, err
	}

	adjustment := &entity.StockAdjustment{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		Location:         in.Location,
		PreviousQuantity: previous,
		NewQuantity:      in.NewQuantity,
		Delta:            in.NewQuantity - previous,
		Reason:           in.Reason,
		UserID:           in.UserID,
		CreatedAt:        in.Now,
	}
	if err := adjustmentRepo.Create(ctx, adjustment); err != nil {
		return nil, err
	}
	return adjustment, nil
}
