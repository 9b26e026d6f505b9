package repository

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// StoreRepository puerto de solo lectura del registro de locales (colaborador
// externo). Se usa para resolver identidad y flag activo en traslados a local.
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Store, error)
}
