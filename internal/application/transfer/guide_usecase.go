package transfer

import (
	"context"
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// GuideUseCase genera la guía de traslado imprimible (PDF). Lectura pura:
// consume el traslado tal como está, en tránsito o ya recibido.
type GuideUseCase struct {
	transferRepo repository.TransferRepository
	storeRepo    repository.StoreRepository
	generator    GuideGenerator
	companyName  string
}

// NewGuideUseCase construye el caso de uso.
func NewGuideUseCase(
	transferRepo repository.TransferRepository,
	storeRepo repository.StoreRepository,
	generator GuideGenerator,
	companyName string,
) *GuideUseCase {
	return &GuideUseCase{
		transferRepo: transferRepo,
		storeRepo:    storeRepo,
		generator:    generator,
		companyName:  companyName,
	}
}

// TransferGuide devuelve los bytes del PDF de la guía.
func (uc *GuideUseCase) TransferGuide(ctx context.Context, transferID string) ([]byte, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, &domain.NotFoundError{Resource: "traslado", ID: transferID}
	}
	if transfer.Status == entity.TransferStatusCancelled {
		return nil, &domain.InvalidStateError{Resource: "traslado", ID: transferID, Status: transfer.Status}
	}

	fromName, err := uc.locationName(ctx, transfer.From)
	if err != nil {
		return nil, err
	}
	toName, err := uc.locationName(ctx, transfer.To)
	if err != nil {
		return nil, err
	}

	return uc.generator.GenerateTransferGuide(ctx, GuideData{
		Transfer:    transfer,
		FromName:    fromName,
		ToName:      toName,
		CompanyName: uc.companyName,
		GeneratedAt: time.Now(),
	})
}

// locationName resuelve el nombre legible de la ubicación para la guía.
func (uc *GuideUseCase) locationName(ctx context.Context, loc domain.Location) (string, error) {
	if loc.Kind == domain.LocationWarehouse {
		return "Bodega central", nil
	}
	if loc.StoreID == "" {
		return "Local", nil
	}
	store, err := uc.storeRepo.GetByID(ctx, loc.StoreID)
	if err != nil {
		return "", err
	}
	if store == nil {
		return loc.String(), nil
	}
	return store.Name, nil
}
