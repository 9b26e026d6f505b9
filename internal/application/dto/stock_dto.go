package dto

import (
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/stock/adjustments.
// NewQuantity es un objetivo absoluto, no un delta.
type AdjustStockRequest struct {
	ProductID   string          `json:"product_id"`
	Location    domain.Location `json:"location"`
	NewQuantity int64           `json:"new_quantity"`
	Reason      string          `json:"reason,omitempty"`
}

// AdjustmentResponse registro de auditoría devuelto tras un ajuste.
type AdjustmentResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Location         domain.Location `json:"location"`
	PreviousQuantity int64           `json:"previous_quantity"`
	NewQuantity      int64           `json:"new_quantity"`
	Delta            int64           `json:"delta"`
	Reason           string          `json:"reason,omitempty"`
	UserID           string          `json:"user_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToAdjustmentResponse convierte la entidad al DTO de respuesta.
func ToAdjustmentResponse(a *entity.StockAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:               a.ID,
		ProductID:        a.ProductID,
		Location:         a.Location,
		PreviousQuantity: a.PreviousQuantity,
		NewQuantity:      a.NewQuantity,
		Delta:            a.Delta,
		Reason:           a.Reason,
		UserID:           a.UserID,
		CreatedAt:        a.CreatedAt,
	}
}

// StockSummaryResponse resumen de stock de un producto.
type StockSummaryResponse struct {
	ProductID string `json:"product_id"`
	Warehouse int64  `json:"warehouse"`
	Store     int64  `json:"store"`
	Total     int64  `json:"total"`
}
