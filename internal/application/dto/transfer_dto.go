package dto

import (
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	From  domain.Location          `json:"from"`
	To    domain.Location          `json:"to"`
	Items []CreateTransferItemBody `json:"items"`
	Notes string                   `json:"notes,omitempty"`
}

// CreateTransferItemBody línea solicitada.
type CreateTransferItemBody struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// ReceiveTransferRequest body para POST /api/transfers/:id/receive.
type ReceiveTransferRequest struct {
	Lines []ReceiveTransferLineBody `json:"lines"`
}

// ReceiveTransferLineBody cantidad efectivamente recibida de una línea.
type ReceiveTransferLineBody struct {
	ItemID           string `json:"item_id"`
	QuantityReceived int64  `json:"quantity_received"`
	Note             string `json:"note,omitempty"`
}

// TransferItemResponse línea de traslado con su discrepancia.
type TransferItemResponse struct {
	ID               string `json:"id"`
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	Quantity         int64  `json:"quantity"`
	QuantityReceived *int64 `json:"quantity_received,omitempty"`
	Discrepancy      int64  `json:"discrepancy"`
	Note             string `json:"note,omitempty"`
}

// TransferResponse traslado completo.
type TransferResponse struct {
	ID             string                 `json:"id"`
	TransferNumber string                 `json:"transfer_number"`
	From           domain.Location        `json:"from"`
	To             domain.Location        `json:"to"`
	Items          []TransferItemResponse `json:"items"`
	Status         string                 `json:"status"`
	HasShortfall   bool                   `json:"has_shortfall"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	CreatedBy      string                 `json:"created_by"`
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	ReceivedBy     string                 `json:"received_by,omitempty"`
}

// ToTransferResponse convierte la entidad al DTO de respuesta.
func ToTransferResponse(t *entity.StockTransfer) TransferResponse {
	resp := TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		From:           t.From,
		To:             t.To,
		Status:         t.Status,
		HasShortfall:   t.HasShortfall(),
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		CreatedBy:      t.CreatedBy,
		ReceivedAt:     t.ReceivedAt,
		ReceivedBy:     t.ReceivedBy,
	}
	for i := range t.Items {
		item := &t.Items[i]
		resp.Items = append(resp.Items, TransferItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			QuantityReceived: item.QuantityReceived,
			Discrepancy:      item.Discrepancy(),
			Note:             item.Note,
		})
	}
	return resp
}

// ToTransferListResponse convierte un listado.
func ToTransferListResponse(transfers []*entity.StockTransfer) []TransferResponse {
	out := make([]TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, ToTransferResponse(t))
	}
	return out
}
