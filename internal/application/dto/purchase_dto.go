package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// CreateOrderRequest body para POST /api/purchase-orders.
type CreateOrderRequest struct {
	SupplierID            string                `json:"supplier_id"`
	Items                 []CreateOrderItemBody `json:"items"`
	EstimatedDeliveryDate *time.Time            `json:"estimated_delivery_date,omitempty"`
	Notes                 string                `json:"notes,omitempty"`
}

// CreateOrderItemBody línea ordenada.
type CreateOrderItemBody struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ReceiveOrderRequest body para POST /api/purchase-orders/:id/receive.
// StockLocation es una sola ubicación para toda la recepción, no por línea.
type ReceiveOrderRequest struct {
	Lines         []ReceiveOrderLineBody `json:"lines"`
	StockLocation domain.Location        `json:"stock_location"`
	InvoiceNumber string                 `json:"invoice_number,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
}

// ReceiveOrderLineBody cantidad entregada por el proveedor para una línea.
type ReceiveOrderLineBody struct {
	ItemID           string `json:"item_id"`
	ReceivedQuantity int64  `json:"received_quantity"`
}

// OrderItemResponse línea de orden con totales.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Total            decimal.Decimal `json:"total"`
	ReceivedQuantity *int64          `json:"received_quantity,omitempty"`
}

// OrderResponse orden de compra completa.
type OrderResponse struct {
	ID                    string              `json:"id"`
	OrderNumber           string              `json:"order_number"`
	SupplierID            string              `json:"supplier_id"`
	Items                 []OrderItemResponse `json:"items"`
	Status                string              `json:"status"`
	Total                 decimal.Decimal     `json:"total"`
	InvoiceNumber         string              `json:"invoice_number,omitempty"`
	Notes                 string              `json:"notes,omitempty"`
	EstimatedDeliveryDate *time.Time          `json:"estimated_delivery_date,omitempty"`
	ReceivedDate          *time.Time          `json:"received_date,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	CreatedBy             string              `json:"created_by"`
}

// ToOrderResponse convierte la entidad al DTO de respuesta.
func ToOrderResponse(o *entity.PurchaseOrder) OrderResponse {
	resp := OrderResponse{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		SupplierID:            o.SupplierID,
		Status:                o.Status,
		Total:                 o.Total,
		InvoiceNumber:         o.InvoiceNumber,
		Notes:                 o.Notes,
		EstimatedDeliveryDate: o.EstimatedDeliveryDate,
		ReceivedDate:          o.ReceivedDate,
		CreatedAt:             o.CreatedAt,
		CreatedBy:             o.CreatedBy,
	}
	for i := range o.Items {
		item := &o.Items[i]
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Total:            item.Total,
			ReceivedQuantity: item.ReceivedQuantity,
		})
	}
	return resp
}

// ToOrderListResponse convierte un listado.
func ToOrderListResponse(orders []*entity.PurchaseOrder) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
