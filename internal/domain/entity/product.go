package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El catálogo es un colaborador
// externo: aquí solo se lee (GetByID) y su stock se muta exclusivamente vía el
// servicio de ajustes.
type Product struct {
	ID        string
	Reference string // código de referencia, único
	Name      string
	Price     decimal.Decimal // precio de venta, solo informativo para órdenes
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockSummary resumen derivado de las filas de stock de un producto.
// Total siempre es warehouse + store; nunca se almacena por separado.
type StockSummary struct {
	Warehouse int64 `json:"warehouse"`
	Store     int64 `json:"store"`
	Total     int64 `json:"total"`
}

// NewStockSummary construye el resumen garantizando el invariante del total.
func NewStockSummary(warehouse, store int64) StockSummary {
	return StockSummary{Warehouse: warehouse, Store: store, Total: warehouse + store}
}
