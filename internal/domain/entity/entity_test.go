package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tolerancia de sobre-entrega de proveedor: techo entero de ordenado × 1.1
// ──────────────────────────────────────────────────────────────────────────────

func TestMaxReceivable_TechoEntero(t *testing.T) {
	cases := []struct {
		ordered int64
		max     int64
	}{
		{100, 110},
		{10, 11},
		{1, 2},   // ceil(1.1) = 2
		{3, 4},   // ceil(3.3) = 4
		{5, 6},   // ceil(5.5) = 6
		{7, 8},   // ceil(7.7) = 8
		{20, 22},
		{99, 109}, // ceil(108.9) = 109
		{0, 0},
	}
	for _, tc := range cases {
		item := entity.PurchaseOrderItem{Quantity: tc.ordered}
		assert.Equal(t, tc.max, item.MaxReceivable(),
			"tolerancia para %d ordenados", tc.ordered)
	}
}

func TestLineTotal_CantidadRecibida(t *testing.T) {
	item := entity.PurchaseOrderItem{
		Quantity:  100,
		UnitPrice: decimal.NewFromInt(10),
	}
	assert.True(t, item.LineTotal(95).Equal(decimal.NewFromInt(950)),
		"el total de línea se calcula sobre la cantidad dada, no la ordenada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Discrepancia y faltante de traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscrepancy_AntesYDespuesDeRecepcion(t *testing.T) {
	item := entity.TransferItem{Quantity: 20}
	assert.Equal(t, int64(0), item.Discrepancy(),
		"sin reconciliar la discrepancia es cero")

	received := int64(15)
	item.QuantityReceived = &received
	assert.Equal(t, int64(5), item.Discrepancy())
}

func TestHasShortfall_SoloConLineasCortas(t *testing.T) {
	full := int64(10)
	short := int64(7)

	completo := &entity.StockTransfer{Items: []entity.TransferItem{
		{Quantity: 10, QuantityReceived: &full},
	}}
	assert.False(t, completo.HasShortfall())

	conFaltante := &entity.StockTransfer{Items: []entity.TransferItem{
		{Quantity: 10, QuantityReceived: &full},
		{Quantity: 10, QuantityReceived: &short},
	}}
	assert.True(t, conFaltante.HasShortfall())
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados terminales
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferIsTerminal(t *testing.T) {
	cases := map[string]bool{
		entity.TransferStatusPending:   false,
		entity.TransferStatusInTransit: false,
		entity.TransferStatusReceived:  true,
		entity.TransferStatusCancelled: true,
	}
	for status, terminal := range cases {
		tr := &entity.StockTransfer{Status: status}
		assert.Equal(t, terminal, tr.IsTerminal(), "estado %s", status)
	}
}

func TestOrderIsTerminal_PartialEsTerminal(t *testing.T) {
	cases := map[string]bool{
		entity.OrderStatusPending:   false,
		entity.OrderStatusInTransit: false,
		entity.OrderStatusReceived:  true,
		entity.OrderStatusPartial:   true,
		entity.OrderStatusCancelled: true,
	}
	for status, terminal := range cases {
		o := &entity.PurchaseOrder{Status: status}
		assert.Equal(t, terminal, o.IsTerminal(), "estado %s", status)
	}
}

func TestItem_BuscaPorID(t *testing.T) {
	tr := &entity.StockTransfer{Items: []entity.TransferItem{
		{ID: "a", ProductID: "p1"},
		{ID: "b", ProductID: "p2"},
	}}
	assert.Equal(t, "p2", tr.Item("b").ProductID)
	assert.Nil(t, tr.Item("zzz"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestNewStockSummary_TotalDerivado(t *testing.T) {
	s := entity.NewStockSummary(30, 12)
	assert.Equal(t, int64(30), s.Warehouse)
	assert.Equal(t, int64(12), s.Store)
	assert.Equal(t, int64(42), s.Total, "total siempre es warehouse + store")
}
