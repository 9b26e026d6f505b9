// Package pdf implementa la guía de traslado imprimible que acompaña la
// mercadería entre ubicaciones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Guía N° + Fecha                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RUTA: Origen → Destino + Estado                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Solicitado | Recibido | Faltante          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + FIRMAS: Entregado por / Recibido por                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apptransfer "github.com/jhoicas/Traslados-api/internal/application/transfer"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoGuideGenerator implementa transfer.GuideGenerator usando Maroto v2.
type MarotoGuideGenerator struct{}

// NewMarotoGuideGenerator construye el generador.
func NewMarotoGuideGenerator() *MarotoGuideGenerator { return &MarotoGuideGenerator{} }

// GenerateTransferGuide genera el PDF y devuelve sus bytes.
func (g *MarotoGuideGenerator) GenerateTransferGuide(_ context.Context, data apptransfer.GuideData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de traslado "+data.Transfer.TransferNumber, true).
		WithAuthor(data.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(routeRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(data.Transfer.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(data.Transfer) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq), número de guía y fecha (der).
func headerRow(data apptransfer.GuideData) core.Row {
	fecha := data.Transfer.CreatedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(data.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Guía de traslado interno", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Guía N° "+data.Transfer.TransferNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// routeRow: origen → destino y estado del traslado.
func routeRow(data apptransfer.GuideData) core.Row {
	return row.New(12).Add(
		col.New(5).Add(
			text.New("Origen: "+data.FromName, props.Text{Size: 9, Top: 2}),
		),
		col.New(5).Add(
			text.New("Destino: "+data.ToName, props.Text{Size: 9, Top: 2}),
		),
		col.New(2).Add(
			text.New(statusLabel(data.Transfer.Status), props.Text{
				Size: 9, Top: 2, Align: align.Right, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5}
	cell := props.Cell{BackgroundColor: colorPrimary}
	return row.New(7).Add(
		col.New(6).Add(text.New("Producto", header)).WithStyle(&cell),
		col.New(2).Add(text.New("Solicitado", headerRight(header))).WithStyle(&cell),
		col.New(2).Add(text.New("Recibido", headerRight(header))).WithStyle(&cell),
		col.New(2).Add(text.New("Faltante", headerRight(header))).WithStyle(&cell),
	)
}

func headerRight(base props.Text) props.Text {
	base.Align = align.Right
	return base
}

func tableItemRows(items []entity.TransferItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i := range items {
		item := &items[i]
		received, shortfall := "-", "-"
		if item.QuantityReceived != nil {
			received = fmt.Sprintf("%d", *item.QuantityReceived)
			shortfall = fmt.Sprintf("%d", item.Discrepancy())
		}
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(item.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(2).Add(text.New(received, props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(2).Add(text.New(shortfall, props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

// footerRows: notas si las hay y líneas de firma de entrega/recepción.
func footerRows(t *entity.StockTransfer) []core.Row {
	rows := []core.Row{}
	if t.Notes != "" {
		rows = append(rows, row.New(8).Add(
			col.New(12).Add(text.New("Notas: "+t.Notes, props.Text{Size: 8, Top: 2, Color: colorGray})),
		))
	}
	rows = append(rows, row.New(22).Add(
		col.New(6).Add(
			text.New("____________________________", props.Text{Size: 9, Top: 12, Align: align.Center}),
			text.New("Entregado por: "+t.CreatedBy, props.Text{Size: 8, Top: 17, Align: align.Center, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("____________________________", props.Text{Size: 9, Top: 12, Align: align.Center}),
			text.New("Recibido por: "+receivedByLabel(t), props.Text{Size: 8, Top: 17, Align: align.Center, Color: colorGray}),
		),
	))
	return rows
}

func receivedByLabel(t *entity.StockTransfer) string {
	if t.ReceivedBy != "" {
		return t.ReceivedBy
	}
	return "pendiente"
}

func statusLabel(status string) string {
	switch status {
	case entity.TransferStatusPending:
		return "PENDIENTE"
	case entity.TransferStatusInTransit:
		return "EN TRÁNSITO"
	case entity.TransferStatusReceived:
		return "RECIBIDO"
	case entity.TransferStatusCancelled:
		return "CANCELADO"
	}
	return status
}
