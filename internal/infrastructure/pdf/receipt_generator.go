// Package pdf genera el comprobante de venta en PDF.
//
// Layout (ancho A4, una columna):
//
//	┌──────────────────────────────────────────────┐
//	│  Tienda                 │  Venta N° + Fecha  │
//	│  Cliente / Método de pago                    │
//	│  Cant | Ítem | P.Unit | Subtotal             │
//	│  Subtotal / Total / Pagado / Cambio          │
//	│  Garantías (serial + vence)        │   QR    │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.ReceiptRenderer = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptRenderer con Maroto v2.
type ReceiptGenerator struct {
	printer *message.Printer
}

// NewReceiptGenerator construye el generador; los montos usan separadores de es.
func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{printer: message.NewPrinter(language.Spanish)}
}

// RenderSaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderSaleReceipt(_ context.Context, data sales.ReceiptData) ([]byte, error) {
	if data.Sale == nil {
		return nil, fmt.Errorf("pdf: venta vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(data.StoreName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.lineRows(data.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data.Sale))
	if len(data.Sale.Warranties) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(warrantyRows(data)...)
	}
	m.AddRows(row.New(40).Add(
		col.New(8),
		col.New(4).Add(code.NewQr(data.Sale.ID, props.Rect{Percent: 90, Center: true})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(data sales.ReceiptData) core.Row {
	s := data.Sale
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.StoreName, "POS"), props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(shortID(s.ID), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7}),
			text.New("Fecha: "+s.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func (g *ReceiptGenerator) customerRow(data sales.ReceiptData) core.Row {
	name := "Consumidor final"
	taxID := "-"
	if data.Customer != nil {
		name = data.Customer.Name
		taxID = nonEmpty(data.Customer.TaxID, "-")
	}
	return row.New(12).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   NIT/CC: %s", name, taxID), props.Text{Size: 8, Top: 6}),
		),
		col.New(4).Add(
			text.New("Pago: "+paymentLabel(data.Sale.PaymentMethod), props.Text{Size: 8, Align: align.Right, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Ítem", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *ReceiptGenerator) lineRows(lines []sales.ReceiptLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.Money(l.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.Money(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func (g *ReceiptGenerator) totalsRow(s *entity.Sale) core.Row {
	label := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("TOTAL:", 6),
			label("Pagado:", 12),
			label("Cambio:", 18),
		),
		col.New(3).Add(
			value(g.Money(s.Subtotal), 0),
			value(g.Money(s.Total), 6),
			value(g.Money(s.AmountPaid), 12),
			value(g.Money(s.ChangeGiven), 18),
		),
	)
}

func warrantyRows(data sales.ReceiptData) []core.Row {
	names := map[string]string{}
	for _, l := range data.Lines {
		names[l.ItemID] = l.ItemName
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("GARANTÍAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, w := range data.Sale.Warranties {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(names[w.ItemID], props.Text{Size: 7, Top: 0.5, Left: 2})),
			col.New(3).Add(text.New(nonEmpty(w.SerialNumber, "sin serial"), props.Text{Size: 7, Top: 0.5, Color: colorGray})),
			col.New(3).Add(text.New("Vence "+w.ExpiresAt.Format("02/01/2006"), props.Text{Size: 7, Top: 0.5, Align: align.Right})),
		))
	}
	return rows
}

// Money formatea con separador de miles "." y dos decimales: 1250000.5 -> "$1.250.000,50".
func (g *ReceiptGenerator) Money(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s,%02d", sign, g.printer.Sprintf("%d", whole.IntPart()), cents)
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCash:
		return "Efectivo"
	case entity.PaymentBank:
		return "Banco"
	case entity.PaymentCredit:
		return "Crédito"
	}
	return method
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return strings.ToUpper(id)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
