// Package pdf renders GST-compliant tax invoices with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo / Company name   │  TAX INVOICE               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  META: Invoice No. | Order Date | Payment                   │
//	│  BILL TO (buyer)              │  SOLD BY (seller + GSTIN)   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Item | HSN | Qty | Unit Price | GST | Total     │
//	│  TOTALS: Taxable / CGST+SGST or IGST / Shipping / TOTAL     │
//	│  FOOTER: computer-generated line + shipping/transport info  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/invoicekit/invoicekit-api/internal/application/invoicing"
	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
	"github.com/invoicekit/invoicekit-api/internal/domain/gst"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorDark   = &props.Color{Red: 26, Green: 26, Blue: 46}
	colorAccent = &props.Color{Red: 15, Green: 52, Blue: 96}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite  = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoInvoiceRenderer implements invoicing.InvoiceRenderer using Maroto v2.
type MarotoInvoiceRenderer struct{}

// NewMarotoInvoiceRenderer builds the renderer.
func NewMarotoInvoiceRenderer() *MarotoInvoiceRenderer { return &MarotoInvoiceRenderer{} }

// RenderInvoice renders one invoice and returns the PDF bytes.
func (g *MarotoInvoiceRenderer) RenderInvoice(
	_ context.Context,
	inv invoicing.Invoice,
	cfg *entity.InvoiceConfig,
	logo []byte,
) ([]byte, error) {
	m := newDocument(cfg)
	m.AddPages(page.New().Add(invoiceRows(inv, cfg, logo)...))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderBatch renders all invoices into one document, one invoice per page.
func (g *MarotoInvoiceRenderer) RenderBatch(
	_ context.Context,
	invs []invoicing.Invoice,
	cfg *entity.InvoiceConfig,
	logo []byte,
) ([]byte, error) {
	m := newDocument(cfg)
	for _, inv := range invs {
		m.AddPages(page.New().Add(invoiceRows(inv, cfg, logo)...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate merged document: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument(cfg *entity.InvoiceConfig) core.Maroto {
	docCfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice", true).
		WithAuthor(cfg.Company.Name, true).
		Build()
	return maroto.New(docCfg)
}

// ── Sections ──────────────────────────────────────────────────────────────────

func invoiceRows(inv invoicing.Invoice, cfg *entity.InvoiceConfig, logo []byte) []core.Row {
	rows := []core.Row{
		headerRow(cfg.Company, logo),
		line.NewRow(2, props.Line{Color: colorAccent, Thickness: 0.8}),
		metaRow(inv.Order, cfg.Company),
		addressRow(inv.Order, cfg.Company),
		line.NewRow(2),
		tableHeaderRow(inv.Breakdown),
	}
	rows = append(rows, itemRows(inv.Breakdown, cfg.Company.HSNCode)...)
	rows = append(rows, line.NewRow(2, props.Line{Color: colorAccent, Thickness: 0.3}))
	rows = append(rows, totalsRows(inv.Order, inv.Breakdown)...)
	rows = append(rows, footerRows(cfg.Company)...)
	return rows
}

// headerRow: logo or company name (left) and invoice banner (right).
func headerRow(company entity.CompanyProfile, logo []byte) core.Row {
	var left core.Col
	if ext, ok := logoExtension(logo); ok {
		left = col.New(7).Add(image.NewFromBytes(logo, ext, props.Rect{Percent: 90}))
	} else {
		left = col.New(7).Add(text.New(company.Name, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorDark, Top: 2,
		}))
	}

	return row.New(16).Add(
		left,
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Right,
				Color: colorAccent, Top: 1,
			}),
			text.New("ORIGINAL FOR RECIPIENT", props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 10,
			}),
		),
	)
}

// metaRow: invoice number, order date and payment method.
func metaRow(order *entity.Order, company entity.CompanyProfile) core.Row {
	created := order.CreatedAt
	if len(created) > 10 {
		created = created[:10]
	}
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Invoice No.  "+invoiceNumber(order, company), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New("Order Date  "+created, props.Text{Size: 8, Top: 6}),
			text.New("Payment  "+nonEmpty(order.PaymentMethod, "Prepaid"), props.Text{Size: 8, Top: 10}),
		),
	)
}

// addressRow: Bill To (buyer) on the left, Sold By (seller) on the right.
func addressRow(order *entity.Order, company entity.CompanyProfile) core.Row {
	buyerRegion := fmt.Sprintf("%s (%s), %s",
		order.BillingProvinceName,
		order.BillingProvince,
		nonEmpty(order.BillingCountry, "India"),
	)

	left := col.New(6).Add(
		text.New("Bill To", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1}),
		text.New(order.CustomerName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.New(order.BillingAddress1, props.Text{Size: 8, Top: 10}),
		text.New(order.BillingAddress2, props.Text{Size: 8, Top: 14}),
		text.New(order.BillingCity+" - "+order.BillingZip, props.Text{Size: 8, Top: 18}),
		text.New(buyerRegion, props.Text{Size: 8, Top: 22}),
		text.New(phoneLine(order.Phone), props.Text{Size: 8, Top: 26}),
	)

	right := col.New(6).Add(
		text.New("Sold By", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1}),
		text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.New(company.Address, props.Text{Size: 8, Top: 10}),
		text.New("GSTIN: "+company.GSTIN, props.Text{Size: 8, Top: 14}),
		text.New(fmt.Sprintf("State: %s (%s)", company.SellerState, company.SellerStateCode),
			props.Text{Size: 8, Top: 18}),
		text.New(contactLine(company), props.Text{Size: 8, Top: 22, Color: colorGray}),
	)

	return row.New(32).Add(left, right)
}

// tableHeaderRow: item-table header; tax columns depend on the GST type.
func tableHeaderRow(bd *gst.Breakdown) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorWhite, Top: 1.5,
		}))
	}

	cols := []core.Col{
		h("#", 1, align.Center),
		h("Item Description", 4, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Center),
	}
	if bd.Type == gst.TypeIntra {
		half := bd.Rate.Div(two)
		cols = append(cols,
			h("Unit Price", 1, align.Right),
			h("CGST "+half.StringFixed(1)+"%", 1, align.Right),
			h("SGST "+half.StringFixed(1)+"%", 1, align.Right),
			h("Total", 2, align.Right),
		)
	} else {
		cols = append(cols,
			h("Unit Price", 2, align.Right),
			h("IGST "+bd.Rate.StringFixed(1)+"%", 2, align.Right),
			h("Total", 2, align.Right),
		)
	}

	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorAccent}).Add(cols...)
}

// itemRows: one row per line item with its derived tax figures.
func itemRows(bd *gst.Breakdown, hsn string) []core.Row {
	rows := make([]core.Row, 0, len(bd.Items))
	for i, item := range bd.Items {
		qty := item.Item.Quantity
		unitTaxable := item.Taxable
		if qty != 0 {
			unitTaxable = item.Taxable.Div(decimal.NewFromInt(int64(qty)))
		}
		total := item.Taxable.Add(item.GST).Round(2)

		cell := func(size int, v string, a align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{Size: 7.5, Align: a, Top: 1}))
		}

		cols := []core.Col{
			cell(1, fmt.Sprintf("%d", i+1), align.Center),
			col.New(4).Add(text.New(itemDescription(item.Item), props.Text{Size: 7.5, Top: 1})),
			cell(1, hsn, align.Center),
			cell(1, fmt.Sprintf("%d", qty), align.Center),
		}
		if bd.Type == gst.TypeIntra {
			halfGST := item.GST.Div(two)
			cols = append(cols,
				cell(1, money(unitTaxable), align.Right),
				cell(1, money(halfGST), align.Right),
				cell(1, money(halfGST), align.Right),
				cell(2, money(total), align.Right),
			)
		} else {
			cols = append(cols,
				cell(2, money(unitTaxable), align.Right),
				cell(2, money(item.GST), align.Right),
				cell(2, money(total), align.Right),
			)
		}

		rows = append(rows, row.New(9).Add(cols...))
	}
	return rows
}

// totalsRows: taxable, tax lines, optional shipping and the grand total.
func totalsRows(order *entity.Order, bd *gst.Breakdown) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 2, Top: 1})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: 1})
	}
	totalLine := func(l, v string) core.Row {
		return row.New(6).Add(col.New(7), col.New(3).Add(label(l)), col.New(2).Add(value(v)))
	}

	rows := []core.Row{
		totalLine("Taxable Amount", money(bd.Taxable)),
	}
	if bd.Type == gst.TypeIntra {
		half := bd.Rate.Div(two)
		rows = append(rows,
			totalLine("CGST @ "+half.StringFixed(1)+"%", money(bd.CGST)),
			totalLine("SGST @ "+half.StringFixed(1)+"%", money(bd.SGST)),
		)
	} else {
		rows = append(rows, totalLine("IGST @ "+bd.Rate.StringFixed(1)+"%", money(bd.IGST)))
	}
	if !order.Shipping.IsZero() {
		rows = append(rows, totalLine("Shipping", money(order.Shipping)))
	}

	rows = append(rows, row.New(8).Add(
		col.New(7),
		col.New(3).Add(text.New("GRAND TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 2, Color: colorAccent,
		})),
		col.New(2).Add(text.New(money(order.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorAccent,
		})),
	))
	return rows
}

// footerRows: legal line plus optional shipping origin and transport mode.
func footerRows(company entity.CompanyProfile) []core.Row {
	rows := []core.Row{
		line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.4}),
		row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("This is a computer-generated invoice. | %s | GSTIN: %s",
				company.Name, company.GSTIN),
			props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1},
		))),
	}
	if company.ShippedFrom != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New(
			"Shipped from: "+company.ShippedFrom,
			props.Text{Size: 7, Align: align.Center, Color: colorGray},
		))))
	}
	if company.TransportMode != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New(
			"Transport: "+company.TransportMode,
			props.Text{Size: 7, Align: align.Center, Color: colorGray},
		))))
	}
	return rows
}

// ── Helpers ───────────────────────────────────────────────────────────────────

var two = decimal.NewFromInt(2)

// invoiceNumber formats the displayed invoice number: the configured prefix
// when present, otherwise the source's '#' marker.
func invoiceNumber(order *entity.Order, company entity.CompanyProfile) string {
	number := strings.TrimPrefix(order.OrderNumber, "#")
	if company.InvoicePrefix != "" {
		return company.InvoicePrefix + number
	}
	return "#" + number
}

func itemDescription(item entity.LineItem) string {
	desc := item.Name
	if item.Variant != "" {
		desc += " (" + item.Variant + ")"
	}
	if item.SKU != "" {
		desc += " - SKU: " + item.SKU
	}
	return desc
}

// money formats an amount for print. "Rs." instead of the rupee glyph: the
// built-in Helvetica metrics cannot encode U+20B9.
func money(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

func contactLine(company entity.CompanyProfile) string {
	parts := make([]string, 0, 2)
	if company.Email != "" {
		parts = append(parts, "Email: "+company.Email)
	}
	if company.Website != "" {
		parts = append(parts, "Web: "+company.Website)
	}
	return strings.Join(parts, "   |   ")
}

func phoneLine(phone string) string {
	if phone == "" {
		return ""
	}
	return "Ph: " + phone
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// logoExtension sniffs the uploaded logo; only PNG and JPEG are embedded.
func logoExtension(logo []byte) (extension.Type, bool) {
	if len(logo) == 0 {
		return "", false
	}
	switch http.DetectContentType(logo) {
	case "image/png":
		return extension.Png, true
	case "image/jpeg":
		return extension.Jpg, true
	}
	return "", false
}
