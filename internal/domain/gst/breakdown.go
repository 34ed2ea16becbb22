package gst

import (
	"github.com/shopspring/decimal"

	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// ItemBreakdown carries the derived tax figures for one line item. Each
// amount is rounded to 2 decimals independently, so per-item sums may differ
// from the order-level totals by rounding residue. Accepted, not corrected.
type ItemBreakdown struct {
	Item         entity.LineItem
	Taxable      decimal.Decimal
	GST          decimal.Decimal
	Discount     decimal.Decimal
	TotalWithGST decimal.Decimal
}

// Breakdown is the complete GST breakdown of one order. Recomputed fresh on
// every render; never cached or mutated in place.
type Breakdown struct {
	Rate     decimal.Decimal
	Type     Type
	Taxable  decimal.Decimal
	TotalGST decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	Items    []ItemBreakdown
}

// ComputeBreakdown derives the GST breakdown for an order. The subtotal is
// modeled as GST-inclusive: the taxable base is back-calculated as
// subtotal / (1 + rate/100), so a zero rate leaves taxable == subtotal.
// A negative subtotal (refunded order) propagates through unguarded.
func ComputeBreakdown(order *entity.Order, cfg *entity.InvoiceConfig) *Breakdown {
	rate := ResolveRate(order.CreatedAt, cfg.TaxRules)
	gstType := Classify(order.BillingProvinceName, cfg.Company.SellerState)

	taxable := order.Subtotal.Div(one.Add(rate.Div(hundred)))
	totalGST := order.Subtotal.Sub(taxable)

	var cgst, sgst, igst decimal.Decimal
	if gstType == TypeIntra {
		cgst = totalGST.Div(two)
		sgst = totalGST.Div(two)
	} else {
		igst = totalGST
	}

	bd := &Breakdown{
		Rate:     rate,
		Type:     gstType,
		Taxable:  taxable.Round(2),
		TotalGST: totalGST.Round(2),
		CGST:     cgst.Round(2),
		SGST:     sgst.Round(2),
		IGST:     igst.Round(2),
		Items:    make([]ItemBreakdown, 0, len(order.LineItems)),
	}

	// Distribute tax and discounts across items proportionally by line
	// value. A zero total line value substitutes 1 as the denominator: all
	// proportions collapse to 0 instead of dividing by zero.
	totalLineValue := decimal.Zero
	totalDiscount := decimal.Zero
	for _, li := range order.LineItems {
		totalLineValue = totalLineValue.Add(li.LineValue())
		totalDiscount = totalDiscount.Add(li.Discount)
	}
	if totalLineValue.IsZero() {
		totalLineValue = one
	}

	for _, li := range order.LineItems {
		proportion := li.LineValue().Div(totalLineValue)

		itemTaxable := taxable.Mul(proportion)
		itemGST := totalGST.Mul(proportion)
		itemDiscount := totalDiscount.Mul(proportion)

		bd.Items = append(bd.Items, ItemBreakdown{
			Item:         li,
			Taxable:      itemTaxable.Round(2),
			GST:          itemGST.Round(2),
			Discount:     itemDiscount.Round(2),
			TotalWithGST: itemTaxable.Add(itemGST).Sub(itemDiscount).Round(2),
		})
	}

	return bd
}
