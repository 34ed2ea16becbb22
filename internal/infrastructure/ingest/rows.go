// Package ingest reconstructs orders from flattened e-commerce export files.
// Shopify order exports repeat the order number across several rows: the
// first row carries the order-level fields, later rows add line items or are
// inert address/continuation rows. Both the CSV and XLSX readers share the
// row pipeline in this file.
package ingest

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
)

// Shopify export column names.
const (
	colOrderNumber       = "Name"
	colCreatedAt         = "Created at"
	colBillingName       = "Billing Name"
	colBillingFirstName  = "Billing First Name"
	colBillingLastName   = "Billing Last Name"
	colBillingAddress1   = "Billing Address1"
	colBillingAddress2   = "Billing Address2"
	colBillingCity       = "Billing City"
	colBillingZip        = "Billing Zip"
	colBillingProvince   = "Billing Province"
	colBillingProvName   = "Billing Province Name"
	colBillingCountry    = "Billing Country"
	colEmail             = "Email"
	colPhone             = "Phone"
	colSubtotal          = "Subtotal"
	colShipping          = "Shipping"
	colTaxes             = "Taxes"
	colTotal             = "Total"
	colPaymentMethod     = "Payment Method"
	colFulfillmentStatus = "Fulfillment Status"
	colItemName          = "Lineitem name"
	colItemQuantity      = "Lineitem quantity"
	colItemPrice         = "Lineitem price"
	colItemSKU           = "Lineitem sku"
	colItemDiscount      = "Lineitem discount"
	colItemVariant       = "Lineitem variant title"
)

// rowView reads one record through the header index. Missing columns and
// short records resolve to "", every value comes back trimmed.
type rowView struct {
	idx map[string]int
	rec []string
}

func (r rowView) get(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

// collectOrders groups records into orders keyed by order number, preserving
// first-seen order. The first row of a group establishes the order-level
// fields; every row with a non-empty item name contributes a line item.
// Groups with subtotal <= 0 and no line items are discarded as non-orders.
func collectOrders(header []string, records [][]string) []*entity.Order {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	byNumber := make(map[string]*entity.Order)
	var ordered []*entity.Order

	for _, rec := range records {
		row := rowView{idx: idx, rec: rec}

		number := row.get(colOrderNumber)
		if number == "" {
			continue // non-row noise
		}

		ord, seen := byNumber[number]
		if !seen {
			ord = &entity.Order{
				OrderNumber:         number,
				CreatedAt:           row.get(colCreatedAt),
				CustomerName:        customerName(row),
				BillingAddress1:     row.get(colBillingAddress1),
				BillingAddress2:     row.get(colBillingAddress2),
				BillingCity:         row.get(colBillingCity),
				BillingZip:          row.get(colBillingZip),
				BillingProvince:     row.get(colBillingProvince),
				BillingProvinceName: row.get(colBillingProvName),
				BillingCountry:      row.get(colBillingCountry),
				Email:               row.get(colEmail),
				Phone:               row.get(colPhone),
				Subtotal:            parseDecimal(row.get(colSubtotal)),
				Shipping:            parseDecimal(row.get(colShipping)),
				Taxes:               parseDecimal(row.get(colTaxes)),
				Total:               parseDecimal(row.get(colTotal)),
				PaymentMethod:       row.get(colPaymentMethod),
				FulfillmentStatus:   row.get(colFulfillmentStatus),
			}
			byNumber[number] = ord
			ordered = append(ordered, ord)
		}

		if name := row.get(colItemName); name != "" {
			ord.LineItems = append(ord.LineItems, entity.LineItem{
				Name:     name,
				Quantity: parseQuantity(row.get(colItemQuantity)),
				Price:    parseDecimal(row.get(colItemPrice)),
				SKU:      row.get(colItemSKU),
				Discount: parseDecimal(row.get(colItemDiscount)),
				Variant:  row.get(colItemVariant),
			})
		}
	}

	// Keep real orders only: positive subtotal or at least one line item.
	kept := make([]*entity.Order, 0, len(ordered))
	for _, ord := range ordered {
		if ord.Subtotal.GreaterThan(decimal.Zero) || len(ord.LineItems) > 0 {
			kept = append(kept, ord)
		}
	}
	return kept
}

// customerName prefers the combined billing name and falls back to joining
// the separate first/last name columns.
func customerName(row rowView) string {
	if name := row.get(colBillingName); name != "" {
		return name
	}
	return strings.TrimSpace(row.get(colBillingFirstName) + " " + row.get(colBillingLastName))
}

// parseDecimal parses a monetary field. Empty or malformed values resolve to
// zero, thousands separators are stripped first. Never errors.
func parseDecimal(val string) decimal.Decimal {
	if val == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(val, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseQuantity parses a line-item quantity. Empty or malformed values
// resolve to 1, never 0.
func parseQuantity(val string) int {
	if val == "" {
		return 1
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 1
	}
	return n
}
