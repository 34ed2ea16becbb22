package entity

import "github.com/shopspring/decimal"

// Order represents one customer order reconstructed from an export file.
// Orders are built once during ingestion and never mutated afterwards.
//
// OrderNumber is kept exactly as the source wrote it (Shopify prefixes it
// with '#'); it is the grouping key for multi-row exports. CreatedAt stays a
// raw source string: date interpretation belongs to the tax engine, which
// has to cope with several formats anyway.
type Order struct {
	OrderNumber         string
	CreatedAt           string
	CustomerName        string
	BillingAddress1     string
	BillingAddress2     string
	BillingCity         string
	BillingZip          string
	BillingProvince     string // province/state code, e.g. "KA"
	BillingProvinceName string // display name, e.g. "Karnataka"
	BillingCountry      string
	Email               string
	Phone               string
	Subtotal            decimal.Decimal // GST-inclusive
	Shipping            decimal.Decimal
	Taxes               decimal.Decimal
	Total               decimal.Decimal
	PaymentMethod       string
	FulfillmentStatus   string
	LineItems           []LineItem
}

// LineItem is one product line within an order. Rows without an item name
// are not line items (they are address/continuation rows in the export).
type LineItem struct {
	Name     string
	Quantity int // defaults to 1 when absent or unparseable
	Price    decimal.Decimal
	SKU      string
	Discount decimal.Decimal
	Variant  string
}

// LineValue returns price * quantity for proportional tax distribution.
func (li LineItem) LineValue() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
