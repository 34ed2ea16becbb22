package entity

import "github.com/shopspring/decimal"

// CompanyProfile is the seller profile printed on every invoice.
type CompanyProfile struct {
	Name               string
	GSTIN              string // GST registration number
	Address            string
	Email              string
	Website            string
	SellerState        string // state display name, compared against the buyer's
	SellerStateCode    string // GST state code, e.g. "29" for Karnataka
	ShippedFrom        string
	HSNCode            string // product classification code shown per line
	TransportMode      string
	InvoicePrefix      string
	InvoiceStartNumber int
}

// TaxRule is one historical GST rate window. To == nil means open-ended
// (the currently active rate). Rules are evaluated in the given order.
type TaxRule struct {
	From string
	To   *string
	Rate decimal.Decimal // percentage, e.g. 5 or 12
}

// InvoiceConfig is the per-request configuration: seller profile plus the
// ordered tax-rule list. Supplied by the caller on every invocation and
// treated as immutable; nothing here is persisted.
type InvoiceConfig struct {
	Company  CompanyProfile
	TaxRules []TaxRule
}
