package dto

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/invoicekit/invoicekit-api/internal/domain"
	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
	"github.com/invoicekit/invoicekit-api/internal/domain/gst"
)

// CompanyRequest mirrors the company section of the config_json form field.
type CompanyRequest struct {
	Name               string `json:"name"`
	GSTIN              string `json:"gstin"`
	Address            string `json:"address"`
	Email              string `json:"email"`
	Website            string `json:"website"`
	SellerState        string `json:"seller_state"`
	SellerStateCode    string `json:"seller_state_code"`
	ShippedFrom        string `json:"shipped_from"`
	HSNCode            string `json:"hsn_code"`
	TransportMode      string `json:"transport_mode"`
	InvoicePrefix      string `json:"invoice_prefix"`
	InvoiceStartNumber int    `json:"invoice_start_number"`
}

// TaxRuleRequest is one rate window. To == null means open-ended.
type TaxRuleRequest struct {
	From string  `json:"from"`
	To   *string `json:"to"`
	Rate float64 `json:"rate"`
}

// InvoiceConfigRequest is the full per-request configuration payload.
type InvoiceConfigRequest struct {
	Company  CompanyRequest   `json:"company"`
	TaxRules []TaxRuleRequest `json:"tax_rules"`
}

// ParseInvoiceConfig decodes the config_json payload into the domain config.
// A missing tax_rules list is treated as empty; a missing seller state code
// is backfilled from the state name. Decode failures surface as
// domain.ErrInvalidConfig with the parse detail attached.
func ParseInvoiceConfig(raw []byte) (*entity.InvoiceConfig, error) {
	var req InvoiceConfigRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if req.Company.Name == "" {
		return nil, fmt.Errorf("%w: company.name is required", domain.ErrInvalidConfig)
	}
	return req.ToEntity(), nil
}

// ToEntity converts the request into the immutable domain configuration.
func (r InvoiceConfigRequest) ToEntity() *entity.InvoiceConfig {
	cfg := &entity.InvoiceConfig{
		Company: entity.CompanyProfile{
			Name:               r.Company.Name,
			GSTIN:              r.Company.GSTIN,
			Address:            r.Company.Address,
			Email:              r.Company.Email,
			Website:            r.Company.Website,
			SellerState:        r.Company.SellerState,
			SellerStateCode:    r.Company.SellerStateCode,
			ShippedFrom:        r.Company.ShippedFrom,
			HSNCode:            r.Company.HSNCode,
			TransportMode:      r.Company.TransportMode,
			InvoicePrefix:      r.Company.InvoicePrefix,
			InvoiceStartNumber: r.Company.InvoiceStartNumber,
		},
		TaxRules: make([]entity.TaxRule, 0, len(r.TaxRules)),
	}
	if cfg.Company.SellerStateCode == "" {
		cfg.Company.SellerStateCode = gst.StateCode(cfg.Company.SellerState)
	}
	for _, tr := range r.TaxRules {
		cfg.TaxRules = append(cfg.TaxRules, entity.TaxRule{
			From: tr.From,
			To:   tr.To,
			Rate: decimal.NewFromFloat(tr.Rate),
		})
	}
	return cfg
}
