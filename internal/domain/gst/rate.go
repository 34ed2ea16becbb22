// Package gst implements the GST tax core for Indian sellers: historical
// rate resolution, intra/inter-state classification and the per-order tax
// breakdown with proportional line-item distribution.
package gst

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
)

// Fixed layouts tried in priority order before falling back to a flexible
// parse. Shopify exports usually carry ISO timestamps with offsets; manual
// CSVs show up with bare dates or d/m/Y.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
}

// ResolveRate picks the GST rate applicable to an order date from an ordered
// rule list. It never fails:
//   - empty rule list -> 0
//   - unparseable order date -> rate of the last rule
//   - no window matches -> rate of the last rule
//
// The last-rule fallback is deliberate "current rate as default" policy: an
// order predating every defined window still gets the newest listed rate.
func ResolveRate(createdAt string, rules []entity.TaxRule) decimal.Decimal {
	if len(rules) == 0 {
		return decimal.Zero
	}

	orderDate, ok := ParseDate(createdAt)
	if !ok {
		return rules[len(rules)-1].Rate
	}

	for _, rule := range rules {
		from, ok := ParseDate(rule.From)
		if !ok {
			continue
		}
		if orderDate.Before(from) {
			continue
		}
		if rule.To != nil && *rule.To != "" {
			// An unparseable end date is treated as open-ended.
			if to, ok := ParseDate(*rule.To); ok && orderDate.After(to) {
				continue
			}
		}
		return rule.Rate
	}

	return rules[len(rules)-1].Rate
}

// ParseDate parses a date string at day granularity. Fixed layouts win over
// the flexible parser so that d/m/Y is preferred for ambiguous values. The
// boolean reports whether any parse succeeded.
func ParseDate(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		v := val
		// Timestamps often trail the layout (e.g. "2023-05-01 10:30:00
		// +0530" against the bare date layout); match on the prefix.
		if layout != time.RFC3339 && len(v) > len(layout) {
			v = v[:len(layout)]
		}
		if t, err := time.Parse(layout, v); err == nil {
			return dateOnly(t), true
		}
	}

	// Last resort: flexible parse for anything the fixed layouts miss.
	if t, err := dateparse.ParseAny(val); err == nil {
		return dateOnly(t), true
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
