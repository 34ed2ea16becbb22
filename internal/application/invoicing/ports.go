// Package invoicing contains the use cases behind the invoice API: counting,
// previewing and bulk-generating invoices from uploaded order exports.
package invoicing

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
	"github.com/invoicekit/invoicekit-api/internal/domain/gst"
)

// OrderReader reconstructs orders from raw export bytes. Implementations are
// stateless and side-effect free; each call is independent.
type OrderReader interface {
	ReadOrders(raw []byte) ([]*entity.Order, error)
}

// Invoice is the render input for one order: the order itself plus its
// freshly computed tax breakdown.
type Invoice struct {
	Order     *entity.Order
	Breakdown *gst.Breakdown
}

// InvoiceRenderer produces invoice documents. RenderBatch merges all
// invoices into one document, one invoice per page.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, inv Invoice, cfg *entity.InvoiceConfig, logo []byte) ([]byte, error)
	RenderBatch(ctx context.Context, invs []Invoice, cfg *entity.InvoiceConfig, logo []byte) ([]byte, error)
}

// ReaderSet selects the order reader by upload filename.
type ReaderSet struct {
	CSV  OrderReader
	XLSX OrderReader
}

// For returns the reader matching the file extension; CSV is the default.
func (s ReaderSet) For(filename string) OrderReader {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return s.XLSX
	}
	return s.CSV
}
