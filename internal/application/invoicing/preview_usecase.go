package invoicing

import (
	"context"
	"fmt"

	"github.com/invoicekit/invoicekit-api/internal/domain"
	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
	"github.com/invoicekit/invoicekit-api/internal/domain/gst"
	"github.com/invoicekit/invoicekit-api/internal/infrastructure/archive"
)

// PreviewUseCase renders the invoice for the FIRST order of an export, so
// the caller can inspect layout and tax figures before a full batch run.
type PreviewUseCase struct {
	readers  ReaderSet
	renderer InvoiceRenderer
}

// NewPreviewUseCase builds the use case.
func NewPreviewUseCase(readers ReaderSet, renderer InvoiceRenderer) *PreviewUseCase {
	return &PreviewUseCase{readers: readers, renderer: renderer}
}

// PreviewFirstInvoice reconstructs the export, computes the tax breakdown of
// the first order and renders its PDF.
//
// Returns:
//   - (pdfBytes, filename, nil) on success
//   - domain.ErrDecode          when the upload is unreadable
//   - domain.ErrNoOrders        when the export holds no qualifying orders
func (uc *PreviewUseCase) PreviewFirstInvoice(
	ctx context.Context,
	raw []byte,
	filename string,
	cfg *entity.InvoiceConfig,
	logo []byte,
) ([]byte, string, error) {
	orders, err := uc.readers.For(filename).ReadOrders(raw)
	if err != nil {
		return nil, "", err
	}
	if len(orders) == 0 {
		return nil, "", domain.ErrNoOrders
	}

	first := orders[0]
	inv := Invoice{Order: first, Breakdown: gst.ComputeBreakdown(first, cfg)}

	pdf, err := uc.renderer.RenderInvoice(ctx, inv, cfg, logo)
	if err != nil {
		return nil, "", fmt.Errorf("preview: render %s: %w", first.OrderNumber, err)
	}
	return pdf, archive.InvoiceFilename(first.OrderNumber), nil
}
