package invoicing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/invoicekit/invoicekit-api/internal/domain"
	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
	"github.com/invoicekit/invoicekit-api/internal/domain/gst"
	"github.com/invoicekit/invoicekit-api/internal/infrastructure/archive"
	"github.com/invoicekit/invoicekit-api/pkg/logger"
)

// SkippedOrder records one order excluded from a batch and why.
type SkippedOrder struct {
	OrderNumber string
	Reason      string
}

// BatchReport is the explicit per-item outcome of a batch run. Skipping is a
// product requirement, not an accident: one bad order must never abort the
// remaining ones, and the caller gets told exactly what was left out.
type BatchReport struct {
	ID       uuid.UUID
	Rendered int
	Skipped  []SkippedOrder
}

// GenerateUseCase produces invoices for every order in an export, either as
// one merged PDF or as a ZIP of per-order PDFs.
type GenerateUseCase struct {
	readers  ReaderSet
	renderer InvoiceRenderer
	log      *logger.Logger
}

// NewGenerateUseCase builds the use case.
func NewGenerateUseCase(readers ReaderSet, renderer InvoiceRenderer, log *logger.Logger) *GenerateUseCase {
	return &GenerateUseCase{readers: readers, renderer: renderer, log: log}
}

// GenerateArchive renders one PDF per order and bundles them into a ZIP.
// Orders that fail to render are skipped and reported; the batch succeeds as
// long as at least one invoice rendered.
func (uc *GenerateUseCase) GenerateArchive(
	ctx context.Context,
	raw []byte,
	filename string,
	cfg *entity.InvoiceConfig,
	logo []byte,
) ([]byte, *BatchReport, error) {
	orders, err := uc.readOrders(raw, filename)
	if err != nil {
		return nil, nil, err
	}

	report := &BatchReport{ID: uuid.New()}
	entries := make([]archive.Entry, 0, len(orders))

	for _, ord := range orders {
		pdf, err := uc.renderOne(ctx, ord, cfg, logo)
		if err != nil {
			uc.log.Warn().
				Str("batch_id", report.ID.String()).
				Str("order", ord.OrderNumber).
				Err(err).
				Msg("skipping order in batch")
			report.Skipped = append(report.Skipped, SkippedOrder{
				OrderNumber: ord.OrderNumber,
				Reason:      err.Error(),
			})
			continue
		}
		entries = append(entries, archive.Entry{
			Name: archive.InvoiceFilename(ord.OrderNumber),
			Data: pdf,
		})
		report.Rendered++
	}

	if report.Rendered == 0 {
		return nil, report, fmt.Errorf("generate: all %d orders failed to render", len(orders))
	}

	zipBytes, err := archive.BuildArchive(entries)
	if err != nil {
		return nil, report, err
	}
	return zipBytes, report, nil
}

// GenerateMerged renders all orders into one combined PDF, one invoice per
// page. Orders that fail validation are skipped and reported before the
// single render pass.
func (uc *GenerateUseCase) GenerateMerged(
	ctx context.Context,
	raw []byte,
	filename string,
	cfg *entity.InvoiceConfig,
	logo []byte,
) ([]byte, *BatchReport, error) {
	orders, err := uc.readOrders(raw, filename)
	if err != nil {
		return nil, nil, err
	}

	report := &BatchReport{ID: uuid.New()}
	invs := make([]Invoice, 0, len(orders))

	for _, ord := range orders {
		if err := validateOrder(ord); err != nil {
			uc.log.Warn().
				Str("batch_id", report.ID.String()).
				Str("order", ord.OrderNumber).
				Err(err).
				Msg("skipping order in merged document")
			report.Skipped = append(report.Skipped, SkippedOrder{
				OrderNumber: ord.OrderNumber,
				Reason:      err.Error(),
			})
			continue
		}
		invs = append(invs, Invoice{Order: ord, Breakdown: gst.ComputeBreakdown(ord, cfg)})
	}

	if len(invs) == 0 {
		return nil, report, fmt.Errorf("generate: all %d orders failed validation", len(orders))
	}

	pdf, err := uc.renderer.RenderBatch(ctx, invs, cfg, logo)
	if err != nil {
		return nil, report, fmt.Errorf("generate: render merged document: %w", err)
	}
	report.Rendered = len(invs)
	return pdf, report, nil
}

func (uc *GenerateUseCase) readOrders(raw []byte, filename string) ([]*entity.Order, error) {
	orders, err := uc.readers.For(filename).ReadOrders(raw)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNoOrders
	}
	return orders, nil
}

func (uc *GenerateUseCase) renderOne(
	ctx context.Context,
	ord *entity.Order,
	cfg *entity.InvoiceConfig,
	logo []byte,
) ([]byte, error) {
	if err := validateOrder(ord); err != nil {
		return nil, err
	}
	inv := Invoice{Order: ord, Breakdown: gst.ComputeBreakdown(ord, cfg)}
	return uc.renderer.RenderInvoice(ctx, inv, cfg, logo)
}

// validateOrder checks the fields a rendered invoice cannot do without.
func validateOrder(ord *entity.Order) error {
	if ord.OrderNumber == "" {
		return fmt.Errorf("%w: order number is empty", domain.ErrInvalidInput)
	}
	return nil
}
