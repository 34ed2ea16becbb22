package http

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/invoicekit/invoicekit-api/internal/application/dto"
	"github.com/invoicekit/invoicekit-api/internal/application/invoicing"
	"github.com/invoicekit/invoicekit-api/internal/domain"
)

// Multipart form fields.
const (
	fieldOrdersFile = "orders_file"
	fieldConfigJSON = "config_json"
	fieldLogoFile   = "logo_file"
	fieldFormat     = "format"
)

// InvoiceHandler handles the invoice-generation HTTP surface.
type InvoiceHandler struct {
	countUC    *invoicing.CountUseCase
	previewUC  *invoicing.PreviewUseCase
	generateUC *invoicing.GenerateUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(
	countUC *invoicing.CountUseCase,
	previewUC *invoicing.PreviewUseCase,
	generateUC *invoicing.GenerateUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{countUC: countUC, previewUC: previewUC, generateUC: generateUC}
}

// Count returns the number of qualifying orders in the uploaded export.
// POST /api/orders/count
func (h *InvoiceHandler) Count(c *fiber.Ctx) error {
	raw, filename, err := formFile(c, fieldOrdersFile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "orders_file is required"})
	}

	count, err := h.countUC.CountOrders(raw, filename)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: count})
}

// Preview renders the invoice PDF for the first order in the export and
// returns it inline for display.
// POST /api/invoices/preview
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	raw, filename, err := formFile(c, fieldOrdersFile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "orders_file is required"})
	}
	cfg, err := dto.ParseInvoiceConfig([]byte(c.FormValue(fieldConfigJSON)))
	if err != nil {
		return mapError(c, err)
	}
	logo, _, _ := formFile(c, fieldLogoFile) // optional

	pdf, name, err := h.previewUC.PreviewFirstInvoice(c.Context(), raw, filename, cfg, logo)
	if err != nil {
		return mapError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename=`+name)
	return c.Send(pdf)
}

// Generate renders invoices for ALL orders in the export.
// format=single -> one merged PDF; format=zip (default) -> ZIP of per-order
// PDFs with per-order failure isolation.
// POST /api/invoices/generate
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	raw, filename, err := formFile(c, fieldOrdersFile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "orders_file is required"})
	}
	cfg, err := dto.ParseInvoiceConfig([]byte(c.FormValue(fieldConfigJSON)))
	if err != nil {
		return mapError(c, err)
	}
	logo, _, _ := formFile(c, fieldLogoFile) // optional

	if c.FormValue(fieldFormat, "zip") == "single" {
		pdf, report, err := h.generateUC.GenerateMerged(c.Context(), raw, filename, cfg, logo)
		if err != nil {
			return mapError(c, err)
		}
		setReportHeaders(c, report)
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=invoices.pdf`)
		return c.Send(pdf)
	}

	zipBytes, report, err := h.generateUC.GenerateArchive(c.Context(), raw, filename, cfg, logo)
	if err != nil {
		return mapError(c, err)
	}
	setReportHeaders(c, report)
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=invoices.zip`)
	return c.Send(zipBytes)
}

func setReportHeaders(c *fiber.Ctx, report *invoicing.BatchReport) {
	c.Set("X-Batch-Id", report.ID.String())
	c.Set("X-Invoices-Rendered", strconv.Itoa(report.Rendered))
	c.Set("X-Invoices-Skipped", strconv.Itoa(len(report.Skipped)))
}

// formFile reads one multipart file field fully into memory.
func formFile(c *fiber.Ctx, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return raw, fh.Filename, nil
}

// mapError translates domain errors into HTTP responses. Structural problems
// are 400s with stable codes; anything else is a 500.
func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDecode):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DECODE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidConfig):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CONFIG", Message: err.Error()})
	case errors.Is(err, domain.ErrNoOrders):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_ORDERS", Message: "no valid orders found in the uploaded file"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
