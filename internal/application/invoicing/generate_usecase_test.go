package invoicing_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicekit/invoicekit-api/internal/application/invoicing"
	"github.com/invoicekit/invoicekit-api/internal/domain"
	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
	"github.com/invoicekit/invoicekit-api/internal/infrastructure/ingest"
	"github.com/invoicekit/invoicekit-api/pkg/logger"
)

// fakeRenderer satisfies invoicing.InvoiceRenderer without producing real
// PDFs. Orders listed in failOn fail to render, to exercise the batch
// skip-and-continue path.
type fakeRenderer struct {
	failOn map[string]bool
}

func (f *fakeRenderer) RenderInvoice(_ context.Context, inv invoicing.Invoice, _ *entity.InvoiceConfig, _ []byte) ([]byte, error) {
	if f.failOn[inv.Order.OrderNumber] {
		return nil, errors.New("render exploded")
	}
	return []byte("pdf:" + inv.Order.OrderNumber), nil
}

func (f *fakeRenderer) RenderBatch(_ context.Context, invs []invoicing.Invoice, _ *entity.InvoiceConfig, _ []byte) ([]byte, error) {
	var buf bytes.Buffer
	for _, inv := range invs {
		buf.WriteString("page:" + inv.Order.OrderNumber + "\n")
	}
	return buf.Bytes(), nil
}

const testExport = "Name,Created at,Billing Province Name,Subtotal,Lineitem name,Lineitem quantity,Lineitem price\n" +
	"#1,2022-09-15,Karnataka,1050.00,Saree,1,1050.00\n" +
	"#2,2022-09-16,Karnataka,525.00,Scarf,1,525.00\n" +
	"#3,2022-09-17,Maharashtra,210.00,Stole,1,210.00\n"

func testConfig() *entity.InvoiceConfig {
	return &entity.InvoiceConfig{
		Company: entity.CompanyProfile{Name: "Acme Textiles", SellerState: "Karnataka"},
	}
}

func newGenerateUC(renderer invoicing.InvoiceRenderer) *invoicing.GenerateUseCase {
	readers := invoicing.ReaderSet{CSV: ingest.NewCSVOrderReader(), XLSX: ingest.NewXLSXOrderReader()}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return invoicing.NewGenerateUseCase(readers, renderer, log)
}

func TestGenerateArchive_AllOrdersRendered(t *testing.T) {
	uc := newGenerateUC(&fakeRenderer{})

	raw, report, err := uc.GenerateArchive(context.Background(), []byte(testExport), "orders.csv", testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rendered)
	assert.Empty(t, report.Skipped)
	assert.NotEqual(t, report.ID.String(), "00000000-0000-0000-0000-000000000000")

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "invoice_1.pdf", zr.File[0].Name)
}

// One failing order must not abort the batch: the others still render and
// the report names what was skipped.
func TestGenerateArchive_SkipsFailingOrder(t *testing.T) {
	uc := newGenerateUC(&fakeRenderer{failOn: map[string]bool{"#2": true}})

	raw, report, err := uc.GenerateArchive(context.Background(), []byte(testExport), "orders.csv", testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Rendered)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "#2", report.Skipped[0].OrderNumber)
	assert.Contains(t, report.Skipped[0].Reason, "render exploded")

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.Equal(t, []string{"invoice_1.pdf", "invoice_3.pdf"}, names)
}

func TestGenerateArchive_AllOrdersFail(t *testing.T) {
	uc := newGenerateUC(&fakeRenderer{failOn: map[string]bool{"#1": true, "#2": true, "#3": true}})

	_, report, err := uc.GenerateArchive(context.Background(), []byte(testExport), "orders.csv", testConfig(), nil)
	require.Error(t, err)
	assert.Equal(t, 0, report.Rendered)
	assert.Len(t, report.Skipped, 3)
}

func TestGenerateArchive_NoOrders(t *testing.T) {
	uc := newGenerateUC(&fakeRenderer{})

	_, _, err := uc.GenerateArchive(context.Background(),
		[]byte("Name,Subtotal,Lineitem name\n"), "orders.csv", testConfig(), nil)
	assert.ErrorIs(t, err, domain.ErrNoOrders)
}

func TestGenerateMerged_OnePagePerOrder(t *testing.T) {
	uc := newGenerateUC(&fakeRenderer{})

	pdf, report, err := uc.GenerateMerged(context.Background(), []byte(testExport), "orders.csv", testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rendered)
	assert.Equal(t, "page:#1\npage:#2\npage:#3\n", string(pdf))
}

func TestPreviewFirstInvoice_UsesFirstOrder(t *testing.T) {
	readers := invoicing.ReaderSet{CSV: ingest.NewCSVOrderReader(), XLSX: ingest.NewXLSXOrderReader()}
	uc := invoicing.NewPreviewUseCase(readers, &fakeRenderer{})

	pdf, name, err := uc.PreviewFirstInvoice(context.Background(), []byte(testExport), "orders.csv", testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, "pdf:#1", string(pdf))
	assert.Equal(t, "invoice_1.pdf", name)
}

func TestPreviewFirstInvoice_NoOrders(t *testing.T) {
	readers := invoicing.ReaderSet{CSV: ingest.NewCSVOrderReader(), XLSX: ingest.NewXLSXOrderReader()}
	uc := invoicing.NewPreviewUseCase(readers, &fakeRenderer{})

	_, _, err := uc.PreviewFirstInvoice(context.Background(),
		[]byte("Name,Subtotal,Lineitem name\n"), "orders.csv", testConfig(), nil)
	assert.ErrorIs(t, err, domain.ErrNoOrders)
}

func TestCountOrders(t *testing.T) {
	readers := invoicing.ReaderSet{CSV: ingest.NewCSVOrderReader(), XLSX: ingest.NewXLSXOrderReader()}
	uc := invoicing.NewCountUseCase(readers)

	count, err := uc.CountOrders([]byte(testExport), "orders.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = uc.CountOrders([]byte("Name,Subtotal,Lineitem name\n"), "orders.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
