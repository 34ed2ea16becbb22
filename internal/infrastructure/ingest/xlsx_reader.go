package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/invoicekit/invoicekit-api/internal/domain"
	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
)

// XLSXOrderReader reconstructs orders from an XLSX order export. The first
// sheet is read with the same header/row contract as the CSV export.
type XLSXOrderReader struct{}

// NewXLSXOrderReader builds the reader.
func NewXLSXOrderReader() *XLSXOrderReader { return &XLSXOrderReader{} }

// ReadOrders parses raw workbook bytes into orders in first-seen order.
// Returns domain.ErrDecode when the bytes are not a readable workbook.
func (r *XLSXOrderReader) ReadOrders(raw []byte) ([]*entity.Order, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return collectOrders(rows[0], rows[1:]), nil
}
