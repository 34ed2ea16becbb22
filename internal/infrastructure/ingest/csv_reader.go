package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/invoicekit/invoicekit-api/internal/domain"
	"github.com/invoicekit/invoicekit-api/internal/domain/entity"
)

// CSVOrderReader reconstructs orders from a Shopify order-export CSV.
// Stateless; one instance serves concurrent requests.
type CSVOrderReader struct{}

// NewCSVOrderReader builds the reader.
func NewCSVOrderReader() *CSVOrderReader { return &CSVOrderReader{} }

// ReadOrders parses raw CSV bytes into orders in first-seen order.
// Returns domain.ErrDecode when the bytes are not UTF-8 text. An optional
// byte-order mark is tolerated and stripped.
func (r *CSVOrderReader) ReadOrders(raw []byte) ([]*entity.Order, error) {
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1 // export rows are ragged
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read csv header: %w", err)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read csv row: %w", err)
		}
		records = append(records, rec)
	}

	return collectOrders(header, records), nil
}

// decodeText validates the upload as UTF-8 and strips a leading BOM.
// Validity is checked on the raw bytes: the BOM decoder would silently
// replace broken sequences instead of reporting them.
func decodeText(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, domain.ErrDecode
	}
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return text, nil
}
