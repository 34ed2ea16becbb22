// Package archive bundles rendered invoices into an in-memory ZIP for the
// bulk download path.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// Entry is one file inside the bundle.
type Entry struct {
	Name string
	Data []byte
}

// BuildArchive packs the entries into a ZIP and returns its bytes.
func BuildArchive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		fw, err := zw.Create(e.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: create entry %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return nil, fmt.Errorf("zip: write entry %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoiceFilename derives the PDF filename for an order: the leading '#'
// marker is dropped and '/' is replaced so the name is safe as a ZIP entry.
// Example: "#1001" -> "invoice_1001.pdf".
func InvoiceFilename(orderNumber string) string {
	name := strings.TrimPrefix(strings.TrimSpace(orderNumber), "#")
	name = strings.ReplaceAll(name, "/", "-")
	return "invoice_" + name + ".pdf"
}
