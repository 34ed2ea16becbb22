package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicekit/invoicekit-api/internal/infrastructure/archive"
)

func TestBuildArchive_RoundTrip(t *testing.T) {
	entries := []archive.Entry{
		{Name: "invoice_1001.pdf", Data: []byte("pdf-one")},
		{Name: "invoice_1002.pdf", Data: []byte("pdf-two")},
	}

	raw, err := archive.BuildArchive(entries)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	got := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		got[f.Name] = string(data)
	}
	assert.Equal(t, "pdf-one", got["invoice_1001.pdf"])
	assert.Equal(t, "pdf-two", got["invoice_1002.pdf"])
}

func TestBuildArchive_Empty(t *testing.T) {
	raw, err := archive.BuildArchive(nil)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}

func TestInvoiceFilename_Normalization(t *testing.T) {
	assert.Equal(t, "invoice_1001.pdf", archive.InvoiceFilename("#1001"))
	assert.Equal(t, "invoice_1001.pdf", archive.InvoiceFilename(" #1001 "))
	assert.Equal(t, "invoice_2022-045.pdf", archive.InvoiceFilename("#2022/045"))
	assert.Equal(t, "invoice_1003.pdf", archive.InvoiceFilename("1003"))
}
