package ingest_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicekit/invoicekit-api/internal/domain"
	"github.com/invoicekit/invoicekit-api/internal/infrastructure/ingest"
)

const exportHeader = "Name,Created at,Billing Name,Billing First Name,Billing Last Name," +
	"Billing Address1,Billing City,Billing Zip,Billing Province,Billing Province Name," +
	"Billing Country,Email,Phone,Subtotal,Shipping,Taxes,Total,Payment Method," +
	"Fulfillment Status,Lineitem name,Lineitem quantity,Lineitem price,Lineitem sku," +
	"Lineitem discount,Lineitem variant title\n"

// Two orders: #1001 spans three rows (order row + extra line item +
// continuation row without item name), #1002 is a single row.
const sampleExport = exportHeader +
	"#1001,2022-09-15T10:30:00+05:30,Asha Rao,,,12 MG Road,Bengaluru,560001,KA,Karnataka,India,asha@example.com,9876543210,\"1,050.00\",50.00,50.00,1100.00,Razorpay,fulfilled,Cotton Saree,2,400.00,SKU-CS1,20.00,Red\n" +
	"#1001,,,,,,,,,,,,,,,,,,,Blouse Piece,1,250.00,SKU-BP1,0.00,\n" +
	"#1001,,,,,,,,,,,,,,,,,,,,,,,,\n" +
	"#1002,2022-11-02,,Ravi,Kumar,8 FC Road,Pune,411004,MH,Maharashtra,India,ravi@example.com,,560.00,0.00,60.00,560.00,COD,,Silk Scarf,1,560.00,,,\n"

func TestReadOrders_GroupsRowsIntoOrders(t *testing.T) {
	reader := ingest.NewCSVOrderReader()

	orders, err := reader.ReadOrders([]byte(sampleExport))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "#1001", first.OrderNumber)
	assert.Equal(t, "2022-09-15T10:30:00+05:30", first.CreatedAt)
	assert.Equal(t, "Asha Rao", first.CustomerName)
	assert.Equal(t, "Karnataka", first.BillingProvinceName)
	assert.True(t, decimal.RequireFromString("1050").Equal(first.Subtotal),
		"thousands separator must be stripped, got %s", first.Subtotal)

	// Line items in original row order; the continuation row adds none.
	require.Len(t, first.LineItems, 2)
	assert.Equal(t, "Cotton Saree", first.LineItems[0].Name)
	assert.Equal(t, 2, first.LineItems[0].Quantity)
	assert.Equal(t, "Red", first.LineItems[0].Variant)
	assert.Equal(t, "Blouse Piece", first.LineItems[1].Name)

	second := orders[1]
	assert.Equal(t, "#1002", second.OrderNumber)
	assert.Equal(t, "Ravi Kumar", second.CustomerName, "first+last fallback when combined name is empty")
	require.Len(t, second.LineItems, 1)
}

func TestReadOrders_FirstRowWinsOrderFields(t *testing.T) {
	// A later row for a known order must not overwrite order-level fields.
	data := exportHeader +
		"#1,2022-01-01,First Winner,,,,,,,,,,,100.00,,,,,,Item A,1,100.00,,,\n" +
		"#1,2099-12-31,Impostor,,,,,,,,,,,999.00,,,,,,Item B,1,1.00,,,\n"
	orders, err := ingest.NewCSVOrderReader().ReadOrders([]byte(data))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, "2022-01-01", orders[0].CreatedAt)
	assert.Equal(t, "First Winner", orders[0].CustomerName)
	assert.True(t, decimal.RequireFromString("100").Equal(orders[0].Subtotal))
	assert.Len(t, orders[0].LineItems, 2)
}

func TestReadOrders_FiltersNonOrders(t *testing.T) {
	data := exportHeader +
		// No subtotal, no line items: discarded.
		"#10,2022-01-01,Ghost,,,,,,,,,,,,,,,,,,,,,,\n" +
		// Zero subtotal but one line item: kept.
		"#11,2022-01-01,Gifted,,,,,,,,,,,0.00,,,,,,Free Sample,1,0.00,,,\n" +
		// Rows without an order number are skipped entirely.
		",2022-01-01,Noise,,,,,,,,,,,500.00,,,,,,Item,1,500.00,,,\n"
	orders, err := ingest.NewCSVOrderReader().ReadOrders([]byte(data))
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, "#11", orders[0].OrderNumber)
}

func TestReadOrders_FieldDefaults(t *testing.T) {
	data := exportHeader +
		"#20,2022-01-01,Buyer,,,,,,,,,,,abc,,,,,,Mystery Item,abc,xyz,,abc,\n"
	orders, err := ingest.NewCSVOrderReader().ReadOrders([]byte(data))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	ord := orders[0]
	assert.True(t, ord.Subtotal.IsZero(), "unparseable decimal defaults to 0")
	require.Len(t, ord.LineItems, 1)
	assert.Equal(t, 1, ord.LineItems[0].Quantity, "unparseable quantity defaults to 1, never 0")
	assert.True(t, ord.LineItems[0].Price.IsZero())
	assert.True(t, ord.LineItems[0].Discount.IsZero())
}

func TestReadOrders_ToleratesBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleExport)...)
	orders, err := ingest.NewCSVOrderReader().ReadOrders(withBOM)
	require.NoError(t, err)

	// Without BOM stripping the first header cell would be "\uFEFFName"
	// and every row would be treated as order-number noise.
	assert.Len(t, orders, 2)
}

func TestReadOrders_RejectsNonUTF8(t *testing.T) {
	_, err := ingest.NewCSVOrderReader().ReadOrders([]byte{0xFF, 0xFE, 0x00, 0x41})
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestReadOrders_EmptyInput(t *testing.T) {
	orders, err := ingest.NewCSVOrderReader().ReadOrders(nil)
	require.NoError(t, err)
	assert.Empty(t, orders)

	orders, err = ingest.NewCSVOrderReader().ReadOrders([]byte(exportHeader))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestReadOrders_TrimsWhitespace(t *testing.T) {
	data := exportHeader +
		"#30,2022-01-01,  Padded Name  ,,, 1 Gandhi Rd ,,,,,,,,100.00,,,,,,  Item  ,1,100.00, SKU-1 ,,\n"
	orders, err := ingest.NewCSVOrderReader().ReadOrders([]byte(data))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, "Padded Name", orders[0].CustomerName)
	assert.Equal(t, "1 Gandhi Rd", orders[0].BillingAddress1)
	assert.Equal(t, "Item", orders[0].LineItems[0].Name)
	assert.Equal(t, "SKU-1", orders[0].LineItems[0].SKU)
}

func TestReadOrders_ShortRowsDefaultToEmpty(t *testing.T) {
	// Ragged exports: a row shorter than the header must not panic.
	data := exportHeader + "#40,2022-01-01\n"
	orders, err := ingest.NewCSVOrderReader().ReadOrders([]byte(data))
	require.NoError(t, err)

	// No subtotal, no items -> filtered out. The point is it parses.
	assert.Empty(t, orders)
}

func TestReadOrders_PreservesFirstSeenOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString(exportHeader)
	b.WriteString("#3,2022-01-01,C,,,,,,,,,,,300.00,,,,,,Item,1,300.00,,,\n")
	b.WriteString("#1,2022-01-01,A,,,,,,,,,,,100.00,,,,,,Item,1,100.00,,,\n")
	b.WriteString("#2,2022-01-01,B,,,,,,,,,,,200.00,,,,,,Item,1,200.00,,,\n")
	b.WriteString("#1,,,,,,,,,,,,,,,,,,,Extra,1,10.00,,,\n")

	orders, err := ingest.NewCSVOrderReader().ReadOrders([]byte(b.String()))
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, "#3", orders[0].OrderNumber)
	assert.Equal(t, "#1", orders[1].OrderNumber)
	assert.Equal(t, "#2", orders[2].OrderNumber)
	assert.Len(t, orders[1].LineItems, 2)
}
