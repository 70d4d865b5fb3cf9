package receipthtml_test

import (
	"bytes"
	"testing"
	"time"

	"checkout/internal/adapters/out/receipthtml"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ReceiptRenderer = (*receipthtml.Renderer)(nil)

func newRenderer(t *testing.T) *receipthtml.Renderer {
	t.Helper()
	r, err := receipthtml.NewRenderer()
	require.NoError(t, err)
	return r
}

func newResult(t *testing.T, name, address, notes string, tier shipping.Tier) *order.Result {
	t.Helper()
	invoice, err := order.NewInvoice("INV-01HXRECEIPT", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	half, err := kernel.ParseMoney("99.5")
	require.NoError(t, err)
	lines := []order.Line{
		order.NewLine("sku-1", "Panjabi", kernel.MustMoneyFromInt(600), 2, ""),
		order.NewLine("sku-2", "Tupi", half, 1, ""),
	}
	subtotal := lines[0].Amount().Add(lines[1].Amount())

	result, err := order.NewResult(
		invoice,
		checkout.NewContactInfo(name, "01812345678"),
		address,
		tier,
		payment.CashOnDelivery,
		notes,
		lines,
		order.Pricing{Subtotal: subtotal, DeliveryCost: tier.FlatCost(), Total: subtotal},
	)
	require.NoError(t, err)
	return result
}

func parse(t *testing.T, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestRender_BengaliDisplay(t *testing.T) {
	result := newResult(t, "করিম", "12 Green Rd, Dhaka, Dhaka", "", shipping.NearZone)

	doc, err := newRenderer(t).Render(result, receipt.Options{})
	require.NoError(t, err)

	assert.Equal(t, receipt.Display, doc.Sink)
	assert.Equal(t, "INV-01HXRECEIPT", doc.Invoice)
	assert.Equal(t, "inline", doc.Disposition())

	html := parse(t, doc.Body)
	assert.Equal(t, "bn", html.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "অর্ডার সফল হয়েছে!", html.Find(".title").Text())
	assert.Equal(t, "অর্ডার নম্বর: INV-01HXRECEIPT", html.Find("#invoice").Text())
	assert.Equal(t, "করিম", html.Find("#name").Text())
	assert.Equal(t, "12 Green Rd, Dhaka, Dhaka", html.Find("#address").Text())
	assert.Equal(t, "ঢাকার ভিতরে", html.Find("#tier").Text())
	assert.Equal(t, "১-৩ দিন", html.Find("#days").Text())
	assert.Equal(t, "ক্যাশ অন ডেলিভারি", html.Find("#method").Text())
	assert.Equal(t, "অর্ডার তারিখ: ০১/০৫/২০২৪", html.Find("#date").Text())
	assert.Equal(t, 2, html.Find("tr.line").Length())
	assert.Equal(t, 3, html.Find(".next-steps li").Length())
	assert.Contains(t, html.Find("#total").Text(), "৳")
	assert.Zero(t, html.Find("#notes").Length(), "notes section is omitted when empty")
	assert.Zero(t, html.Find("script").Length())
}

func TestRender_EnglishAmounts(t *testing.T) {
	result := newResult(t, "Karim", "Zindabazar, Sylhet, Sylhet", "", shipping.FarZone)

	doc, err := newRenderer(t).Render(result, receipt.Options{Language: receipt.English})
	require.NoError(t, err)

	html := parse(t, doc.Body)
	assert.Equal(t, "Outside Dhaka", html.Find("#tier").Text())
	assert.Equal(t, "3-5 days", html.Find("#days").Text())
	assert.Equal(t, "Cash on Delivery", html.Find("#method").Text())
	assert.Equal(t, "৳1,299.5", html.Find("#subtotal").Text())
	assert.Equal(t, "৳120", html.Find("#delivery-cost").Text())
	assert.Equal(t, "৳1,299.5", html.Find("#total").Text())

	first := html.Find("tr.line").First().Find("td")
	assert.Equal(t, "Panjabi", first.Eq(0).Text())
	assert.Equal(t, "2", first.Eq(1).Text())
	assert.Equal(t, "৳600", first.Eq(2).Text())
	assert.Equal(t, "৳1,200", first.Eq(3).Text())
	assert.Equal(t, "Order date: 01/05/2024", html.Find("#date").Text())
}

func TestRender_AmountsAreExact(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"0.05", "৳0.05"},
		{"12345678.10", "৳12,345,678.1"},
		{"9999999999.99", "৳9,999,999,999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			invoice, err := order.NewInvoice("INV-01HXEXACT", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			price, err := kernel.ParseMoney(tt.price)
			require.NoError(t, err)
			line := order.NewLine("sku-1", "Panjabi", price, 1, "")
			result, err := order.NewResult(
				invoice,
				checkout.NewContactInfo("Karim", "01812345678"),
				"12 Green Rd, Dhaka, Dhaka",
				shipping.NearZone,
				payment.CashOnDelivery,
				"",
				[]order.Line{line},
				order.Pricing{Subtotal: price, DeliveryCost: shipping.NearZone.FlatCost(), Total: price},
			)
			require.NoError(t, err)

			doc, err := newRenderer(t).Render(result, receipt.Options{Language: receipt.English})
			require.NoError(t, err)

			assert.Equal(t, tt.want, parse(t, doc.Body).Find("#total").Text())
		})
	}
}

func TestRender_EscapesUserText(t *testing.T) {
	hostile := `<script>alert("x")</script>`
	result := newResult(t, hostile, hostile+" Road", "Leave at gate\n**fragile** "+hostile, shipping.NearZone)

	doc, err := newRenderer(t).Render(result, receipt.Options{Language: receipt.English})
	require.NoError(t, err)

	assert.NotContains(t, string(doc.Body), "<script>alert")
	html := parse(t, doc.Body)
	assert.Zero(t, html.Find("script").Length())
	assert.Equal(t, hostile, html.Find("#name").Text())
	assert.Equal(t, hostile+" Road", html.Find("#address").Text())

	notes := html.Find("#notes")
	assert.Equal(t, 1, notes.Length())
	assert.Equal(t, "fragile", notes.Find("strong").Text())
	assert.Equal(t, 1, notes.Find("br").Length(), "line breaks are kept")
	assert.Contains(t, notes.Text(), "Leave at gate")
}

func TestRender_SinksShareOneBody(t *testing.T) {
	renderer := newRenderer(t)
	result := newResult(t, "Karim", "12 Green Rd, Dhaka, Dhaka", "call first", shipping.NearZone)

	display, err := renderer.Render(result, receipt.Options{Sink: receipt.Display})
	require.NoError(t, err)
	download, err := renderer.Render(result, receipt.Options{Sink: receipt.Download})
	require.NoError(t, err)
	printed, err := renderer.Render(result, receipt.Options{Sink: receipt.Print})
	require.NoError(t, err)

	assert.Equal(t, display.Body, download.Body)
	require.True(t, bytes.HasPrefix(printed.Body, display.Body))
	assert.Equal(t, receipthtml.PrintTrigger, string(printed.Body[len(display.Body):]))

	assert.Equal(t, `attachment; filename="Order-INV-01HXRECEIPT.html"`, download.Disposition())
	assert.Equal(t, "Order-INV-01HXRECEIPT.html", download.Filename())
	assert.Equal(t, 1, parse(t, printed.Body).Find("script").Length())
}

func TestRender_Errors(t *testing.T) {
	renderer := newRenderer(t)

	_, err := renderer.Render(&order.Result{}, receipt.Options{})
	require.ErrorIs(t, err, order.ErrResultIsNotConstructed)

	result := newResult(t, "Karim", "Dhaka", "", shipping.NearZone)
	_, err = renderer.Render(result, receipt.Options{Sink: "fax"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = renderer.Render(result, receipt.Options{Language: "fr"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
