// Package receipthtml renders order confirmations as self-contained HTML
// documents. Display, download and print share one rendering pass; print
// appends a trigger script after the shared document.
package receipthtml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/receipt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed receipt.html.tmpl
var receiptTemplate string

// PrintTrigger is appended to print documents.
const PrintTrigger = `<script>window.addEventListener("load",function(){window.focus();window.print();});</script>` + "\n"

const currencySign = "৳"

// dhaka is UTC+6 all year.
var dhaka = time.FixedZone("Asia/Dhaka", 6*60*60)

// Renderer implements ports.ReceiptRenderer. It is safe for concurrent use.
type Renderer struct {
	tmpl     *template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	labels   map[receipt.Language]labels
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse receipt template: %w", err)
	}

	return &Renderer{
		tmpl: tmpl,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
		labels: getLabels(),
	}, nil
}

type lineView struct {
	Name      string
	Quantity  string
	UnitPrice string
	Amount    string
}

type view struct {
	Lang         receipt.Language
	L            labels
	Invoice      string
	Name         string
	Phone        string
	Address      string
	TierTitle    string
	TierDays     string
	Payment      string
	Lines        []lineView
	Subtotal     string
	DeliveryCost string
	Total        string
	Notes        template.HTML
	Date         string
}

// Render produces the document for opts.Sink. The bytes before PrintTrigger
// are identical for every sink.
func (r *Renderer) Render(result *order.Result, opts receipt.Options) (receipt.Document, error) {
	if err := result.Validate(); err != nil {
		return receipt.Document{}, err
	}
	sink, err := receipt.ParseSink(string(opts.Sink))
	if err != nil {
		return receipt.Document{}, err
	}
	lang, err := receipt.ParseLanguage(string(opts.Language))
	if err != nil {
		return receipt.Document{}, err
	}

	body, err := r.render(result, lang)
	if err != nil {
		return receipt.Document{}, err
	}
	if sink == receipt.Print {
		body = append(body, PrintTrigger...)
	}

	return receipt.Document{Invoice: result.Invoice().ID(), Sink: sink, Body: body}, nil
}

func (r *Renderer) render(result *order.Result, lang receipt.Language) ([]byte, error) {
	l, ok := r.labels[lang]
	if !ok {
		return nil, fmt.Errorf("no receipt labels for %q", lang)
	}
	printer := message.NewPrinter(languageTag(lang))

	notes, err := r.renderNotes(result.Notes())
	if err != nil {
		return nil, err
	}

	pricing := result.Pricing()
	v := view{
		Lang:         lang,
		L:            l,
		Invoice:      result.Invoice().ID(),
		Name:         result.Contact().FullName(),
		Phone:        result.Contact().Phone(),
		Address:      result.AddressText(),
		TierTitle:    l.tier(result.ShippingTier()),
		TierDays:     l.days(result.ShippingTier(), lang),
		Payment:      l.payment(result.PaymentMethod()),
		Subtotal:     formatMoney(printer, pricing.Subtotal),
		DeliveryCost: formatMoney(printer, pricing.DeliveryCost),
		Total:        formatMoney(printer, pricing.Total),
		Notes:        notes,
		Date:         localizeDigits(result.Invoice().CreatedAt().In(dhaka).Format("02/01/2006"), lang),
	}
	for _, line := range result.Lines() {
		v.Lines = append(v.Lines, lineView{
			Name:      line.Name(),
			Quantity:  printer.Sprint(number.Decimal(line.Quantity())),
			UnitPrice: formatMoney(printer, line.UnitPrice()),
			Amount:    formatMoney(printer, line.Amount()),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", v.Invoice, err)
	}
	return buf.Bytes(), nil
}

// renderNotes turns buyer notes into sanitized HTML. Markdown is rendered
// without raw HTML passthrough before sanitizing.
func (r *Renderer) renderNotes(notes string) (template.HTML, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(notes), &buf); err != nil {
		return "", errors.Join(errors.New("render notes"), err)
	}
	//nolint:gosec // sanitized by the UGC policy
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// formatMoney prints the whole taka through p for grouping and numerals and
// appends the paisa with trailing zeros dropped. Both parts are integers, so
// no float rounding is involved.
func formatMoney(p *message.Printer, m kernel.Money) string {
	whole := m.Decimal().Truncate(0)
	text := currencySign + p.Sprint(number.Decimal(whole.IntPart()))

	fraction := strings.TrimRight(m.Decimal().Sub(whole).StringFixed(kernel.MoneyScale)[2:], "0")
	if fraction == "" {
		return text
	}
	paisa, err := strconv.Atoi(fraction)
	if err != nil {
		return text + "." + fraction
	}
	return text + "." + p.Sprint(number.Decimal(paisa, number.MinIntegerDigits(len(fraction))))
}

func languageTag(lang receipt.Language) language.Tag {
	if lang == receipt.English {
		return language.English
	}
	return language.Bengali
}
