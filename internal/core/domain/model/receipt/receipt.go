// Package receipt defines the presentation targets and the document shape of
// an order confirmation. Rendering itself is an adapter concern.
package receipt

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Sink is where a rendered receipt goes.
type Sink string

const (
	// Display is shown inline in the confirmation view.
	Display Sink = "display"
	// Download is saved by the browser as an HTML file.
	Download Sink = "download"
	// Print opens the print dialog once the document has loaded.
	Print Sink = "print"
)

// ParseSink reads a sink name; the empty string means Display.
func ParseSink(s string) (Sink, error) {
	switch Sink(s) {
	case "", Display:
		return Display, nil
	case Download, Print:
		return Sink(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("sink", fmt.Errorf("%q is not one of display, download, print", s))
}

// Language selects the label set of the document.
type Language string

const (
	Bengali Language = "bn"
	English Language = "en"
)

// ParseLanguage reads a language tag; the empty string means Bengali.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case "", Bengali:
		return Bengali, nil
	case English:
		return English, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("lang", fmt.Errorf("%q is not one of bn, en", s))
}

// Options parameterize one rendering.
type Options struct {
	Sink     Sink
	Language Language
}

// ContentType of every receipt document.
const ContentType = "text/html; charset=utf-8"

// Document is a rendered receipt.
type Document struct {
	Invoice string
	Sink    Sink
	Body    []byte
}

// Filename is the download name derived from the invoice: "Order-<invoice>.html".
func (d Document) Filename() string {
	return FilenameFor(d.Invoice)
}

// Disposition is the Content-Disposition header value for the sink.
func (d Document) Disposition() string {
	if d.Sink == Download {
		return fmt.Sprintf("attachment; filename=%q", d.Filename())
	}
	return "inline"
}

// FilenameFor returns the download name of an invoice's receipt.
func FilenameFor(invoice string) string {
	return fmt.Sprintf("Order-%s.html", invoice)
}
