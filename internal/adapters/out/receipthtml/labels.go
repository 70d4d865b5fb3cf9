package receipthtml

import (
	"fmt"
	"strings"

	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/core/domain/model/shipping"
)

type labels struct {
	DocumentTitle  string
	Title          string
	Subtitle       string
	OrderNumber    string
	DeliveryInfo   string
	Name           string
	Phone          string
	Address        string
	ShippingMethod string
	Method         string
	Duration       string
	PaymentMethod  string
	OrderSummary   string
	Product        string
	Quantity       string
	Price          string
	LineTotal      string
	Subtotal       string
	DeliveryCharge string
	Total          string
	Notes          string
	NextSteps      string
	Steps          []string
	OrderDate      string
	ThankYou       string

	tiers    map[shipping.Tier]string
	daysUnit string
	payments map[payment.Method]string
}

var bengaliDigits = strings.NewReplacer(
	"0", "০", "1", "১", "2", "২", "3", "৩", "4", "৪",
	"5", "৫", "6", "৬", "7", "৭", "8", "৮", "9", "৯",
)

func getLabels() map[receipt.Language]labels {
	return map[receipt.Language]labels{
		receipt.Bengali: {
			DocumentTitle:  "অর্ডার রসিদ",
			Title:          "অর্ডার সফল হয়েছে!",
			Subtitle:       "আপনার অর্ডারটি সফলভাবে প্রক্রিয়া করা হয়েছে",
			OrderNumber:    "অর্ডার নম্বর",
			DeliveryInfo:   "ডেলিভারি তথ্য",
			Name:           "নাম",
			Phone:          "ফোন",
			Address:        "ঠিকানা",
			ShippingMethod: "ডেলিভারি পদ্ধতি",
			Method:         "পদ্ধতি",
			Duration:       "সময়",
			PaymentMethod:  "পেমেন্ট পদ্ধতি",
			OrderSummary:   "অর্ডার সারাংশ",
			Product:        "পণ্য",
			Quantity:       "পরিমাণ",
			Price:          "দাম",
			LineTotal:      "মোট",
			Subtotal:       "সাবটোটাল",
			DeliveryCharge: "ডেলিভারি চার্জ",
			Total:          "মোট",
			Notes:          "বিশেষ নির্দেশনা",
			NextSteps:      "পরবর্তী ধাপ",
			Steps: []string{
				"আমরা শীঘ্রই আপনার সাথে যোগাযোগ করব",
				"অর্ডার প্রস্তুত হলে SMS পাবেন",
				"ডেলিভারি ট্র্যাকিং তথ্য পাবেন",
			},
			OrderDate: "অর্ডার তারিখ",
			ThankYou:  "ধন্যবাদ আমাদের সাথে কেনাকাটা করার জন্য!",
			tiers: map[shipping.Tier]string{
				shipping.NearZone: "ঢাকার ভিতরে",
				shipping.FarZone:  "ঢাকার বাইরে",
			},
			daysUnit: "দিন",
			payments: map[payment.Method]string{
				payment.CashOnDelivery: "ক্যাশ অন ডেলিভারি",
			},
		},
		receipt.English: {
			DocumentTitle:  "Order Receipt",
			Title:          "Order placed successfully!",
			Subtitle:       "Your order has been processed",
			OrderNumber:    "Order number",
			DeliveryInfo:   "Delivery information",
			Name:           "Name",
			Phone:          "Phone",
			Address:        "Address",
			ShippingMethod: "Delivery method",
			Method:         "Method",
			Duration:       "Time",
			PaymentMethod:  "Payment method",
			OrderSummary:   "Order summary",
			Product:        "Product",
			Quantity:       "Quantity",
			Price:          "Price",
			LineTotal:      "Total",
			Subtotal:       "Subtotal",
			DeliveryCharge: "Delivery charge",
			Total:          "Total",
			Notes:          "Special instructions",
			NextSteps:      "Next steps",
			Steps: []string{
				"We will contact you shortly",
				"You will get an SMS when the order is ready",
				"You will receive delivery tracking details",
			},
			OrderDate: "Order date",
			ThankYou:  "Thank you for shopping with us!",
			daysUnit:  "days",
		},
	}
}

func (l labels) tier(t shipping.Tier) string {
	if title, ok := l.tiers[t]; ok {
		return title
	}
	return t.String()
}

func (l labels) payment(m payment.Method) string {
	if title, ok := l.payments[m]; ok {
		return title
	}
	return m.String()
}

func (l labels) days(t shipping.Tier, lang receipt.Language) string {
	lo, hi := t.EstimatedDays()
	return localizeDigits(fmt.Sprintf("%d-%d %s", lo, hi, l.daysUnit), lang)
}

func localizeDigits(s string, lang receipt.Language) string {
	if lang == receipt.Bengali {
		return bengaliDigits.Replace(s)
	}
	return s
}
