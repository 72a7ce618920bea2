package store

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const currency = "ريال"

// FormatPrice renders an amount with thousands separators and the riyal
// suffix, e.g. "1,250 ريال". At most three decimals are kept and trailing
// zeros are dropped. The amount never passes through a float.
func FormatPrice(amount decimal.Decimal) string {
	rounded := amount.Round(3)
	abs := rounded.Abs()
	out := humanize.Comma(abs.IntPart())
	if frac := strings.TrimRight(abs.Sub(abs.Truncate(0)).StringFixed(3), "0"); frac != "0." {
		out += strings.TrimPrefix(frac, "0")
	}
	if rounded.IsNegative() {
		out = "-" + out
	}
	return out + " " + currency
}

// OrderSummary is the plain-text order message for a cart, or "" when the
// cart is empty.
func OrderSummary(cart []CartItem) string {
	if len(cart) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("🌸 *طلب جديد من ياسمين الشام* 🌸\n\n")
	b.WriteString("📋 *تفاصيل الطلب:*\n")

	for i, item := range cart {
		fmt.Fprintf(&b, "\n%d. *%s*\n", i+1, item.Name)
		fmt.Fprintf(&b, "   💰 السعر: %s\n", FormatPrice(item.Price))
		fmt.Fprintf(&b, "   📦 الكمية: %d\n", item.Quantity)
		if item.SelectedSize != "" {
			fmt.Fprintf(&b, "   📏 المقاس: %s\n", item.SelectedSize)
		}
		if item.SelectedColor != "" {
			fmt.Fprintf(&b, "   🎨 اللون: %s\n", item.SelectedColor)
		}
		fmt.Fprintf(&b, "   💵 المجموع الفرعي: %s\n", FormatPrice(item.Subtotal()))
	}

	fmt.Fprintf(&b, "\n💰 *إجمالي الطلب: %s*\n\n", FormatPrice(cartTotal(cart)))
	b.WriteString("📞 يرجى التواصل معي لتأكيد الطلب وترتيب التسليم.\n")
	b.WriteString("🙏 شكراً لكم")
	return b.String()
}

// OrderMessage is OrderSummary escaped for use as a URL query value.
func OrderMessage(cart []CartItem) string {
	return escapeComponent(OrderSummary(cart))
}

// WhatsAppLink builds a wa.me link that opens a chat with number prefilled
// with the escaped message. Non-digits in number are dropped.
func WhatsAppLink(number, escapedMessage string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	link := "https://wa.me/" + digits
	if escapedMessage != "" {
		link += "?text=" + escapedMessage
	}
	return link
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent escapes like encodeURIComponent: spaces become %20 and
// the marks ! ' ( ) * stay literal.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
