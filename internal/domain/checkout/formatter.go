// internal/domain/checkout/formatter.go
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/docesdalu/storefront-backend/internal/domain/cart"
	"github.com/docesdalu/storefront-backend/internal/domain/pricing"
	"github.com/docesdalu/storefront-backend/internal/infrastructure/payment"
)

// Formatter turns a finalized order into the two handoff shapes: a
// percent-encoded text summary for the messaging deep link, and a
// structured line-item array for the payment preference request.
type Formatter struct {
	whatsappNumber string
	currencyCode   string
}

// NewFormatter creates a checkout formatter
func NewFormatter(whatsappNumber, currencyCode string) *Formatter {
	return &Formatter{
		whatsappNumber: whatsappNumber,
		currencyCode:   currencyCode,
	}
}

// OrderText builds the order summary in fixed order: item lines,
// fulfillment, payment method, coupon and promotion lines, grand
// total, optional note. Amounts are rounded to two places here and
// nowhere earlier.
func (f *Formatter) OrderText(items []cart.LineItem, b pricing.Breakdown, fulfillment Fulfillment, method PaymentMethod, note string) string {
	var sb strings.Builder

	sb.WriteString("Olá! Gostaria de finalizar a compra com os seguintes itens:\n")
	for i := range items {
		item := &items[i]
		sb.WriteString(fmt.Sprintf("%dx %s (%s) - %s\n",
			item.Quantity, item.ProductName, item.OptionLabel, f.money(item.LineTotal().StringFixed(2))))
	}

	sb.WriteString("\n")
	sb.WriteString(f.fulfillmentLine(b, fulfillment) + "\n")
	sb.WriteString("Pagamento: " + method.Label() + "\n")

	sb.WriteString("Desconto aplicado: " + f.money(b.Discount.StringFixed(2)) + "\n")
	if b.CouponApplied {
		sb.WriteString(b.CouponMessage + "\n")
	}
	for _, promo := range b.Promotions {
		sb.WriteString("Promoção ativa: " + promo.Label + "\n")
	}

	sb.WriteString("Comentários: " + noteOrNone(note) + "\n")
	sb.WriteString("\nValor Total: " + f.money(b.Total.StringFixed(2)))

	return sb.String()
}

// WhatsAppURL builds the messaging deep link for the given order text
func (f *Formatter) WhatsAppURL(orderText string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", f.whatsappNumber, url.QueryEscape(orderText))
}

// PreferenceItems maps cart lines to the payment provider's line-item
// shape, one entry per line, currency fixed to the shop's
func (f *Formatter) PreferenceItems(items []cart.LineItem) []payment.PreferenceItem {
	out := make([]payment.PreferenceItem, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, payment.PreferenceItem{
			Title:      fmt.Sprintf("%s (%s)", item.ProductName, item.OptionLabel),
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			CurrencyID: f.currencyCode,
		})
	}
	return out
}

func (f *Formatter) fulfillmentLine(b pricing.Breakdown, fulfillment Fulfillment) string {
	if fulfillment.Method != pricing.FulfillmentDelivery {
		return "Entrega: Retirada na loja"
	}

	address := fulfillment.ResolvedAddress
	if fulfillment.HouseNumber != "" {
		address += ", nº " + fulfillment.HouseNumber
	}

	if b.ShippingCost.IsZero() {
		return "Entrega (Grátis) - " + address
	}
	return fmt.Sprintf("Entrega (%s) - %s", f.money(b.ShippingCost.StringFixed(2)), address)
}

func (f *Formatter) money(amount string) string {
	if f.currencyCode == "BRL" {
		return "R$ " + amount
	}
	return f.currencyCode + " " + amount
}

func noteOrNone(note string) string {
	if strings.TrimSpace(note) == "" {
		return "Nenhum"
	}
	return note
}
