// internal/domain/pricing/engine.go
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/docesdalu/storefront-backend/internal/domain/cart"
)

// FulfillmentMethod is how the order reaches the shopper
type FulfillmentMethod string

const (
	FulfillmentPickup   FulfillmentMethod = "pickup"
	FulfillmentDelivery FulfillmentMethod = "delivery"
)

// ShippingQuote is the regional delivery rate resolved from a postal
// code lookup. Resolved is false while no lookup has completed;
// pricing then reports shipping as pending instead of assuming zero.
type ShippingQuote struct {
	Cost     decimal.Decimal
	Resolved bool
}

// QuoteInput carries everything the engine needs for one evaluation
type QuoteInput struct {
	Items       []cart.LineItem
	Fulfillment FulfillmentMethod
	Shipping    ShippingQuote
	CouponCode  string
}

// ActivePromotion describes a promotion unlocked by the current cart
type ActivePromotion struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Breakdown is the priced view of a cart. Amounts carry full decimal
// precision; rounding to two places happens only at formatting time.
type Breakdown struct {
	Subtotal        decimal.Decimal   `json:"subtotal"`
	ShippingCost    decimal.Decimal   `json:"shipping_cost"`
	ShippingPending bool              `json:"shipping_pending"`
	Discount        decimal.Decimal   `json:"discount"`
	Total           decimal.Decimal   `json:"total"`
	Promotions      []ActivePromotion `json:"promotions"`
	CouponApplied   bool              `json:"coupon_applied"`
	CouponMessage   string            `json:"coupon_message,omitempty"`
}

// Engine computes price breakdowns. It is a pure function of its
// inputs: no state is kept between evaluations.
type Engine struct {
	rules *RuleSet
}

// NewEngine creates a pricing engine over the given rule set
func NewEngine(rules *RuleSet) *Engine {
	return &Engine{rules: rules}
}

// Quote evaluates the cart against the promotion rules and coupon
// table. All threshold checks run against the pre-discount subtotal.
// Percentage discounts from any source never stack: the highest single
// percentage wins. Flat discounts likewise take the highest of their
// category, and the two categories stack with each other and with free
// shipping.
func (e *Engine) Quote(in QuoteInput) Breakdown {
	b := Breakdown{
		Subtotal:   subtotal(in.Items),
		Promotions: []ActivePromotion{},
	}

	bestPercent := decimal.Zero
	bestFlat := decimal.Zero
	freeShipping := false

	for _, rule := range e.rules.Rules {
		if !rule.Applies(b.Subtotal) {
			continue
		}

		switch rule.Effect {
		case EffectPercentDiscount:
			if rule.Value.GreaterThan(bestPercent) {
				bestPercent = rule.Value
			}
		case EffectFlatDiscount:
			if rule.Value.GreaterThan(bestFlat) {
				bestFlat = rule.Value
			}
		case EffectFreeShipping:
			freeShipping = true
		case EffectBonusItem:
			// contributes nothing to the total, only the message
		}

		b.Promotions = append(b.Promotions, ActivePromotion{Code: rule.Code, Label: rule.Label})
	}

	if in.CouponCode != "" {
		coupon, ok := e.rules.LookupCoupon(in.CouponCode)
		if !ok {
			// Normal negative path, not a failure: no effect, message only
			b.CouponMessage = "Cupom inválido. Tente novamente."
		} else {
			b.CouponApplied = true
			b.CouponMessage = "Cupom aplicado: " + coupon.Label + "!"
			switch coupon.Effect {
			case EffectPercentDiscount:
				if coupon.Value.GreaterThan(bestPercent) {
					bestPercent = coupon.Value
				}
			case EffectFlatDiscount:
				if coupon.Value.GreaterThan(bestFlat) {
					bestFlat = coupon.Value
				}
			case EffectFreeShipping:
				freeShipping = true
			}
		}
	}

	percentAmount := b.Subtotal.Mul(bestPercent).Div(decimal.NewFromInt(100))
	b.Discount = percentAmount.Add(bestFlat)
	if b.Discount.GreaterThan(b.Subtotal) {
		b.Discount = b.Subtotal
	}

	switch {
	case in.Fulfillment != FulfillmentDelivery:
		b.ShippingCost = decimal.Zero
	case freeShipping:
		// Forced to zero even when a lookup already returned a quote
		b.ShippingCost = decimal.Zero
	case in.Shipping.Resolved:
		b.ShippingCost = in.Shipping.Cost
	default:
		b.ShippingCost = decimal.Zero
		b.ShippingPending = true
	}

	b.Total = b.Subtotal.Sub(b.Discount).Add(b.ShippingCost)
	if b.Total.IsNegative() {
		b.Total = decimal.Zero
	}

	return b
}

// subtotal sums line totals; permuting the items cannot change the
// result
func subtotal(items []cart.LineItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}
	return total
}
