// internal/domain/pricing/rules.go
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docesdalu/storefront-backend/internal/config"
)

// EffectKind identifies the pricing effect a rule or coupon applies
type EffectKind string

const (
	EffectPercentDiscount EffectKind = "percent_discount"
	EffectFlatDiscount    EffectKind = "flat_discount"
	EffectFreeShipping    EffectKind = "free_shipping"
	EffectBonusItem       EffectKind = "bonus_item"
)

// Rule is a threshold-triggered pricing effect. Rules are static,
// defined at build time, and evaluated against the pre-discount
// subtotal so a discount can never unlock further discounts.
type Rule struct {
	Code      string
	Label     string
	Threshold decimal.Decimal
	Effect    EffectKind
	// Value is a percentage for percent effects, an amount for flat
	// effects, and unused otherwise
	Value decimal.Decimal
}

// Applies reports whether the rule's threshold is met
func (r *Rule) Applies(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(r.Threshold)
}

// Coupon is a manually entered code paired with an effect
type Coupon struct {
	Code   string
	Label  string
	Effect EffectKind
	Value  decimal.Decimal
}

// RuleSet holds the shop's promotion rules and coupon table
type RuleSet struct {
	Rules   []Rule
	coupons map[string]Coupon
}

// NewRuleSet builds a rule set; coupon codes are matched
// case-insensitively
func NewRuleSet(rules []Rule, coupons []Coupon) *RuleSet {
	rs := &RuleSet{
		Rules:   rules,
		coupons: make(map[string]Coupon, len(coupons)),
	}
	for _, c := range coupons {
		rs.coupons[strings.ToUpper(c.Code)] = c
	}
	return rs
}

// LookupCoupon resolves a coupon code, ignoring case and surrounding
// whitespace
func (rs *RuleSet) LookupCoupon(code string) (Coupon, bool) {
	c, ok := rs.coupons[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// DefaultRuleSet builds the shop's standing promotions from config:
// free shipping and the chocolate-challenge bonus, both unlocked by
// subtotal thresholds, plus the DESCONTO10 coupon.
func DefaultRuleSet(cfg *config.Config) (*RuleSet, error) {
	freeShippingMin, err := decimal.NewFromString(cfg.Shop.FreeShippingMinimum)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_FREE_SHIPPING_MINIMUM: %w", err)
	}

	bonusMin, err := decimal.NewFromString(cfg.Shop.BonusPromoMinimum)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_BONUS_PROMO_MINIMUM: %w", err)
	}

	rules := []Rule{
		{
			Code:      "frete-gratis",
			Label:     "Frete grátis",
			Threshold: freeShippingMin,
			Effect:    EffectFreeShipping,
		},
		{
			Code:      "desafio-chocolate",
			Label:     "Desafio do Chocolate: cupom especial",
			Threshold: bonusMin,
			Effect:    EffectBonusItem,
		},
	}

	coupons := []Coupon{
		{
			Code:   "DESCONTO10",
			Label:  "10% de desconto",
			Effect: EffectPercentDiscount,
			Value:  decimal.NewFromInt(10),
		},
	}

	return NewRuleSet(rules, coupons), nil
}
