package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesdalu/storefront-backend/internal/domain/cart"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testRuleSet() *RuleSet {
	return NewRuleSet(
		[]Rule{
			{Code: "frete-gratis", Label: "Frete grátis", Threshold: dec("200"), Effect: EffectFreeShipping},
			{Code: "desafio-chocolate", Label: "Desafio do Chocolate", Threshold: dec("300"), Effect: EffectBonusItem},
		},
		[]Coupon{
			{Code: "DESCONTO10", Label: "10% de desconto", Effect: EffectPercentDiscount, Value: dec("10")},
		},
	)
}

func sampleItems() []cart.LineItem {
	return []cart.LineItem{
		{ProductID: "trufas", ProductName: "Trufa", OptionLabel: "Brigadeiro", UnitPrice: dec("4.50"), Quantity: 2},
		{ProductID: "barras", ProductName: "Barra", OptionLabel: "Limão", UnitPrice: dec("18.00"), Quantity: 1},
	}
}

func TestQuote_PickupNoCoupon(t *testing.T) {
	engine := NewEngine(testRuleSet())

	b := engine.Quote(QuoteInput{
		Items:       sampleItems(),
		Fulfillment: FulfillmentPickup,
	})

	assert.True(t, b.Subtotal.Equal(dec("27.00")), "subtotal = %s", b.Subtotal)
	assert.True(t, b.ShippingCost.IsZero())
	assert.True(t, b.Discount.IsZero())
	assert.True(t, b.Total.Equal(dec("27.00")), "total = %s", b.Total)
	assert.False(t, b.ShippingPending)
	assert.Empty(t, b.Promotions)
}

func TestQuote_DeliveryWithResolvedRate(t *testing.T) {
	engine := NewEngine(testRuleSet())

	b := engine.Quote(QuoteInput{
		Items:       sampleItems(),
		Fulfillment: FulfillmentDelivery,
		Shipping:    ShippingQuote{Cost: dec("15.00"), Resolved: true},
	})

	assert.True(t, b.ShippingCost.Equal(dec("15.00")))
	assert.True(t, b.Total.Equal(dec("42.00")), "total = %s", b.Total)
}

func TestQuote_SubtotalOrderIndependent(t *testing.T) {
	engine := NewEngine(testRuleSet())

	items := sampleItems()
	reversed := []cart.LineItem{items[1], items[0]}

	a := engine.Quote(QuoteInput{Items: items, Fulfillment: FulfillmentPickup})
	b := engine.Quote(QuoteInput{Items: reversed, Fulfillment: FulfillmentPickup})

	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.Total.Equal(b.Total))
}

func TestQuote_FreeShippingAtExactThreshold(t *testing.T) {
	engine := NewEngine(testRuleSet())

	// Subtotal lands exactly on the threshold; a nonzero quote from an
	// earlier lookup must still be forced to zero
	items := []cart.LineItem{
		{ProductName: "Barra", OptionLabel: "Morango", UnitPrice: dec("20.00"), Quantity: 10},
	}

	b := engine.Quote(QuoteInput{
		Items:       items,
		Fulfillment: FulfillmentDelivery,
		Shipping:    ShippingQuote{Cost: dec("15.00"), Resolved: true},
	})

	assert.True(t, b.Subtotal.Equal(dec("200.00")))
	assert.True(t, b.ShippingCost.IsZero(), "free shipping must override the resolved quote")
	assert.False(t, b.ShippingPending)
	require.Len(t, b.Promotions, 1)
	assert.Equal(t, "frete-gratis", b.Promotions[0].Code)
}

func TestQuote_BonusPromotionActiveAboveThreshold(t *testing.T) {
	engine := NewEngine(testRuleSet())

	items := []cart.LineItem{
		{ProductName: "Barra", OptionLabel: "Morango", UnitPrice: dec("30.00"), Quantity: 10},
	}

	b := engine.Quote(QuoteInput{Items: items, Fulfillment: FulfillmentPickup})

	assert.True(t, b.Subtotal.Equal(dec("300.00")))

	codes := make([]string, 0, len(b.Promotions))
	for _, p := range b.Promotions {
		codes = append(codes, p.Code)
	}
	assert.Contains(t, codes, "desafio-chocolate")

	// The bonus contributes nothing to the total
	assert.True(t, b.Discount.IsZero())
	assert.True(t, b.Total.Equal(dec("300.00")))
}

func TestQuote_ValidCoupon(t *testing.T) {
	engine := NewEngine(testRuleSet())

	b := engine.Quote(QuoteInput{
		Items:       sampleItems(),
		Fulfillment: FulfillmentPickup,
		CouponCode:  "desconto10",
	})

	assert.True(t, b.CouponApplied)
	assert.True(t, b.Discount.Equal(dec("2.70")), "discount = %s", b.Discount)
	assert.True(t, b.Total.Equal(dec("24.30")), "total = %s", b.Total)
}

func TestQuote_InvalidCouponLeavesDiscountZero(t *testing.T) {
	engine := NewEngine(testRuleSet())

	b := engine.Quote(QuoteInput{
		Items:       sampleItems(),
		Fulfillment: FulfillmentPickup,
		CouponCode:  "NAOEXISTE",
	})

	assert.False(t, b.CouponApplied)
	assert.True(t, b.Discount.IsZero())
	assert.True(t, b.Total.Equal(dec("27.00")))
	assert.NotEmpty(t, b.CouponMessage)
}

func TestQuote_PercentDiscountsTakeMaxNotSum(t *testing.T) {
	rules := NewRuleSet(
		[]Rule{
			{Code: "tier1", Label: "5% off", Threshold: dec("10"), Effect: EffectPercentDiscount, Value: dec("5")},
			{Code: "tier2", Label: "15% off", Threshold: dec("20"), Effect: EffectPercentDiscount, Value: dec("15")},
		},
		[]Coupon{
			{Code: "DESCONTO10", Label: "10% de desconto", Effect: EffectPercentDiscount, Value: dec("10")},
		},
	)
	engine := NewEngine(rules)

	b := engine.Quote(QuoteInput{
		Items:       sampleItems(), // subtotal 27.00, both tiers met
		Fulfillment: FulfillmentPickup,
		CouponCode:  "DESCONTO10",
	})

	// 15% wins over 5% + 10%; never 30%
	assert.True(t, b.Discount.Equal(dec("4.05")), "discount = %s", b.Discount)
}

func TestQuote_FlatDiscountStacksWithPercent(t *testing.T) {
	rules := NewRuleSet(
		[]Rule{
			{Code: "flat", Label: "R$ 5 off", Threshold: dec("20"), Effect: EffectFlatDiscount, Value: dec("5")},
			{Code: "pct", Label: "10% off", Threshold: dec("20"), Effect: EffectPercentDiscount, Value: dec("10")},
		},
		nil,
	)
	engine := NewEngine(rules)

	b := engine.Quote(QuoteInput{Items: sampleItems(), Fulfillment: FulfillmentPickup})

	// 10% of 27.00 plus flat 5.00
	assert.True(t, b.Discount.Equal(dec("7.70")), "discount = %s", b.Discount)
}

func TestQuote_TotalNeverNegative(t *testing.T) {
	rules := NewRuleSet(
		[]Rule{
			{Code: "huge", Label: "R$ 100 off", Threshold: dec("1"), Effect: EffectFlatDiscount, Value: dec("100")},
		},
		nil,
	)
	engine := NewEngine(rules)

	items := []cart.LineItem{
		{ProductName: "Trufa", OptionLabel: "Limão", UnitPrice: dec("1.00"), Quantity: 3},
	}

	b := engine.Quote(QuoteInput{Items: items, Fulfillment: FulfillmentPickup})

	assert.False(t, b.Total.IsNegative())
	assert.True(t, b.Total.IsZero())
	// Discount is capped at the subtotal
	assert.True(t, b.Discount.Equal(dec("3.00")))
}

func TestQuote_DeliveryUnresolvedShippingIsPending(t *testing.T) {
	engine := NewEngine(testRuleSet())

	b := engine.Quote(QuoteInput{
		Items:       sampleItems(),
		Fulfillment: FulfillmentDelivery,
	})

	assert.True(t, b.ShippingPending, "unresolved delivery must be reported as pending, not zero")
	assert.True(t, b.ShippingCost.IsZero())
}

func TestQuote_EmptyCart(t *testing.T) {
	engine := NewEngine(testRuleSet())

	b := engine.Quote(QuoteInput{Fulfillment: FulfillmentPickup})

	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.Total.IsZero())
	assert.Empty(t, b.Promotions)
}

func TestLookupCoupon_CaseAndWhitespaceInsensitive(t *testing.T) {
	rules := testRuleSet()

	for _, code := range []string{"DESCONTO10", "desconto10", "  Desconto10  "} {
		coupon, ok := rules.LookupCoupon(code)
		require.True(t, ok, "code %q should resolve", code)
		assert.Equal(t, "DESCONTO10", coupon.Code)
	}

	_, ok := rules.LookupCoupon("")
	assert.False(t, ok)
}

func TestRule_AppliesAtThreshold(t *testing.T) {
	rule := Rule{Threshold: dec("200"), Effect: EffectFreeShipping}

	assert.False(t, rule.Applies(dec("199.99")))
	assert.True(t, rule.Applies(dec("200")))
	assert.True(t, rule.Applies(dec("200.01")))
}
