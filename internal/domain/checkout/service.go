// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/docesdalu/storefront-backend/internal/config"
	"github.com/docesdalu/storefront-backend/internal/domain/cart"
	"github.com/docesdalu/storefront-backend/internal/domain/pricing"
	"github.com/docesdalu/storefront-backend/internal/infrastructure/payment"
	"github.com/docesdalu/storefront-backend/internal/infrastructure/shipping"
)

// CartProvider supplies and clears session carts
type CartProvider interface {
	Get(ctx context.Context, sessionID string) (*cart.SessionCart, error)
	Clear(ctx context.Context, sessionID string) error
}

// PostalResolver resolves a postal code to a region and delivery rate
type PostalResolver interface {
	Resolve(ctx context.Context, postalCode string) (*shipping.Resolution, error)
}

// PreferenceCreator creates a payment preference and returns the
// redirect URL
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, items []payment.PreferenceItem, reference string) (string, error)
}

// Service drives the checkout flow: validation, pricing, formatting
// and the final handoff
type Service struct {
	cartService CartProvider
	engine      *pricing.Engine
	formatter   *Formatter
	resolver    PostalResolver
	payments    PreferenceCreator
	config      *config.Config
	logger      *logrus.Logger
}

// NewService creates a checkout service
func NewService(cartService CartProvider, engine *pricing.Engine, formatter *Formatter, resolver PostalResolver, payments PreferenceCreator, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		cartService: cartService,
		engine:      engine,
		formatter:   formatter,
		resolver:    resolver,
		payments:    payments,
		config:      cfg,
		logger:      logger,
	}
}

// Request carries the shopper's finalized choices
type Request struct {
	Fulfillment   Fulfillment   `json:"fulfillment" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	CouponCode    string        `json:"coupon_code"`
	Note          string        `json:"note"`
}

// RefusalKind classifies why checkout was refused
type RefusalKind string

const (
	// RefusalValidation covers empty cart, missing selections and
	// incomplete address; fixed by correcting input
	RefusalValidation RefusalKind = "validation"
	// RefusalLookup covers external lookup failures; fixed by
	// resubmitting
	RefusalLookup RefusalKind = "lookup"
)

// Refusal is a blocked checkout. It is a normal outcome, not an
// error: the cart and breakdown are left untouched and the flow drops
// back to reviewing the cart.
type Refusal struct {
	Kind    RefusalKind `json:"kind"`
	Reasons []string    `json:"reasons"`
	State   State       `json:"state"`
}

// Summary is the priced view of the cart for the review page
type Summary struct {
	Cart            *cart.SessionCart `json:"cart"`
	Breakdown       pricing.Breakdown `json:"breakdown"`
	ShippingMessage string            `json:"shipping_message,omitempty"`
}

// WhatsAppHandoff is the terminal messaging deep link
type WhatsAppHandoff struct {
	URL       string            `json:"url"`
	OrderText string            `json:"order_text"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	State     State             `json:"state"`
}

// PaymentHandoff is the terminal payment redirect
type PaymentHandoff struct {
	RedirectURL string            `json:"redirect_url"`
	Reference   string            `json:"reference"`
	Breakdown   pricing.Breakdown `json:"breakdown"`
	State       State             `json:"state"`
}

// Summarize prices the current cart for display. A failed postal
// lookup leaves the shipping cost pending and surfaces a message; it
// never blocks the summary.
func (s *Service) Summarize(ctx context.Context, sessionID string, fulfillment Fulfillment, couponCode string) (*Summary, error) {
	sessionCart, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	quote, shippingMessage := s.resolveShipping(ctx, fulfillment)

	breakdown := s.engine.Quote(pricing.QuoteInput{
		Items:       sessionCart.Items,
		Fulfillment: fulfillment.Method,
		Shipping:    quote,
		CouponCode:  couponCode,
	})

	return &Summary{
		Cart:            sessionCart,
		Breakdown:       breakdown,
		ShippingMessage: shippingMessage,
	}, nil
}

// DispatchWhatsApp validates the order and builds the messaging deep
// link. On success the session cart is cleared and the flow reaches
// its terminal state.
func (s *Service) DispatchWhatsApp(ctx context.Context, sessionID string, req *Request) (*WhatsAppHandoff, *Refusal, error) {
	sessionCart, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if refusal := s.validate(sessionCart, req); refusal != nil {
		return nil, refusal, nil
	}

	quote := pricing.ShippingQuote{}
	if req.Fulfillment.Method == pricing.FulfillmentDelivery {
		resolution, err := s.resolver.Resolve(ctx, req.Fulfillment.PostalCode)
		if err != nil {
			s.logger.WithError(err).Warn("Postal code lookup failed during checkout")
			return nil, &Refusal{
				Kind:    RefusalLookup,
				Reasons: []string{"Não foi possível verificar o CEP. Tente novamente."},
				State:   StateReviewingCart,
			}, nil
		}
		quote = pricing.ShippingQuote{Cost: resolution.Rate, Resolved: true}
		req.Fulfillment.ResolvedAddress = resolution.Address
	}

	breakdown := s.engine.Quote(pricing.QuoteInput{
		Items:       sessionCart.Items,
		Fulfillment: req.Fulfillment.Method,
		Shipping:    quote,
		CouponCode:  req.CouponCode,
	})

	orderText := s.formatter.OrderText(sessionCart.Items, breakdown, req.Fulfillment, req.PaymentMethod, req.Note)

	state := s.walkToDispatched()

	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		s.logger.WithError(err).Warn("Failed to clear cart after dispatch")
	}

	return &WhatsAppHandoff{
		URL:       s.formatter.WhatsAppURL(orderText),
		OrderText: orderText,
		Breakdown: breakdown,
		State:     state,
	}, nil, nil
}

// StartPayment validates the order and creates a payment preference.
// A provider failure surfaces a generic retryable message.
func (s *Service) StartPayment(ctx context.Context, sessionID string, req *Request) (*PaymentHandoff, *Refusal, error) {
	sessionCart, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if refusal := s.validate(sessionCart, req); refusal != nil {
		return nil, refusal, nil
	}

	quote, _ := s.resolveShipping(ctx, req.Fulfillment)
	if req.Fulfillment.Method == pricing.FulfillmentDelivery && !quote.Resolved {
		return nil, &Refusal{
			Kind:    RefusalLookup,
			Reasons: []string{"Não foi possível verificar o CEP. Tente novamente."},
			State:   StateReviewingCart,
		}, nil
	}

	breakdown := s.engine.Quote(pricing.QuoteInput{
		Items:       sessionCart.Items,
		Fulfillment: req.Fulfillment.Method,
		Shipping:    quote,
		CouponCode:  req.CouponCode,
	})

	reference := uuid.New().String()
	redirectURL, err := s.payments.CreatePreference(ctx, s.formatter.PreferenceItems(sessionCart.Items), reference)
	if err != nil {
		s.logger.WithError(err).Error("Payment preference creation failed")
		return nil, &Refusal{
			Kind:    RefusalLookup,
			Reasons: []string{"O pagamento não pôde ser iniciado. Tente novamente."},
			State:   StateReviewingCart,
		}, nil
	}

	state := s.walkToDispatched()

	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		s.logger.WithError(err).Warn("Failed to clear cart after payment handoff")
	}

	return &PaymentHandoff{
		RedirectURL: redirectURL,
		Reference:   reference,
		Breakdown:   breakdown,
		State:       state,
	}, nil, nil
}

// validate applies the checkout preconditions. Reasons are user-facing
// strings, not faults; the breakdown stays untouched on refusal.
func (s *Service) validate(sessionCart *cart.SessionCart, req *Request) *Refusal {
	var reasons []string

	if sessionCart.IsEmpty() {
		reasons = append(reasons, "Seu carrinho está vazio.")
	}

	if !req.PaymentMethod.Valid() {
		reasons = append(reasons, "Escolha uma forma de pagamento.")
	}

	switch req.Fulfillment.Method {
	case pricing.FulfillmentPickup:
	case pricing.FulfillmentDelivery:
		if req.Fulfillment.PostalCode == "" {
			reasons = append(reasons, "Informe o CEP para entrega.")
		}
		if req.Fulfillment.HouseNumber == "" {
			reasons = append(reasons, "Informe o número da casa para entrega.")
		}
	default:
		reasons = append(reasons, "Escolha entre retirada na loja e entrega.")
	}

	if len(reasons) == 0 {
		return nil
	}

	return &Refusal{
		Kind:    RefusalValidation,
		Reasons: reasons,
		State:   StateReviewingCart,
	}
}

func (s *Service) resolveShipping(ctx context.Context, fulfillment Fulfillment) (pricing.ShippingQuote, string) {
	if fulfillment.Method != pricing.FulfillmentDelivery || fulfillment.PostalCode == "" {
		return pricing.ShippingQuote{}, ""
	}

	resolution, err := s.resolver.Resolve(ctx, fulfillment.PostalCode)
	if err != nil {
		return pricing.ShippingQuote{}, "Não foi possível verificar o CEP. Tente novamente."
	}

	return pricing.ShippingQuote{Cost: resolution.Rate, Resolved: true}, ""
}

// walkToDispatched advances the flow through its remaining legal
// transitions once validation has passed
func (s *Service) walkToDispatched() State {
	state := StateReviewingCart
	for _, next := range []State{StateSelectingFulfillment, StateSelectingPayment, StateReady, StateDispatched} {
		if !state.CanTransition(next) {
			// The transition table is static; reaching this means it
			// was edited inconsistently
			panic(fmt.Sprintf("illegal checkout transition %s -> %s", state, next))
		}
		state = next
	}
	return state
}
