// internal/domain/checkout/entity.go
package checkout

import (
	"github.com/docesdalu/storefront-backend/internal/domain/pricing"
)

// PaymentMethod is how the shopper intends to pay
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentPix  PaymentMethod = "pix"
	PaymentCash PaymentMethod = "cash"
)

// Valid reports whether the payment method is one the shop accepts
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentPix, PaymentCash:
		return true
	}
	return false
}

// Label returns the customer-facing name of the payment method
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCard:
		return "Cartão"
	case PaymentPix:
		return "Pix"
	case PaymentCash:
		return "Dinheiro"
	}
	return string(m)
}

// Fulfillment captures the shopper's delivery choice for one checkout
// session
type Fulfillment struct {
	Method          pricing.FulfillmentMethod `json:"method"`
	PostalCode      string                    `json:"postal_code,omitempty"`
	ResolvedAddress string                    `json:"resolved_address,omitempty"`
	HouseNumber     string                    `json:"house_number,omitempty"`
}

// State is a step of the checkout flow
type State string

const (
	StateBrowsing             State = "browsing"
	StateReviewingCart        State = "reviewing_cart"
	StateSelectingFulfillment State = "selecting_fulfillment"
	StateSelectingPayment     State = "selecting_payment"
	StateReady                State = "ready"
	StateDispatched           State = "dispatched"
)

// transitions lists the legal moves of the checkout flow. Validation
// failure drops back to reviewing_cart; dispatched is terminal and the
// shopper resubmits manually, no automatic retries.
var transitions = map[State][]State{
	StateBrowsing:             {StateReviewingCart},
	StateReviewingCart:        {StateSelectingFulfillment, StateBrowsing},
	StateSelectingFulfillment: {StateSelectingPayment, StateReviewingCart},
	StateSelectingPayment:     {StateReady, StateReviewingCart},
	StateReady:                {StateDispatched, StateReviewingCart},
	StateDispatched:           {},
}

// CanTransition reports whether moving from s to next is legal
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}
