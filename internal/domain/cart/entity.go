// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem represents one product option in the cart. Quantity is
// always >= 1; removal is a distinct explicit action, never a side
// effect of a quantity update.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	OptionLabel string          `json:"option_label"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	ImageRef    string          `json:"image_ref"`
	AddedAt     time.Time       `json:"added_at"`
}

// LineTotal returns unit price times quantity
func (li *LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// SessionCart represents one shopper's cart, stored as a single JSON
// value in Redis under the session key
type SessionCart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewSessionCart returns an empty cart for the given session
func NewSessionCart(sessionID string) *SessionCart {
	now := time.Now().UTC()
	return &SessionCart{
		SessionID: sessionID,
		Items:     []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges the quantity into an existing line matching on
// (ProductID, OptionLabel), or appends a new line
func (sc *SessionCart) AddItem(item LineItem) {
	for i := range sc.Items {
		if sc.Items[i].ProductID == item.ProductID && sc.Items[i].OptionLabel == item.OptionLabel {
			sc.Items[i].Quantity += item.Quantity
			sc.Items[i].UnitPrice = item.UnitPrice // refresh in case the price changed
			sc.UpdatedAt = time.Now().UTC()
			return
		}
	}

	item.AddedAt = time.Now().UTC()
	sc.Items = append(sc.Items, item)
	sc.UpdatedAt = item.AddedAt
}

// SetQuantity overwrites the quantity of the line at index. Quantities
// below 1 are rejected as a no-op unless removeOnZero is set, in which
// case exactly zero removes the line. Returns whether the cart changed.
func (sc *SessionCart) SetQuantity(index, quantity int, removeOnZero bool) bool {
	if index < 0 || index >= len(sc.Items) {
		return false
	}

	if quantity < 1 {
		if removeOnZero && quantity == 0 {
			return sc.RemoveItem(index)
		}
		return false
	}

	sc.Items[index].Quantity = quantity
	sc.UpdatedAt = time.Now().UTC()
	return true
}

// RemoveItem deletes the line at index; indices of subsequent lines
// shift down by one
func (sc *SessionCart) RemoveItem(index int) bool {
	if index < 0 || index >= len(sc.Items) {
		return false
	}

	sc.Items = append(sc.Items[:index], sc.Items[index+1:]...)
	sc.UpdatedAt = time.Now().UTC()
	return true
}

// Clear empties the cart
func (sc *SessionCart) Clear() {
	sc.Items = []LineItem{}
	sc.UpdatedAt = time.Now().UTC()
}

// IsEmpty reports whether the cart has no lines
func (sc *SessionCart) IsEmpty() bool {
	return len(sc.Items) == 0
}

// ItemCount returns the total quantity across lines. Always derived
// from the items, never tracked as a separate counter.
func (sc *SessionCart) ItemCount() int {
	count := 0
	for _, item := range sc.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the sum of line totals
func (sc *SessionCart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for i := range sc.Items {
		subtotal = subtotal.Add(sc.Items[i].LineTotal())
	}
	return subtotal
}
