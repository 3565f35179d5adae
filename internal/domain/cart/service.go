// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/docesdalu/storefront-backend/internal/config"
	"github.com/docesdalu/storefront-backend/internal/domain/catalog"
)

// Service handles cart business logic. The cart is the only persisted
// entity: one JSON value per session, rewritten after every mutation.
type Service struct {
	redisClient *redis.Client
	catalog     *catalog.Catalog
	config      *config.Config
	logger      *logrus.Logger
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, cat *catalog.Catalog, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		redisClient: redisClient,
		catalog:     cat,
		config:      cfg,
		logger:      logger,
	}
}

// AddItemRequest represents an add to cart request
type AddItemRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	OptionName string `json:"option_name" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a quantity update for a cart line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Get retrieves the cart for a session, returning an empty cart when
// none exists. A corrupted stored cart is discarded, not surfaced.
func (s *Service) Get(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	data, err := s.redisClient.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return NewSessionCart(sessionID), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(data), &sessionCart); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Discarding corrupted cart")
		return NewSessionCart(sessionID), nil
	}

	return &sessionCart, nil
}

// AddItem resolves the product option against the catalog and merges
// it into the cart
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*SessionCart, error) {
	product, option, err := s.catalog.FindOption(req.ProductID, req.OptionName)
	if err != nil {
		return nil, err
	}

	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	sessionCart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sessionCart.AddItem(LineItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		OptionLabel: option.Name,
		UnitPrice:   option.UnitPrice,
		Quantity:    req.Quantity,
		ImageRef:    product.ImageRef,
	})

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}

	return sessionCart, nil
}

// SetQuantity overwrites the quantity of the line at index. Quantities
// below 1 leave the cart untouched (no-op, not an error) unless the
// remove-on-zero flag is configured.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, index, quantity int) (*SessionCart, error) {
	sessionCart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(sessionCart.Items) {
		return nil, fmt.Errorf("no cart item at index %d", index)
	}

	if sessionCart.SetQuantity(index, quantity, s.config.Cart.RemoveOnZero) {
		if err := s.save(ctx, sessionCart); err != nil {
			return nil, err
		}
	}

	return sessionCart, nil
}

// RemoveItem deletes the line at index
func (s *Service) RemoveItem(ctx context.Context, sessionID string, index int) (*SessionCart, error) {
	sessionCart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !sessionCart.RemoveItem(index) {
		return nil, fmt.Errorf("no cart item at index %d", index)
	}

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}

	return sessionCart, nil
}

// Clear empties the cart and drops the persisted state
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}
	return s.redisClient.Del(ctx, cartKey(sessionID)).Err()
}

// ItemCount returns the total quantity in the session's cart
func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	sessionCart, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return sessionCart.ItemCount(), nil
}

func (s *Service) save(ctx context.Context, sessionCart *SessionCart) error {
	data, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	err = s.redisClient.Set(ctx, cartKey(sessionCart.SessionID), data, s.config.Cart.SessionTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}
