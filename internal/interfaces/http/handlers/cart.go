// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docesdalu/storefront-backend/internal/domain/cart"
	"github.com/docesdalu/storefront-backend/internal/domain/pricing"
	"github.com/docesdalu/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	rules       *pricing.RuleSet
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, rules *pricing.RuleSet) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		rules:       rules,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	sessionCart, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    sessionCart,
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sessionCart, err := h.cartService.AddItem(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    sessionCart,
	})
}

// UpdateItem handles PUT /cart/items/:index
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item index",
		})
		return
	}

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sessionCart, err := h.cartService.SetQuantity(c.Request.Context(), sessionID, index, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    sessionCart,
	})
}

// RemoveItem handles DELETE /cart/items/:index
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item index",
		})
		return
	}

	sessionCart, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, index)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    sessionCart,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	count, err := h.cartService.ItemCount(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get cart count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// couponRequest represents a coupon validation request
type couponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon handles POST /cart/coupon. Validating a code never
// mutates the cart; an unknown code is a normal negative outcome.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	coupon, ok := h.rules.LookupCoupon(req.Code)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"message": "Cupom inválido. Tente novamente.",
			"data": gin.H{
				"valid": false,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cupom aplicado: " + coupon.Label + "!",
		"data": gin.H{
			"valid": true,
			"code":  coupon.Code,
			"label": coupon.Label,
		},
	})
}
