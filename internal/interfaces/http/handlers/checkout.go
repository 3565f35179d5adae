// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docesdalu/storefront-backend/internal/domain/checkout"
	"github.com/docesdalu/storefront-backend/internal/domain/pricing"
	"github.com/docesdalu/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetSummary handles GET /cart/summary. Query parameters choose the
// fulfillment method, postal code and coupon so the review page can
// reprice on every change.
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	method := pricing.FulfillmentMethod(c.DefaultQuery("method", string(pricing.FulfillmentPickup)))
	if method != pricing.FulfillmentPickup && method != pricing.FulfillmentDelivery {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown fulfillment method",
		})
		return
	}

	fulfillment := checkout.Fulfillment{
		Method:     method,
		PostalCode: c.Query("postal_code"),
	}

	summary, err := h.checkoutService.Summarize(c.Request.Context(), sessionID, fulfillment, c.Query("coupon"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build cart summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart summary retrieved successfully",
		"data":    summary,
	})
}

// DispatchWhatsApp handles POST /checkout/whatsapp
func (h *CheckoutHandler) DispatchWhatsApp(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	handoff, refusal, err := h.checkoutService.DispatchWhatsApp(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to dispatch checkout",
		})
		return
	}

	if refusal != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Checkout refused",
			"data":  refusal,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout dispatched successfully",
		"data":    handoff,
	})
}

// StartPayment handles POST /checkout/payment
func (h *CheckoutHandler) StartPayment(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	handoff, refusal, err := h.checkoutService.StartPayment(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start payment",
		})
		return
	}

	if refusal != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Checkout refused",
			"data":  refusal,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment started successfully",
		"data":    handoff,
	})
}
