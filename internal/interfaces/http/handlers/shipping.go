// internal/interfaces/http/handlers/shipping.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docesdalu/storefront-backend/internal/domain/checkout"
)

// ShippingHandler handles postal code resolution endpoints
type ShippingHandler struct {
	resolver checkout.PostalResolver
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(resolver checkout.PostalResolver) *ShippingHandler {
	return &ShippingHandler{resolver: resolver}
}

// resolveRequest represents a postal code resolution request
type resolveRequest struct {
	PostalCode string `json:"postal_code" binding:"required"`
}

// Resolve handles POST /shipping/resolve. A failed lookup is reported
// as a user-visible message; pricing keeps the shipping cost
// unresolved and the shopper may resubmit.
func (h *ShippingHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resolution, err := h.resolver.Resolve(c.Request.Context(), req.PostalCode)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Não foi possível verificar o CEP. Tente novamente.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Postal code resolved successfully",
		"data":    resolution,
	})
}
