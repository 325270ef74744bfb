package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/server/http/dto"
)

// PurchaseHandler exposes the purchase verification query consulted by the
// review subsystem before accepting a review.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler constructs PurchaseHandler.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// Check handles GET /api/purchases/:productID.
func (h *PurchaseHandler) Check(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		// An unparseable id cannot reference an existing product.
		c.JSON(http.StatusOK, dto.PurchaseResponse{Purchased: false})
		return
	}

	purchased, err := h.facade.HasPurchased(c.Request.Context(), CurrentUserID(c), productID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.PurchaseResponse{Purchased: purchased})
}
