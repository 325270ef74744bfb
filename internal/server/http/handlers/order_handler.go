package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
	"github.com/gradovikov/storefront/internal/domain/model"
	"github.com/gradovikov/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade StoreFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade StoreFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed payload"})
		return
	}

	lines := make([]model.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, model.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), userID, lines,
		model.PaymentMethod(req.PaymentMethod), req.Mobile, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder),
			errors.Is(err, domainErrors.ErrInvalidQuantity),
			errors.Is(err, domainErrors.ErrInvalidPaymentMethod),
			errors.Is(err, domainErrors.ErrMissingContact):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrProductNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// ListMine handles GET /api/orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := CurrentUserID(c)
	page, limit := pageParams(c)

	orders, total, err := h.facade.OrdersByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrdersPage(orders, page, limit, total))
}

// ListAll handles GET /api/admin/orders.
func (h *OrderHandler) ListAll(c *gin.Context) {
	page, limit := pageParams(c)

	orders, total, err := h.facade.AllOrders(c.Request.Context(), page, limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrdersPage(orders, page, limit, total))
}

// Get handles GET /api/orders/:orderID.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	if order.UserID != CurrentUserID(c) && !h.isAdmin(c) {
		c.Status(http.StatusForbidden)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateStatus handles PATCH /api/orders/:orderID/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed payload"})
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *OrderHandler) isAdmin(c *gin.Context) bool {
	role, err := h.facade.UserRole(c.Request.Context(), CurrentUserID(c))
	return err == nil && role == model.RoleAdmin
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return dto.OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Lines:         lines,
		Total:         order.Total,
		Status:        string(order.Status),
		PaymentMethod: string(order.PaymentMethod),
		Mobile:        order.Mobile,
		Address:       order.Address,
		CreatedAt:     order.CreatedAt,
	}
}

func toOrdersPage(orders []model.Order, page, limit int, total int64) dto.OrdersPageResponse {
	data := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		data = append(data, toOrderResponse(o))
	}
	return dto.OrdersPageResponse{
		Data: data,
		Meta: dto.PageMeta{Page: page, Limit: limit, Total: total},
	}
}
