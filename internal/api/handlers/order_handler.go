package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/services"
	"github.com/yoockh/bookwise/internal/utils"
)

type OrderHandler struct {
	svc services.OrderService
}

func NewOrderHandler(svc services.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// SubmitOrderRequest accepts the reviewed order as either "order" or the
// older "order_data" key.
type SubmitOrderRequest struct {
	RoomID    string        `json:"room_id" binding:"required"`
	Order     *models.Order `json:"order"`
	OrderData *models.Order `json:"order_data"`
}

type SubmitOrderResponse struct {
	Success   bool         `json:"success"`
	OrderID   string       `json:"order_id"`
	Message   string       `json:"message"`
	OrderData models.Order `json:"order_data"`
}

func (h *OrderHandler) Submit(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "OrderHandler.Submit", "invalid request body", err))
		return
	}

	edited := req.Order
	if edited == nil {
		edited = req.OrderData
	}

	o, err := h.svc.Submit(c.Request.Context(), req.RoomID, edited)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SubmitOrderResponse{
		Success:   true,
		OrderID:   o.OrderID,
		Message:   "Order submitted successfully",
		OrderData: *o,
	})
}

func (h *OrderHandler) All(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_orders": len(orders),
		"orders":       orders,
	})
}

func (h *OrderHandler) Events(c *gin.Context) {
	events, err := h.svc.Events(c.Request.Context(), c.Param("room_id"), queryInt(c, "limit", 50))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id": c.Param("room_id"),
		"events":  events,
	})
}
