// internal/handlers/orders.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshopx/eshop-backend/internal/services"
	"github.com/eshopx/eshop-backend/internal/utils"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	// An empty collection is a valid result here.
	utils.SuccessResponse(c, orders)
}

// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid order ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Order not found")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, order)
	}
}

// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	order, err := h.orders.Create(c.Request.Context(), &req)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid id in order")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, order)
	}
}

// PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid order ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "order not found")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, order)
	}
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	err := h.orders.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid order ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Order not found")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.MessageResponse(c, "Order and associated items deleted")
	}
}

// GET /orders/get/totalsales
func (h *OrderHandler) TotalSales(c *gin.Context) {
	total, ok, err := h.orders.TotalSales(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	if !ok {
		utils.NotFoundResponse(c, "No sales found")
		return
	}
	utils.SuccessResponse(c, gin.H{"totalsales": total})
}

// GET /orders/get/count
func (h *OrderHandler) Count(c *gin.Context) {
	count, err := h.orders.Count(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Internal server error")
		return
	}
	if count == 0 {
		utils.NotFoundResponse(c, "No orders found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderCount": count})
}

// GET /orders/get/userorders/:userid
func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), c.Param("userid"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid user ID")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, orders)
	}
}
