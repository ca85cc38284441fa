package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/middlewares"
	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

type OrderController struct {
	Lifecycle *services.OrderLifecycle
	Store     *services.OrderStore
}

func NewOrderController(lifecycle *services.OrderLifecycle, store *services.OrderStore) *OrderController {
	return &OrderController{Lifecycle: lifecycle, Store: store}
}

// CreateOrder -> buat order (status='PLACED')
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body services.OrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	order, err := oc.Lifecycle.Place(c.Request.Context(), middlewares.ActorFromContext(c), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// GetOrders lists the caller's own orders. Anonymous callers get an empty list.
func (oc *OrderController) GetOrders(c *gin.Context) {
	actor := middlewares.ActorFromContext(c)

	status, ok := queryStatus(c)
	if !ok {
		return
	}

	orders := []models.Order{}
	if !actor.Anonymous() {
		var err error
		orders, err = oc.Store.ListForUser(c.Request.Context(), actor.UserID, status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetAllOrders -> admin view with optional status and user_id filters
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status, ok := queryStatus(c)
	if !ok {
		return
	}

	var userID *uint
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondBadRequest(c, &services.Error{Kind: services.KindValidation, Message: "invalid user_id"})
			return
		}
		uid := uint(id)
		userID = &uid
	}

	orders, err := oc.Store.ListAll(c.Request.Context(), middlewares.ActorFromContext(c), status, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of all orders", gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Lifecycle.Get(c.Request.Context(), middlewares.ActorFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> PATCH /orders/:order_id/status {"status": "..."}
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(body.Status)))
	order, err := oc.Lifecycle.Advance(c.Request.Context(), middlewares.ActorFromContext(c), id, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated successfully", order)
}

// CancelOrder -> DELETE /orders/:order_id, orders are never removed
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Lifecycle.Cancel(c.Request.Context(), middlewares.ActorFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled successfully", order)
}

func queryStatus(c *gin.Context) (*models.OrderStatus, bool) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return nil, true
	}
	status := models.OrderStatus(strings.ToUpper(raw))
	if !status.Valid() {
		respondServiceError(c, services.ErrInvalidStatus)
		return nil, false
	}
	return &status, true
}
