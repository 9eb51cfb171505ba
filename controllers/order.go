package controllers

import (
	"net/http"

	"storefront/models"
	"storefront/response"
	"storefront/services"
	"storefront/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	orders    *services.OrderService
	trackPage string
}

// NewOrderController creates a new OrderController. trackPage is the base of
// the public tracking link returned to customers.
func NewOrderController(orders *services.OrderService, trackPage string) *OrderController {
	return &OrderController{orders: orders, trackPage: trackPage}
}

type statusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// CreateOrder stores an order submitted by the storefront
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := decodeJSON(r, &order); err != nil {
		response.FromError(w, err)
		return
	}
	order.ID = 0

	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := oc.orders.Create(ctx, &order); err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{
		"orderId":       order.OrderID,
		"trackingToken": order.TrackingToken,
		"message":       "Order placed successfully. Admin has been notified.",
		"trackingUrl":   utils.TrackingURL(oc.trackPage, &order),
	})
}

// GetOrders lists all orders, or returns one when ?orderId= is given (Admin only)
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	if orderID := r.URL.Query().Get("orderId"); orderID != "" {
		order, err := oc.orders.GetByOrderID(ctx, orderID)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.OK(w, response.M{"order": order})
		return
	}

	list, err := oc.orders.List(ctx)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{
		"orders":        list.Orders,
		"totalOrders":   list.TotalOrders,
		"pendingOrders": list.PendingOrders,
	})
}

// GetOrderByTrackingToken returns the order for ?trackingToken=
func (oc *OrderController) GetOrderByTrackingToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	order, err := oc.orders.GetByTrackingToken(ctx, r.URL.Query().Get("trackingToken"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"order": order})
}

// TrackOrder returns the order for ?orderId=&token=
func (oc *OrderController) TrackOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	query := r.URL.Query()
	order, err := oc.orders.Track(ctx, query.Get("orderId"), query.Get("token"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"order": order})
}

// UpdateOrderStatus allows admin to update an order's status
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	order, err := oc.orders.UpdateStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Order status updated successfully", "order": order})
}

// DeleteOrder removes an order named in the body or by ?orderId= (Admin only)
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.FromError(w, err)
			return
		}
	}
	if req.OrderID == "" {
		req.OrderID = r.URL.Query().Get("orderId")
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	deleted, err := oc.orders.Delete(ctx, req.OrderID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Order deleted successfully", "deletedOrder": deleted})
}
