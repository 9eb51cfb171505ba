package controllers

import (
	"net/http"

	"storefront/checkout"
	"storefront/response"
	"storefront/utils"
)

// CheckoutController turns server-side carts into orders
type CheckoutController struct {
	checkout  *checkout.Service
	trackPage string
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(svc *checkout.Service, trackPage string) *CheckoutController {
	return &CheckoutController{checkout: svc, trackPage: trackPage}
}

type checkoutRequest struct {
	CartID   string                `json:"cartId"`
	Shipping checkout.ShippingInfo `json:"shipping"`
}

// PlaceOrder checks out the cart named in the body
func (cc *CheckoutController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	order, err := cc.checkout.PlaceOrder(ctx, req.CartID, req.Shipping)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, response.M{
		"order":       order,
		"trackingUrl": utils.TrackingURL(cc.trackPage, order),
	})
}
