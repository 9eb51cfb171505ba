package controllers

import (
	"net/http"

	"storefront/apperrors"
	"storefront/cart"
	"storefront/logger"
	"storefront/models"
	"storefront/response"
	"storefront/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// CartController handles cart-related requests
type CartController struct {
	carts    cart.Store
	products *services.ProductService
}

// NewCartController creates a new CartController
func NewCartController(carts cart.Store, products *services.ProductService) *CartController {
	return &CartController{carts: carts, products: products}
}

type addItemRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type quantityRequest struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

func writeCart(w http.ResponseWriter, c *models.Cart) {
	response.OK(w, response.M{
		"cart":   c,
		"totals": cart.Totals(c),
		"count":  cart.Count(c),
	})
}

// GetCart returns the cart with its totals
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	c, err := cc.carts.Get(ctx, mux.Vars(r)["cartId"])
	if err != nil {
		response.FromError(w, apperrors.Backend("Failed to load cart", err))
		return
	}
	writeCart(w, c)
}

// AddToCart adds a catalog product to the cart at its current price
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}
	if req.ProductID <= 0 {
		response.FromError(w, apperrors.Validation("Product ID is required"))
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	product, err := cc.products.Get(ctx, req.ProductID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if product.Status == models.ProductInactive {
		response.FromError(w, apperrors.Validation("Product is not available"))
		return
	}

	c, err := cc.carts.Get(ctx, mux.Vars(r)["cartId"])
	if err != nil {
		response.FromError(w, apperrors.Backend("Failed to load cart", err))
		return
	}
	item := models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Image:     product.Image,
	}
	if err := cart.Add(c, item); err != nil {
		response.FromError(w, err)
		return
	}
	if n := quantityOf(c, product.ID); n > product.Stock {
		response.FromError(w, apperrors.Validationf("Only %d of %s left in stock", product.Stock, product.Name))
		return
	}
	cc.save(w, r, c)
}

// UpdateCartItem sets the quantity of a line; zero removes it
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(mux.Vars(r)["productId"], "product ID")
	if err != nil {
		response.FromError(w, err)
		return
	}
	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	c, err := cc.carts.Get(ctx, mux.Vars(r)["cartId"])
	if err != nil {
		response.FromError(w, apperrors.Backend("Failed to load cart", err))
		return
	}
	if err := cart.SetQuantity(c, productID, req.Size, req.Quantity); err != nil {
		response.FromError(w, err)
		return
	}
	if req.Quantity > 0 {
		product, err := cc.products.Get(ctx, productID)
		if err != nil {
			response.FromError(w, err)
			return
		}
		if n := quantityOf(c, product.ID); n > product.Stock {
			response.FromError(w, apperrors.Validationf("Only %d of %s left in stock", product.Stock, product.Name))
			return
		}
	}
	cc.save(w, r, c)
}

// RemoveFromCart drops a line, selected by product and ?size=
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(mux.Vars(r)["productId"], "product ID")
	if err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	c, err := cc.carts.Get(ctx, mux.Vars(r)["cartId"])
	if err != nil {
		response.FromError(w, apperrors.Backend("Failed to load cart", err))
		return
	}
	if err := cart.Remove(c, productID, r.URL.Query().Get("size")); err != nil {
		response.FromError(w, err)
		return
	}
	cc.save(w, r, c)
}

// ClearCart deletes the cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	id := mux.Vars(r)["cartId"]
	if err := cc.carts.Delete(ctx, id); err != nil {
		response.FromError(w, apperrors.Backend("Failed to clear cart", err))
		return
	}
	writeCart(w, cart.New(id))
}

func (cc *CartController) save(w http.ResponseWriter, r *http.Request, c *models.Cart) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := cc.carts.Save(ctx, c); err != nil {
		logger.Error(ctx, "Failed to save cart", err, zap.String("cart_id", c.ID))
		response.FromError(w, apperrors.Backend("Failed to save cart", err))
		return
	}
	writeCart(w, c)
}

func quantityOf(c *models.Cart, productID int) int {
	n := 0
	for _, item := range c.Items {
		if item.ProductID == productID {
			n += item.Quantity
		}
	}
	return n
}
