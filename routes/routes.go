// routes/routes.go
package routes

import (
	"net/http"

	"storefront/controllers"
	"storefront/middleware"
	"storefront/response"

	"github.com/gorilla/mux"
)

// Controllers groups the handlers mounted by RegisterRoutes.
type Controllers struct {
	User     *controllers.UserController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Checkout *controllers.CheckoutController
	Settings *controllers.SettingsController
	Stats    *controllers.StatsController
}

// Options carries the cross-cutting pieces the routes need.
type Options struct {
	Auth         middleware.Authorizer
	LoginLimiter *middleware.RateLimiter
	Metrics      *middleware.Metrics
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, opts Options) {
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")
	}

	authenticate := middleware.AuthMiddleware(opts.Auth)
	admin := func(h http.HandlerFunc) http.Handler {
		return authenticate(middleware.AdminMiddleware(h))
	}
	login := http.Handler(http.HandlerFunc(c.User.Login))
	if opts.LoginLimiter != nil {
		login = opts.LoginLimiter.Middleware(login)
	}

	router.HandleFunc("/healthz", controllers.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	api.Handle("/auth/login", login).Methods("POST")
	api.HandleFunc("/auth/change-password", c.User.ChangePassword).Methods("POST")

	// Product routes
	api.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	api.HandleFunc("/categories", c.Product.GetCategories).Methods("GET")

	// Cart routes
	api.HandleFunc("/cart/{cartId}", c.Cart.GetCart).Methods("GET")
	api.HandleFunc("/cart/{cartId}", c.Cart.ClearCart).Methods("DELETE")
	api.HandleFunc("/cart/{cartId}/items", c.Cart.AddToCart).Methods("POST")
	api.HandleFunc("/cart/{cartId}/items/{productId}", c.Cart.UpdateCartItem).Methods("PUT")
	api.HandleFunc("/cart/{cartId}/items/{productId}", c.Cart.RemoveFromCart).Methods("DELETE")
	api.HandleFunc("/checkout", c.Checkout.PlaceOrder).Methods("POST")

	// Order routes
	api.HandleFunc("/orders/track", c.Order.TrackOrder).Methods("GET")
	api.HandleFunc("/admin/orders", c.Order.CreateOrder).Methods("POST")
	api.HandleFunc("/admin/orders", c.Order.GetOrderByTrackingToken).Methods("GET").Queries("trackingToken", "{trackingToken}")
	api.Handle("/admin/orders", admin(c.Order.GetOrders)).Methods("GET")
	api.Handle("/admin/orders", admin(c.Order.UpdateOrderStatus)).Methods("PUT")
	api.Handle("/admin/orders", admin(c.Order.DeleteOrder)).Methods("DELETE")

	// Admin routes
	api.Handle("/admin/products", admin(c.Product.AdminGetProducts)).Methods("GET")
	api.Handle("/admin/products", admin(c.Product.CreateProduct)).Methods("POST")
	api.Handle("/admin/products", admin(c.Product.UpdateProduct)).Methods("PUT")
	api.Handle("/admin/products", admin(c.Product.DeleteProduct)).Methods("DELETE")
	api.HandleFunc("/admin/settings", c.Settings.GetSettings).Methods("GET")
	api.Handle("/admin/settings", admin(c.Settings.UpdateSettings)).Methods("POST")
	api.Handle("/admin/stats", admin(c.Stats.GetStats)).Methods("GET")
}
