package controllers

import (
	"net/http"

	"storefront/models"
	"storefront/response"
	"storefront/services"

	"github.com/gorilla/mux"
)

// ProductController handles product-related requests
type ProductController struct {
	products *services.ProductService
}

// NewProductController creates a new ProductController
func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// GetProducts lists the catalog, optionally by ?category=
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	products, err := pc.products.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"products": products, "total": len(products)})
}

// GetProductByID returns one product
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"], "product ID")
	if err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	product, err := pc.products.Get(ctx, id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"product": product})
}

// AdminGetProducts lists every product for the dashboard
func (pc *ProductController) AdminGetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	products, err := pc.products.List(ctx, "")
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"products": products})
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	product, err := pc.products.Create(ctx, input)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, response.M{"message": "Product added successfully", "product": product})
}

// UpdateProduct replaces the product named by ?id= (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"), "product ID")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var input models.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	product, err := pc.products.Update(ctx, id, input)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Product updated successfully", "product": product})
}

// DeleteProduct removes the product named by ?id= (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"), "product ID")
	if err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := pc.products.Delete(ctx, id); err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Product deleted successfully"})
}

// GetCategories returns the static category list
func (pc *ProductController) GetCategories(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, models.Categories)
}
