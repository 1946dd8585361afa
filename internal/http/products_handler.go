package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/go-chi/chi/v5"
)

// maxProductFormSize bounds admin product uploads (image included).
const maxProductFormSize = 10 << 20

// ProductsAPI is the slice of the backend client the catalog routes need.
type ProductsAPI interface {
	Products(ctx context.Context) ([]backend.Product, error)
	Product(ctx context.Context, id int64) (*backend.Product, error)
	CreateProduct(ctx context.Context, form backend.ProductForm) (*backend.Product, error)
	UpdateProduct(ctx context.Context, id int64, form backend.ProductForm) (*backend.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ProductsHandler struct {
	api ProductsAPI
}

func NewProductsHandler(api ProductsAPI) *ProductsHandler {
	return &ProductsHandler{api: api}
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.Products(r.Context())
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	product, err := h.api.Product(r.Context(), id)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Create forwards the admin's multipart product form, image and all, to
// the backend.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := parseProductForm(w, r)
	if !ok {
		return
	}
	product, err := h.api.CreateProduct(r.Context(), form)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	form, ok := parseProductForm(w, r)
	if !ok {
		return
	}
	product, err := h.api.UpdateProduct(r.Context(), id, form)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.api.DeleteProduct(r.Context(), id); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func parseProductForm(w http.ResponseWriter, r *http.Request) (backend.ProductForm, bool) {
	if err := r.ParseMultipartForm(maxProductFormSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "expected multipart form data")
		return backend.ProductForm{}, false
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative number")
		return backend.ProductForm{}, false
	}
	stock := 0
	if v := r.FormValue("stock"); v != "" {
		stock, err = strconv.Atoi(v)
		if err != nil || stock < 0 {
			respondError(w, http.StatusBadRequest, "invalid_stock", "stock must be a non-negative integer")
			return backend.ProductForm{}, false
		}
	}

	form := backend.ProductForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Size:        r.FormValue("size"),
		Color:       r.FormValue("color"),
		Stock:       stock,
	}
	if form.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return backend.ProductForm{}, false
	}

	if file, header, errFile := r.FormFile("image"); errFile == nil {
		form.Image = file
		form.ImageName = header.Filename
	}
	return form, true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
