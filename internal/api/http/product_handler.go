package http

import (
	"encoding/json"
	"net/http"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/service"

	"github.com/gorilla/mux"
)

// ProductHandler exposes the catalog and inventory endpoints
type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	Stock            int32  `json:"stock"`
	IsRentable       bool   `json:"is_rentable"`
}

type productListResponse struct {
	Items []domain.Product `json:"items"`
	Total int32            `json:"total"`
}

// HandleCreateProduct adds a product to the catalog (admin only)
func (h *ProductHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	product := &domain.Product{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		PricePerDayCents: req.PricePerDayCents,
		Stock:            req.Stock,
		IsRentable:       req.IsRentable,
	}
	if err := h.products.Create(r.Context(), product); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// HandleGetProduct returns one product
func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleListProducts lists the catalog
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, total, err := h.products.List(r.Context(), parseInt32(q.Get("page")), parseInt32(q.Get("page_size")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{Items: items, Total: total})
}

// HandleUpdateProduct updates the descriptive fields (admin only)
func (h *ProductHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	product := &domain.Product{
		ID:               mux.Vars(r)["id"],
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		PricePerDayCents: req.PricePerDayCents,
		IsRentable:       req.IsRentable,
	}
	if err := h.products.Update(r.Context(), product); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

type adjustStockRequest struct {
	Stock int32 `json:"stock"`
}

// HandleAdjustStock sets the total owned stock (admin only)
func (h *ProductHandler) HandleAdjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	product, err := h.products.AdjustStock(r.Context(), mux.Vars(r)["id"], req.Stock)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleReconcileStock audits one product's counters against its
// stock-holding rentals (admin only)
func (h *ProductHandler) HandleReconcileStock(w http.ResponseWriter, r *http.Request) {
	report, err := h.products.Reconcile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

type setRentableRequest struct {
	IsRentable bool `json:"is_rentable"`
}

// HandleSetRentable flips the rentable flag (admin only)
func (h *ProductHandler) HandleSetRentable(w http.ResponseWriter, r *http.Request) {
	var req setRentableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.products.SetRentable(r.Context(), mux.Vars(r)["id"], req.IsRentable); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
