package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/service"
	"rentio-backend/internal/utils"

	"github.com/gorilla/mux"
)

// RentalHandler exposes the booking and rental lifecycle endpoints
type RentalHandler struct {
	bookings service.BookingService
	rentals  service.RentalService
}

func NewRentalHandler(bookings service.BookingService, rentals service.RentalService) *RentalHandler {
	return &RentalHandler{
		bookings: bookings,
		rentals:  rentals,
	}
}

type createRentalRequest struct {
	ProductID string `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

// HandleCreateRental books a product for the authenticated user
func (h *RentalHandler) HandleCreateRental(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.bookings.CreateRental(r.Context(), service.CreateRentalInput{
		UserID:    claims.UserID,
		UserName:  claims.Name,
		UserEmail: claims.Email,
		ProductID: req.ProductID,
		StartDate: start,
		EndDate:   end,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rental)
}

// HandleListRentals lists rentals. Non-admin callers only see their own.
func (h *RentalHandler) HandleListRentals(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	q := r.URL.Query()

	in := service.ListRentalsInput{
		UserID:   q.Get("user_id"),
		Status:   domain.RentalStatus(q.Get("status")),
		Search:   q.Get("search"),
		Page:     parseInt32(q.Get("page")),
		PageSize: parseInt32(q.Get("page_size")),
	}
	if !claims.Admin {
		in.UserID = claims.UserID
	}
	if in.Status != "" && !in.Status.Valid() {
		writeBadRequest(w, "unknown status filter")
		return
	}

	page, err := h.rentals.List(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// HandleGetActiveRental returns the caller's single active rental
func (h *RentalHandler) HandleGetActiveRental(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	rental, err := h.rentals.GetActiveRental(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

// HandleGetRental returns one rental, visible to its owner or an admin
func (h *RentalHandler) HandleGetRental(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	id := mux.Vars(r)["id"]

	rental, err := h.rentals.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !claims.Admin && rental.UserID != claims.UserID {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrRentalNotFound.Error()})
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

type transitionRequest struct {
	Status string `json:"status"`
}

// HandleTransition moves a rental through its lifecycle. Admins may
// request any transition; owners may only cancel their own rental.
func (h *RentalHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	id := mux.Vars(r)["id"]

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	target := domain.RentalStatus(req.Status)
	if !target.Valid() {
		writeBadRequest(w, "unknown status")
		return
	}

	if !claims.Admin {
		if target != domain.RentalStatusCancelled {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
			return
		}
		current, err := h.rentals.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if current.UserID != claims.UserID {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrRentalNotFound.Error()})
			return
		}
	}

	rental, err := h.rentals.Transition(r.Context(), id, target)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

func parseInt32(s string) int32 {
	n, _ := strconv.ParseInt(s, 10, 32)
	return int32(n)
}
