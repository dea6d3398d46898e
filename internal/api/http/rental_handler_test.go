package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/security"
	"rentio-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func authedRequest(method, target string, body []byte, claims *security.UserClaims) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), claimsContextKey, claims)
	return req.WithContext(ctx)
}

func customerClaims() *security.UserClaims {
	return &security.UserClaims{UserID: "user-1", Name: "Alice", Email: "alice@test.com"}
}

func adminClaims() *security.UserClaims {
	return &security.UserClaims{UserID: "admin-1", Name: "Bob", Email: "bob@test.com", Admin: true}
}

func TestRentalHandler_CreateRental(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewRentalHandler(bookings, nil)

		created := &domain.Rental{ID: "r-1", UserID: "user-1", Status: domain.RentalStatusPending}
		bookings.On("CreateRental", mock.Anything, service.CreateRentalInput{
			UserID:    "user-1",
			UserName:  "Alice",
			UserEmail: "alice@test.com",
			ProductID: "prod-1",
			StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		}).Return(created, nil)

		body, _ := json.Marshal(createRentalRequest{
			ProductID: "prod-1",
			StartDate: "2024-06-01",
			EndDate:   "2024-06-04",
		})
		rec := httptest.NewRecorder()
		handler.HandleCreateRental(rec, authedRequest("POST", "/api/rentals", body, customerClaims()))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Rental
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "r-1", got.ID)
	})

	t.Run("Active rental maps to conflict", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewRentalHandler(bookings, nil)

		bookings.On("CreateRental", mock.Anything, mock.AnythingOfType("service.CreateRentalInput")).
			Return(nil, domain.ErrActiveRentalExists)

		body, _ := json.Marshal(createRentalRequest{ProductID: "prod-1", StartDate: "2024-06-01", EndDate: "2024-06-04"})
		rec := httptest.NewRecorder()
		handler.HandleCreateRental(rec, authedRequest("POST", "/api/rentals", body, customerClaims()))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Out of stock maps to bad request", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewRentalHandler(bookings, nil)

		bookings.On("CreateRental", mock.Anything, mock.AnythingOfType("service.CreateRentalInput")).
			Return(nil, domain.ErrOutOfStock)

		body, _ := json.Marshal(createRentalRequest{ProductID: "prod-1", StartDate: "2024-06-01", EndDate: "2024-06-04"})
		rec := httptest.NewRecorder()
		handler.HandleCreateRental(rec, authedRequest("POST", "/api/rentals", body, customerClaims()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing product id maps to bad request", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewRentalHandler(bookings, nil)

		bookings.On("CreateRental", mock.Anything, mock.AnythingOfType("service.CreateRentalInput")).
			Return(nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput))

		body, _ := json.Marshal(createRentalRequest{StartDate: "2024-06-01", EndDate: "2024-06-04"})
		rec := httptest.NewRecorder()
		handler.HandleCreateRental(rec, authedRequest("POST", "/api/rentals", body, customerClaims()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed date", func(t *testing.T) {
		handler := NewRentalHandler(new(MockBookingService), nil)

		body, _ := json.Marshal(createRentalRequest{ProductID: "prod-1", StartDate: "06/01/2024", EndDate: "2024-06-04"})
		rec := httptest.NewRecorder()
		handler.HandleCreateRental(rec, authedRequest("POST", "/api/rentals", body, customerClaims()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRentalHandler_ListRentals(t *testing.T) {
	t.Run("Non-admin is scoped to own rentals", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)

		rentals.On("List", mock.Anything, service.ListRentalsInput{UserID: "user-1", Page: 1, PageSize: 10}).
			Return(&service.RentalPage{Items: []domain.Rental{}, Page: 1, PageSize: 10}, nil)

		rec := httptest.NewRecorder()
		handler.HandleListRentals(rec, authedRequest("GET", "/api/rentals?user_id=someone-else&page=1&page_size=10", nil, customerClaims()))

		assert.Equal(t, http.StatusOK, rec.Code)
		rentals.AssertExpectations(t)
	})

	t.Run("Admin may filter across users", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)

		rentals.On("List", mock.Anything, service.ListRentalsInput{
			UserID: "user-1",
			Status: domain.RentalStatusOverdue,
			Search: "canoe",
		}).Return(&service.RentalPage{Items: []domain.Rental{}}, nil)

		rec := httptest.NewRecorder()
		handler.HandleListRentals(rec, authedRequest("GET", "/api/rentals?user_id=user-1&status=OVERDUE&search=canoe", nil, adminClaims()))

		assert.Equal(t, http.StatusOK, rec.Code)
		rentals.AssertExpectations(t)
	})

	t.Run("Unknown status filter", func(t *testing.T) {
		handler := NewRentalHandler(nil, new(MockRentalService))

		rec := httptest.NewRecorder()
		handler.HandleListRentals(rec, authedRequest("GET", "/api/rentals?status=SHIPPED", nil, adminClaims()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRentalHandler_GetRental(t *testing.T) {
	rental := &domain.Rental{ID: "r-1", UserID: "user-1", Status: domain.RentalStatusPending}

	t.Run("Owner sees own rental", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)
		rentals.On("Get", mock.Anything, "r-1").Return(rental, nil)

		req := mux.SetURLVars(authedRequest("GET", "/api/rentals/r-1", nil, customerClaims()), map[string]string{"id": "r-1"})
		rec := httptest.NewRecorder()
		handler.HandleGetRental(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Stranger gets not found", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)
		rentals.On("Get", mock.Anything, "r-1").Return(rental, nil)

		stranger := &security.UserClaims{UserID: "user-9"}
		req := mux.SetURLVars(authedRequest("GET", "/api/rentals/r-1", nil, stranger), map[string]string{"id": "r-1"})
		rec := httptest.NewRecorder()
		handler.HandleGetRental(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRentalHandler_Transition(t *testing.T) {
	t.Run("Admin confirms a rental", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)

		confirmed := &domain.Rental{ID: "r-1", UserID: "user-1", Status: domain.RentalStatusConfirmed}
		rentals.On("Transition", mock.Anything, "r-1", domain.RentalStatusConfirmed).Return(confirmed, nil)

		body, _ := json.Marshal(transitionRequest{Status: "CONFIRMED"})
		req := mux.SetURLVars(authedRequest("POST", "/api/rentals/r-1/status", body, adminClaims()), map[string]string{"id": "r-1"})
		rec := httptest.NewRecorder()
		handler.HandleTransition(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Owner cancels own rental", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)

		pending := &domain.Rental{ID: "r-1", UserID: "user-1", Status: domain.RentalStatusPending}
		cancelled := &domain.Rental{ID: "r-1", UserID: "user-1", Status: domain.RentalStatusCancelled}
		rentals.On("Get", mock.Anything, "r-1").Return(pending, nil)
		rentals.On("Transition", mock.Anything, "r-1", domain.RentalStatusCancelled).Return(cancelled, nil)

		body, _ := json.Marshal(transitionRequest{Status: "CANCELLED"})
		req := mux.SetURLVars(authedRequest("POST", "/api/rentals/r-1/status", body, customerClaims()), map[string]string{"id": "r-1"})
		rec := httptest.NewRecorder()
		handler.HandleTransition(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Owner may not confirm", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)

		body, _ := json.Marshal(transitionRequest{Status: "CONFIRMED"})
		req := mux.SetURLVars(authedRequest("POST", "/api/rentals/r-1/status", body, customerClaims()), map[string]string{"id": "r-1"})
		rec := httptest.NewRecorder()
		handler.HandleTransition(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		rentals.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Illegal transition maps to conflict", func(t *testing.T) {
		rentals := new(MockRentalService)
		handler := NewRentalHandler(nil, rentals)

		rentals.On("Transition", mock.Anything, "r-1", domain.RentalStatusPickedUp).
			Return(nil, domain.ErrIllegalTransition)

		body, _ := json.Marshal(transitionRequest{Status: "PICKED_UP"})
		req := mux.SetURLVars(authedRequest("POST", "/api/rentals/r-1/status", body, adminClaims()), map[string]string{"id": "r-1"})
		rec := httptest.NewRecorder()
		handler.HandleTransition(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Unknown status", func(t *testing.T) {
		handler := NewRentalHandler(nil, new(MockRentalService))

		body, _ := json.Marshal(transitionRequest{Status: "SHIPPED"})
		req := mux.SetURLVars(authedRequest("POST", "/api/rentals/r-1/status", body, adminClaims()), map[string]string{"id": "r-1"})
		rec := httptest.NewRecorder()
		handler.HandleTransition(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
