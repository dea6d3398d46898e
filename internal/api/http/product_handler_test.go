package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductHandler_ReconcileStock(t *testing.T) {
	t.Run("Reports counters and drift", func(t *testing.T) {
		products := new(MockProductService)
		handler := NewProductHandler(products)

		products.On("Reconcile", mock.Anything, "prod-1").Return(&service.StockReport{
			ProductID:      "prod-1",
			Stock:          5,
			AvailableStock: 2,
			ReservedUnits:  3,
			HoldingRentals: 3,
			Drift:          0,
		}, nil)

		req := mux.SetURLVars(authedRequest("GET", "/api/products/prod-1/reconcile", nil, adminClaims()), map[string]string{"id": "prod-1"})
		rec := httptest.NewRecorder()
		handler.HandleReconcileStock(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got service.StockReport
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, int32(0), got.Drift)
	})

	t.Run("Unknown product", func(t *testing.T) {
		products := new(MockProductService)
		handler := NewProductHandler(products)

		products.On("Reconcile", mock.Anything, "missing").Return(nil, domain.ErrProductNotFound)

		req := mux.SetURLVars(authedRequest("GET", "/api/products/missing/reconcile", nil, adminClaims()), map[string]string{"id": "missing"})
		rec := httptest.NewRecorder()
		handler.HandleReconcileStock(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
