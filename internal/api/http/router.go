package http

import (
	"net/http"

	"rentio-backend/internal/security"
	"rentio-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires every API endpoint behind the auth middleware.
func NewRouter(
	tokens security.TokenManager,
	bookings service.BookingService,
	rentals service.RentalService,
	products service.ProductService,
	notifications service.NotificationService,
) *mux.Router {
	rentalHandler := NewRentalHandler(bookings, rentals)
	productHandler := NewProductHandler(products)
	notificationHandler := NewNotificationHandler(notifications)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// Rentals
	api.HandleFunc("/rentals", rentalHandler.HandleCreateRental).Methods("POST")
	api.HandleFunc("/rentals", rentalHandler.HandleListRentals).Methods("GET")
	api.HandleFunc("/rentals/active", rentalHandler.HandleGetActiveRental).Methods("GET")
	api.HandleFunc("/rentals/{id}", rentalHandler.HandleGetRental).Methods("GET")
	api.HandleFunc("/rentals/{id}/status", rentalHandler.HandleTransition).Methods("POST")

	// Products
	api.HandleFunc("/products", productHandler.HandleListProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.HandleGetProduct).Methods("GET")
	api.HandleFunc("/products", RequireAdmin(productHandler.HandleCreateProduct)).Methods("POST")
	api.HandleFunc("/products/{id}", RequireAdmin(productHandler.HandleUpdateProduct)).Methods("PUT")
	api.HandleFunc("/products/{id}/stock", RequireAdmin(productHandler.HandleAdjustStock)).Methods("PUT")
	api.HandleFunc("/products/{id}/rentable", RequireAdmin(productHandler.HandleSetRentable)).Methods("PUT")
	api.HandleFunc("/products/{id}/reconcile", RequireAdmin(productHandler.HandleReconcileStock)).Methods("GET")

	// Notifications
	api.HandleFunc("/notifications", notificationHandler.HandleListNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.HandleMarkAsRead).Methods("POST")

	return router
}
