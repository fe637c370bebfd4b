package routes

import (
	"github.com/gorilla/mux"

	"github.com/nestorwheelock/buceo-feliz/controllers"
	"github.com/nestorwheelock/buceo-feliz/services"
)

// RegisterPricingRoutes sets up the quote calculator under /api/pricing
func RegisterPricingRoutes(r *mux.Router, auth *services.AuthService) {
	controller := controllers.NewPricingController()

	pricing := r.PathPrefix("/api/pricing").Subrouter()
	pricing.HandleFunc("/quote/",
		controllers.RequireAuthToken(auth, controller.HandleQuote)).Methods("POST")
}
