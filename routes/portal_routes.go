package routes

import (
	"github.com/gorilla/mux"

	"github.com/nestorwheelock/buceo-feliz/controllers"
	"github.com/nestorwheelock/buceo-feliz/portalui"
	"github.com/nestorwheelock/buceo-feliz/services"
)

// RegisterPortalRoutes exposes resolved navigation under /api/portal
func RegisterPortalRoutes(r *mux.Router, auth *services.AuthService, config portalui.Config) {
	controller := controllers.NewPortalController(config)

	portal := r.PathPrefix("/api/portal").Subrouter()
	portal.HandleFunc("/navigation/",
		controllers.RequireAuthToken(auth, controller.HandleNavigation)).Methods("GET")
}
