package routes

import (
	"github.com/gorilla/mux"

	"github.com/nestorwheelock/buceo-feliz/controllers"
	"github.com/nestorwheelock/buceo-feliz/services"
)

// RegisterCRMRoutes sets up the lead pipeline routes under /api/crm
func RegisterCRMRoutes(r *mux.Router, auth *services.AuthService, crm *services.CRMService) {
	controller := controllers.NewCRMController(crm)

	crmRouter := r.PathPrefix("/api/crm").Subrouter()

	crmRouter.HandleFunc("/leads/{id}/status/",
		controllers.RequireAuthToken(auth, controller.HandleSetLeadStatus)).Methods("POST")
	crmRouter.HandleFunc("/leads/{id}/convert/",
		controllers.RequireAuthToken(auth, controller.HandleConvertLead)).Methods("POST")
	crmRouter.HandleFunc("/excursions/{id}/eligibility/",
		controllers.RequireAuthToken(auth, controller.HandleEligibility)).Methods("GET")
}
