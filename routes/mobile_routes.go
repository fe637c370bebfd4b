package routes

import (
	"github.com/gorilla/mux"

	"github.com/nestorwheelock/buceo-feliz/controllers"
	"github.com/nestorwheelock/buceo-feliz/services"
)

// RegisterMobileRoutes sets up the staff mobile app API under /api/mobile
func RegisterMobileRoutes(r *mux.Router, auth *services.AuthService, fcm *services.FCMService, conversations *services.ConversationService) {
	authController := controllers.NewAuthController(auth)
	fcmController := controllers.NewFCMController(fcm)
	conversationController := controllers.NewConversationController(conversations)

	mobile := r.PathPrefix("/api/mobile").Subrouter()

	mobile.HandleFunc("/login/", authController.HandleLogin).Methods("POST")

	mobile.HandleFunc("/fcm/register/",
		controllers.RequireAuthToken(auth, fcmController.HandleRegister)).Methods("POST")
	mobile.HandleFunc("/fcm/unregister/",
		controllers.RequireAuthToken(auth, fcmController.HandleUnregister)).Methods("POST")

	mobile.HandleFunc("/conversations/",
		controllers.RequireAuthToken(auth, conversationController.HandleList)).Methods("GET")
	mobile.HandleFunc("/conversations/{id}/messages/",
		controllers.RequireAuthToken(auth, conversationController.HandleMessages)).Methods("GET")
	mobile.HandleFunc("/conversations/{id}/send/",
		controllers.RequireAuthToken(auth, conversationController.HandleSend)).Methods("POST")
}
