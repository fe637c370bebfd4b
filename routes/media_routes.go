package routes

import (
	"github.com/gorilla/mux"

	"github.com/nestorwheelock/buceo-feliz/controllers"
	"github.com/nestorwheelock/buceo-feliz/services"
)

// RegisterMediaRoutes sets up presigned media URLs under /api/media
func RegisterMediaRoutes(r *mux.Router, auth *services.AuthService) {
	media := r.PathPrefix("/api/media").Subrouter()
	media.HandleFunc("/upload-url/",
		controllers.RequireAuthToken(auth, controllers.HandleGenerateUploadURL)).Methods("POST")
	media.HandleFunc("/read-url/",
		controllers.RequireAuthToken(auth, controllers.HandleGenerateReadURL)).Methods("GET")
}
