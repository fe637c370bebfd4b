package routes

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterStaffRoutes serves the staff chat page and its static assets.
// These are the paths the offline cache layer precaches.
func RegisterStaffRoutes(r *mux.Router, staticDir string) {
	r.HandleFunc("/staff/chat/", StaffChatPageHandler).Methods("GET")
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
}

// StaffChatPageHandler serves the chat page shell
func StaffChatPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	html := `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Staff Chat - Buceo Feliz</title>
	</head>
	<body>
		<div id="chat-root"></div>
		<script src="/static/js/chat.js"></script>
		<script src="/static/js/chat-notifications.js"></script>
	</body>
	</html>
	`
	fmt.Fprint(w, html)
}
