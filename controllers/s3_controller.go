package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/nestorwheelock/buceo-feliz/services"
)

// Allowed media key spaces
var allowedPrefixes = map[string]bool{
	"cert-cards":       true,
	"chat-attachments": true,
}

// HandleGenerateUploadURL - POST /api/media/upload-url/
func HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Prefix   string `json:"prefix"`
		FileName string `json:"file_name"`
		FileType string `json:"file_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if request.FileName == "" || request.FileType == "" {
		http.Error(w, `{"error": "file_name and file_type required"}`, http.StatusBadRequest)
		return
	}
	if !allowedPrefixes[request.Prefix] {
		http.Error(w, `{"error": "Invalid prefix"}`, http.StatusBadRequest)
		return
	}

	url, key, err := services.GenerateUploadURL(request.Prefix, request.FileName, request.FileType)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"upload_url": url, "key": key})
}

// HandleGenerateReadURL - GET /api/media/read-url/?key=
func HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	url, err := services.GenerateReadURL(key)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"read_url": url})
}
