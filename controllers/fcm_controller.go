package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/nestorwheelock/buceo-feliz/models"
	"github.com/nestorwheelock/buceo-feliz/services"
)

// FCMController handles push-device registration.
type FCMController struct {
	FCM *services.FCMService
}

// NewFCMController initializes the FCM controller
func NewFCMController(fcm *services.FCMService) *FCMController {
	return &FCMController{FCM: fcm}
}

// HandleRegister - POST /api/mobile/fcm/register/
func (c *FCMController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RegistrationID string `json:"registration_id"`
		Platform       string `json:"platform"`
		DeviceID       string `json:"device_id"`
		DeviceName     string `json:"device_name"`
		AppVersion     string `json:"app_version"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	registrationID := strings.TrimSpace(request.RegistrationID)
	if registrationID == "" {
		http.Error(w, `{"error": "registration_id required"}`, http.StatusBadRequest)
		return
	}

	user := UserFromContext(r.Context())
	device := models.FCMDevice{
		RegistrationID: registrationID,
		Platform:       request.Platform,
		DeviceID:       request.DeviceID,
		DeviceName:     request.DeviceName,
		AppVersion:     request.AppVersion,
	}

	status, err := c.FCM.RegisterDevice(r.Context(), user, device)
	if err != nil {
		log.Printf("❌ Device registration failed: %v", err)
		http.Error(w, `{"error": "Failed to register device"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    status,
		"device_id": request.DeviceID,
	})
}

// HandleUnregister - POST /api/mobile/fcm/unregister/
func (c *FCMController) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RegistrationID string `json:"registration_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	registrationID := strings.TrimSpace(request.RegistrationID)
	if registrationID == "" {
		http.Error(w, `{"error": "registration_id required"}`, http.StatusBadRequest)
		return
	}

	user := UserFromContext(r.Context())
	found, err := c.FCM.UnregisterDevice(r.Context(), user, registrationID)
	if err != nil {
		log.Printf("❌ Device unregistration failed: %v", err)
		http.Error(w, `{"error": "Failed to unregister device"}`, http.StatusInternalServerError)
		return
	}

	status := "unregistered"
	if !found {
		status = "not_found"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
