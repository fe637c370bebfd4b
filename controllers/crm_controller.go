package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nestorwheelock/buceo-feliz/services"
)

// CRMController handles the lead pipeline endpoints.
type CRMController struct {
	CRM *services.CRMService
}

// NewCRMController initializes the CRM controller
func NewCRMController(crm *services.CRMService) *CRMController {
	return &CRMController{CRM: crm}
}

// HandleSetLeadStatus - POST /api/crm/leads/{id}/status/
func (c *CRMController) HandleSetLeadStatus(w http.ResponseWriter, r *http.Request) {
	personID := mux.Vars(r)["id"]

	var request struct {
		Status     string `json:"status"`
		Note       string `json:"note"`
		LostReason string `json:"lost_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	user := UserFromContext(r.Context())
	event, err := c.CRM.SetLeadStatus(r.Context(), personID, request.Status, user.Email, request.Note, request.LostReason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLeadStatus):
			http.Error(w, `{"error": "Invalid status"}`, http.StatusBadRequest)
		case errors.Is(err, services.ErrPersonNotFound):
			http.Error(w, `{"error": "Person not found"}`, http.StatusNotFound)
		default:
			log.Printf("❌ Failed to set lead status for %s: %v", personID, err)
			http.Error(w, `{"error": "Failed to update lead"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

// HandleConvertLead - POST /api/crm/leads/{id}/convert/
func (c *CRMController) HandleConvertLead(w http.ResponseWriter, r *http.Request) {
	personID := mux.Vars(r)["id"]

	user := UserFromContext(r.Context())
	profile, err := c.CRM.ConvertToDiver(r.Context(), personID, user.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotALead):
			http.Error(w, `{"error": "Person is not a lead"}`, http.StatusBadRequest)
		case errors.Is(err, services.ErrPersonNotFound):
			http.Error(w, `{"error": "Person not found"}`, http.StatusNotFound)
		default:
			log.Printf("❌ Failed to convert lead %s: %v", personID, err)
			http.Error(w, `{"error": "Failed to convert lead"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// HandleEligibility - GET /api/crm/excursions/{id}/eligibility/?person_id=
func (c *CRMController) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	excursionID := mux.Vars(r)["id"]
	personID := r.URL.Query().Get("person_id")
	if personID == "" {
		http.Error(w, `{"error": "person_id is required"}`, http.StatusBadRequest)
		return
	}

	result, err := c.CRM.CheckEligibility(r.Context(), excursionID, personID)
	if err != nil {
		if errors.Is(err, services.ErrExcursionNotFound) {
			http.Error(w, `{"error": "Excursion not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Eligibility check failed for excursion %s: %v", excursionID, err)
		http.Error(w, `{"error": "Failed to check eligibility"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
