package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/nestorwheelock/buceo-feliz/models"
	"github.com/nestorwheelock/buceo-feliz/services"
)

// PricingController handles trip quote calculations.
type PricingController struct{}

// NewPricingController initializes the pricing controller
func NewPricingController() *PricingController {
	return &PricingController{}
}

// HandleQuote - POST /api/pricing/quote/
func (c *PricingController) HandleQuote(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Currency         string                   `json:"currency"`
		DiverCount       int                      `json:"diver_count"`
		Lines            []models.PricingLine     `json:"lines"`
		EquipmentRentals []models.EquipmentRental `json:"equipment_rentals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	if request.Currency == "" {
		request.Currency = "MXN"
	}
	if request.DiverCount < 0 {
		http.Error(w, `{"error": "diver_count must not be negative"}`, http.StatusBadRequest)
		return
	}

	totals := services.CalculateTotals(request.Lines, request.DiverCount, request.Currency, request.EquipmentRentals)

	sharedCharge := totals.SharedCharge.Amount
	allocation := services.AllocateSharedCosts(sharedCharge, request.DiverCount, request.Currency)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"totals":     totals,
		"allocation": allocation,
	})
}
