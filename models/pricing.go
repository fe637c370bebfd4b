package models

import "github.com/shopspring/decimal"

// Pricing line allocation modes
const (
	AllocationShared   = "shared"
	AllocationPerDiver = "per_diver"
)

// Money pairs a decimal amount with a currency code.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// PricingLine is one cost/charge line of a trip quote.
type PricingLine struct {
	Key            string          `json:"key"`
	Allocation     string          `json:"allocation"`
	ShopCost       decimal.Decimal `json:"shop_cost_amount"`
	CustomerCharge decimal.Decimal `json:"customer_charge_amount"`
}

// EquipmentRental is a per-diver rental line.
type EquipmentRental struct {
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost_amount"`
	UnitCharge decimal.Decimal `json:"unit_charge_amount"`
}

// PricingTotals aggregates a quote. Shared amounts are trip-wide;
// per-diver amounts already include each diver's share of shared costs.
type PricingTotals struct {
	SharedCost           Money           `json:"shared_cost"`
	SharedCharge         Money           `json:"shared_charge"`
	PerDiverCost         Money           `json:"per_diver_cost"`
	PerDiverCharge       Money           `json:"per_diver_charge"`
	SharedCostPerDiver   Money           `json:"shared_cost_per_diver"`
	SharedChargePerDiver Money           `json:"shared_charge_per_diver"`
	TotalCostPerDiver    Money           `json:"total_cost_per_diver"`
	TotalChargePerDiver  Money           `json:"total_charge_per_diver"`
	MarginPerDiver       Money           `json:"margin_per_diver"`
	MarginPercent        decimal.Decimal `json:"margin_percent"`
	DiverCount           int             `json:"diver_count"`
}

// Allocation is the result of splitting a shared total among divers.
type Allocation struct {
	PerDiver Money   `json:"per_diver"`
	Amounts  []Money `json:"amounts"`
}
