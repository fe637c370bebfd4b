package services

import (
	"github.com/shopspring/decimal"

	"github.com/nestorwheelock/buceo-feliz/models"
)

// Pure pricing math for trip quotes. No database access here.

var centStep = decimal.New(1, -2) // 0.01

// RoundMoney rounds to the given number of places using banker's rounding.
// Halfway values round to the nearest even digit, which avoids cumulative
// bias when many lines are summed.
func RoundMoney(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.RoundBank(places)
}

// AllocateSharedCosts splits a shared total evenly among divers. The
// per-diver amount is banker's rounded; the rounding remainder is handed
// out in 0.01 steps to the first divers so the column sums exactly to the
// shared total.
func AllocateSharedCosts(sharedTotal decimal.Decimal, diverCount int, currency string) models.Allocation {
	if diverCount <= 0 {
		return models.Allocation{
			PerDiver: models.Money{Amount: decimal.Zero, Currency: currency},
			Amounts:  []models.Money{},
		}
	}

	count := decimal.NewFromInt(int64(diverCount))
	perDiver := RoundMoney(sharedTotal.Div(count), 2)

	allocated := perDiver.Mul(count)
	remainder := sharedTotal.Sub(allocated)

	amounts := make([]models.Money, diverCount)
	for i := range amounts {
		amounts[i] = models.Money{Amount: perDiver, Currency: currency}
	}

	if !remainder.IsZero() {
		increment := centStep
		if remainder.IsNegative() {
			increment = centStep.Neg()
		}

		adjustments := int(remainder.Abs().Div(centStep).IntPart())
		if adjustments > len(amounts) {
			adjustments = len(amounts)
		}
		for i := 0; i < adjustments; i++ {
			amounts[i].Amount = amounts[i].Amount.Add(increment)
		}
	}

	return models.Allocation{
		PerDiver: models.Money{Amount: perDiver, Currency: currency},
		Amounts:  amounts,
	}
}

// CalculateTotals aggregates quote lines and equipment rentals into
// trip-wide and per-diver totals.
func CalculateTotals(lines []models.PricingLine, diverCount int, currency string, rentals []models.EquipmentRental) models.PricingTotals {
	sharedCost := decimal.Zero
	sharedCharge := decimal.Zero
	perDiverCost := decimal.Zero
	perDiverCharge := decimal.Zero

	for _, line := range lines {
		switch line.Allocation {
		case models.AllocationShared:
			sharedCost = sharedCost.Add(line.ShopCost)
			sharedCharge = sharedCharge.Add(line.CustomerCharge)
		case models.AllocationPerDiver:
			perDiverCost = perDiverCost.Add(line.ShopCost)
			perDiverCharge = perDiverCharge.Add(line.CustomerCharge)
		}
	}

	for _, rental := range rentals {
		qty := decimal.NewFromInt(rental.Quantity)
		perDiverCost = perDiverCost.Add(rental.UnitCost.Mul(qty))
		perDiverCharge = perDiverCharge.Add(rental.UnitCharge.Mul(qty))
	}

	sharedCostPerDiver := decimal.Zero
	sharedChargePerDiver := decimal.Zero
	if diverCount > 0 {
		count := decimal.NewFromInt(int64(diverCount))
		sharedCostPerDiver = RoundMoney(sharedCost.Div(count), 2)
		sharedChargePerDiver = RoundMoney(sharedCharge.Div(count), 2)
	}

	totalCostPerDiver := sharedCostPerDiver.Add(perDiverCost)
	totalChargePerDiver := sharedChargePerDiver.Add(perDiverCharge)
	marginPerDiver := totalChargePerDiver.Sub(totalCostPerDiver)

	marginPercent := decimal.Zero
	if totalChargePerDiver.IsPositive() {
		marginPercent = RoundMoney(marginPerDiver.Div(totalChargePerDiver).Mul(decimal.NewFromInt(100)), 2)
	}

	money := func(amount decimal.Decimal) models.Money {
		return models.Money{Amount: amount, Currency: currency}
	}

	return models.PricingTotals{
		SharedCost:           money(sharedCost),
		SharedCharge:         money(sharedCharge),
		PerDiverCost:         money(perDiverCost),
		PerDiverCharge:       money(perDiverCharge),
		SharedCostPerDiver:   money(sharedCostPerDiver),
		SharedChargePerDiver: money(sharedChargePerDiver),
		TotalCostPerDiver:    money(totalCostPerDiver),
		TotalChargePerDiver:  money(totalChargePerDiver),
		MarginPerDiver:       money(marginPerDiver),
		MarginPercent:        marginPercent,
		DiverCount:           diverCount,
	}
}
