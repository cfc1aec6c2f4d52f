package service

import (
	"math"

	"foodsafety/internal/models"
)

// marginFraction defines the "near boundary" zone as a fixed share of the
// safe range width, applied symmetrically to both bounds.
const marginFraction = 0.3

// Descriptor is the classification outcome for an out-of-spec reading.
type Descriptor struct {
	Type   models.AlertType
	Danger models.AlertDanger
}

// Classify maps a measured temperature against a food's safe range
// [tempMin, tempMax] to an alert descriptor. The second return value is
// false when the reading is normal and no alert is warranted.
//
// Rules are a priority chain, first match wins:
//  1. below tempMin            -> BELOW_MIN, CRITICAL
//  2. above tempMax            -> ABOVE_MAX, CRITICAL
//  3. inside the lower margin  -> NEXT_MIN, ALERT
//  4. inside the upper margin  -> NEXT_MAX, ALERT
//
// Callers guarantee tempMin < tempMax; Classify does not check it. For
// degenerate ranges where the two margin zones overlap, rule order is the
// tie-break: NEXT_MIN wins. Pure and deterministic, never errors.
func Classify(tempMin, tempMax, temperature float64) (Descriptor, bool) {
	errorMargin := (tempMax - tempMin) * marginFraction

	switch {
	case temperature < tempMin:
		return Descriptor{Type: models.AlertBelowMin, Danger: models.DangerCritical}, true
	case temperature > tempMax:
		return Descriptor{Type: models.AlertAboveMax, Danger: models.DangerCritical}, true
	case temperature < tempMin+errorMargin:
		return Descriptor{Type: models.AlertNextMin, Danger: models.DangerAlert}, true
	case temperature > tempMax-errorMargin:
		return Descriptor{Type: models.AlertNextMax, Danger: models.DangerAlert}, true
	default:
		return Descriptor{}, false
	}
}

// Deviation returns the signed distance from the reading to the nearest
// bound of the safe range: positive above the bound, negative below it.
// Equidistant readings resolve to the lower bound. Display-only; alert
// classification never uses it.
func Deviation(temperature, tempMin, tempMax float64) float64 {
	closest := tempMin
	if math.Abs(temperature-tempMin) > math.Abs(temperature-tempMax) {
		closest = tempMax
	}
	return temperature - closest
}
