package models

import "time"

// AlertType identifies which boundary of the safe range a reading crossed
// or approached.
type AlertType string

const (
	AlertBelowMin AlertType = "BELOW_MIN" // reading under the safe minimum
	AlertAboveMax AlertType = "ABOVE_MAX" // reading over the safe maximum
	AlertNextMin  AlertType = "NEXT_MIN"  // reading inside the lower error margin
	AlertNextMax  AlertType = "NEXT_MAX"  // reading inside the upper error margin
)

// AlertDanger is the severity of an alert. CRITICAL means the safe range was
// breached; ALERT means the reading came within the error margin of a bound.
type AlertDanger string

const (
	DangerAlert    AlertDanger = "ALERT"
	DangerCritical AlertDanger = "CRITICAL"
)

// Alert is a finding derived from exactly one temperature record. It is
// created unresolved and may be resolved once; resolution is terminal.
// When Resolved is false the four resolution fields are all unset.
type Alert struct {
	ID                   string      `json:"id"`
	TemperatureRecordID  string      `json:"temperature_record_id"`
	Type                 AlertType   `json:"type"`
	Danger               AlertDanger `json:"danger"`
	Resolved             bool        `json:"resolved"`
	CorrectiveAction     string      `json:"corrective_action,omitempty"`
	CorrectedTemperature *float64    `json:"corrected_temperature,omitempty"`
	ResolvedByID         string      `json:"resolved_by,omitempty"`
	ResolvedAt           *time.Time  `json:"resolved_at,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
}

// AlertDetail is an alert joined with the context read paths display:
// the measured temperature, the food's configured range and naming.
type AlertDetail struct {
	Alert
	Temperature float64 `json:"temperature"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	FoodName    string  `json:"food_name"`
	SectorName  string  `json:"sector_name"`
}
