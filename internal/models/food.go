package models

// Food is a tracked item with a configured safe temperature range.
// The monitoring core only reads TempMin/TempMax; food configuration
// (including the TempMin < TempMax invariant) is owned elsewhere.
type Food struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	TempMin  float64 `json:"temp_min"` // °C, inclusive lower bound of the safe range
	TempMax  float64 `json:"temp_max"` // °C, inclusive upper bound of the safe range
	SectorID string  `json:"sector_id"`
	Active   bool    `json:"active"`
}

// Sector groups foods by kitchen area.
type Sector struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
