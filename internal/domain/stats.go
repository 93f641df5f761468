// Package domain contains the core data structures and domain logic for the application.
package domain

// SeriesSummary holds descriptive statistics over one activity series.
// It is computed from the bucket counts of whichever view is active.
type SeriesSummary struct {
	Buckets     int     `json:"buckets"`
	Total       int     `json:"total"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	BusiestKey  string  `json:"busiest_key,omitempty"`
	BusiestSize int     `json:"busiest_count"`
}
