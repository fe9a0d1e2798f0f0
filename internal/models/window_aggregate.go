package models

import "time"

// WindowAggregate summarizes one fixed-width bucket of canonical rows.
// Statistic fields are nil when their source column is entirely null inside
// the window; MovingFraction, HRValidFraction, NPoints, GapSeconds and
// QScore are always numeric, treating "no data" as zero.
type WindowAggregate struct {
	WindowS int       `json:"window_s" db:"window_s"`
	WinIdx  int       `json:"win_idx" db:"win_idx"`
	TStart  time.Time `json:"t_start" db:"t_start"`
	TEnd    time.Time `json:"t_end" db:"t_end"`

	MeanSpeedMS     *float64 `json:"mean_speed_ms" db:"mean_speed_ms"`
	P95SpeedMS      *float64 `json:"p95_speed_ms" db:"p95_speed_ms"`
	MedianHRBPM     *float64 `json:"median_hr_bpm" db:"median_hr_bpm"`
	HRValidFraction float64  `json:"hr_valid_fraction" db:"hr_valid_fraction"`
	MeanGrade       *float64 `json:"mean_grade" db:"mean_grade"`
	ElevDeltaM      *float64 `json:"elev_delta_m" db:"elev_delta_m"`
	DistanceDeltaM  *float64 `json:"distance_delta_m" db:"distance_delta_m"`
	LatCenter       *float64 `json:"lat_center" db:"lat_center"`
	LngCenter       *float64 `json:"lng_center" db:"lng_center"`
	MovingFraction  float64  `json:"moving_fraction" db:"moving_fraction"`
	NPoints         int      `json:"n_points" db:"n_points"`
	GapSeconds      int      `json:"gap_seconds" db:"gap_seconds"`
	QScore          float64  `json:"q_score" db:"q_score"`
}

// WindowFilter represents filter parameters for querying window aggregates.
type WindowFilter struct {
	WindowS int      `form:"windowS"`
	MaxQ    *float64 `form:"maxQ"`
}
