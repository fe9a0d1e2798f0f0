package models

import "time"

// Activity is the stored per-activity summary row.
type Activity struct {
	ActivityID   int64     `json:"activity_id" db:"activity_id"`
	SportType    string    `json:"sport_type" db:"sport_type"`
	StartUTC     time.Time `json:"start_utc" db:"start_utc"`
	ElapsedTimeS int       `json:"elapsed_time_s" db:"elapsed_time_s"`
	DistanceM    *float64  `json:"distance_m" db:"distance_m"`
	AvgSpeedMS   *float64  `json:"avg_speed_ms" db:"avg_speed_ms"`
	AvgHRBPM     *float64  `json:"avg_hr_bpm" db:"avg_hr_bpm"`
	ProcessedAt  time.Time `json:"processed_at" db:"processed_at"`
}

// ProcessResult reports what one ingest run produced and stored.
type ProcessResult struct {
	ActivityID int64      `json:"activity_id"`
	Rows       int        `json:"rows"`
	Windows    int        `json:"windows"`
	Artifacts  []Artifact `json:"artifacts"`
}
