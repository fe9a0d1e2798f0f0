package strava

import (
	"encoding/json"
	"time"
)

// ActivitySummary is the subset of the activity list response this service
// consumes.
type ActivitySummary struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	SportType        string    `json:"sport_type"`
	StartDate        time.Time `json:"start_date"`
	ElapsedTime      int       `json:"elapsed_time"`
	MovingTime       int       `json:"moving_time"`
	Distance         float64   `json:"distance"`
	AverageSpeed     float64   `json:"average_speed"`
	MaxSpeed         float64   `json:"max_speed"`
	AverageHeartrate float64   `json:"average_heartrate"`
	MaxHeartrate     float64   `json:"max_heartrate"`
}

// Stream is one entry of a key_by_type=true streams response. Data entries
// stay raw so malformed values can degrade to null instead of failing the
// whole payload.
type Stream struct {
	SeriesType   string            `json:"series_type"`
	OriginalSize int               `json:"original_size"`
	Resolution   string            `json:"resolution"`
	Data         []json.RawMessage `json:"data"`
}

// StreamSet is a streams response keyed by stream name. Any subset of keys
// may be present.
type StreamSet map[string]Stream
