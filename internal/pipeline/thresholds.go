package pipeline

// Thresholds holds the numeric knobs of the quality pipeline. Callers may
// override individual values; DefaultThresholds returns the stock profile.
type Thresholds struct {
	// Validator
	HRMinBPM   float64 `json:"hr_min_bpm"`   // heart rate below this is a sensor fault
	HRMaxBPM   float64 `json:"hr_max_bpm"`   // heart rate above this is a sensor fault
	MinSpeedMS float64 `json:"min_speed_ms"` // speed below this collapses to exactly 0
	VLowMS     float64 `json:"v_low_ms"`     // motion threshold for the moving flag
	HRWorkBPM  float64 `json:"hr_work_bpm"`  // resting HR ceiling for the inconsistency flag
	LowWindow  int     `json:"low_window"`   // trailing samples for the rolling speed minimum

	// Artifact detector
	MissingRatioWarn  float64 `json:"missing_ratio_warn"`   // all-null row fraction that triggers a warning
	ZeroSpeedPauseSec int     `json:"zero_speed_pause_sec"` // minimum zero-speed run length
	GPSJumpM          float64 `json:"gps_jump_m"`           // inter-sample jump distance

	// Window aggregator
	WindowS int `json:"window_s"` // aggregation bucket width in seconds
}

// DefaultThresholds returns the stock threshold profile.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HRMinBPM:          40,
		HRMaxBPM:          230,
		MinSpeedMS:        0.2,
		VLowMS:            0.6,
		HRWorkBPM:         95,
		LowWindow:         10,
		MissingRatioWarn:  0.2,
		ZeroSpeedPauseSec: 30,
		GPSJumpM:          50.0,
		WindowS:           30,
	}
}
