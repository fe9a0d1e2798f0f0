package models

// CanonicalRow is one second-granularity, fault-corrected telemetry sample.
// Nullable sensor fields use pointers so JSON and storage keep the
// missing/zero distinction. Rows are immutable once produced.
type CanonicalRow struct {
	TsRelS    int      `json:"ts_rel_s" db:"ts_rel_s"`
	DistM     *float64 `json:"dist_m" db:"dist_m"`
	SpeedMS   *float64 `json:"speed_ms" db:"speed_ms"`
	HRBPM     *float64 `json:"hr_bpm" db:"hr_bpm"`
	AltitudeM *float64 `json:"altitude_m" db:"altitude_m"`
	Cadence   *float64 `json:"cadence" db:"cadence"`
	Watts     *float64 `json:"watts" db:"watts"`
	Lat       *float64 `json:"lat" db:"lat"`
	Lng       *float64 `json:"lng" db:"lng"`
	Grade     *float64 `json:"grade" db:"grade"`

	// Derived flags.
	Moving                 bool `json:"moving" db:"moving"`
	LowSpeedHRInconsistent bool `json:"low_speed_hr_inconsistent" db:"low_speed_hr_inconsistent"`
}

// HasPosition reports whether the row carries a valid coordinate pair.
// Lat and Lng are always both set or both nil.
func (r *CanonicalRow) HasPosition() bool {
	return r.Lat != nil && r.Lng != nil
}

// RowFilter represents filter parameters for querying canonical rows.
type RowFilter struct {
	StartTs  int `form:"startTs"`
	EndTs    int `form:"endTs"`
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// RowsResponse is a paginated canonical row response.
type RowsResponse struct {
	Data       []CanonicalRow `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
