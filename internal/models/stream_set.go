package models

// LatLng is one positional sample from the latlng stream.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RawStreamSet holds the parallel per-second stream arrays for one activity,
// positionally aligned against Time. Any stream may be nil or shorter than
// Time; a missing position is represented by a nil element, never an error.
type RawStreamSet struct {
	Time           []int      `json:"time"`
	Distance       []*float64 `json:"distance"`
	LatLng         []*LatLng  `json:"latlng"`
	Altitude       []*float64 `json:"altitude"`
	Heartrate      []*float64 `json:"heartrate"`
	Cadence        []*float64 `json:"cadence"`
	Watts          []*float64 `json:"watts"`
	VelocitySmooth []*float64 `json:"velocity_smooth"`
	GradeSmooth    []*float64 `json:"grade_smooth"`
}

// Len returns the number of samples, driven by the time stream.
func (s *RawStreamSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Time)
}

// FloatAt returns stream[i] if the stream covers index i, nil otherwise.
func FloatAt(stream []*float64, i int) *float64 {
	if i < 0 || i >= len(stream) {
		return nil
	}
	return stream[i]
}

// LatLngAt returns the position at index i, nil if absent or out of range.
func LatLngAt(stream []*LatLng, i int) *LatLng {
	if i < 0 || i >= len(stream) {
		return nil
	}
	return stream[i]
}
