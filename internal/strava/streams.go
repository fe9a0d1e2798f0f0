package strava

import (
	"encoding/json"

	"github.com/onflows/telemetry-backend-go/internal/models"
)

// Stream names used by the pipeline.
const (
	StreamTime           = "time"
	StreamDistance       = "distance"
	StreamLatLng         = "latlng"
	StreamAltitude       = "altitude"
	StreamHeartrate      = "heartrate"
	StreamCadence        = "cadence"
	StreamWatts          = "watts"
	StreamVelocitySmooth = "velocity_smooth"
	StreamGradeSmooth    = "grade_smooth"
)

// ToRawStreams converts a streams payload into the pipeline's input shape.
// Missing keys become nil slices, non-numeric samples become nulls, and a
// latlng entry that is not a two-element numeric pair drops both
// coordinates. Decoding never fails.
func (s StreamSet) ToRawStreams() *models.RawStreamSet {
	raw := &models.RawStreamSet{
		Time:           s.timeSamples(),
		Distance:       s.floatSamples(StreamDistance),
		LatLng:         s.latLngSamples(),
		Altitude:       s.floatSamples(StreamAltitude),
		Heartrate:      s.floatSamples(StreamHeartrate),
		Cadence:        s.floatSamples(StreamCadence),
		Watts:          s.floatSamples(StreamWatts),
		VelocitySmooth: s.floatSamples(StreamVelocitySmooth),
		GradeSmooth:    s.floatSamples(StreamGradeSmooth),
	}
	return raw
}

func (s StreamSet) timeSamples() []int {
	st, ok := s[StreamTime]
	if !ok || len(st.Data) == 0 {
		return nil
	}
	out := make([]int, len(st.Data))
	for i, raw := range st.Data {
		// A malformed time entry falls back to its sample index, which is
		// what the per-second series carries anyway.
		out[i] = i
		if v := floatFromRaw(raw); v != nil {
			out[i] = int(*v)
		}
	}
	return out
}

func (s StreamSet) floatSamples(name string) []*float64 {
	st, ok := s[name]
	if !ok || len(st.Data) == 0 {
		return nil
	}
	out := make([]*float64, len(st.Data))
	for i, raw := range st.Data {
		out[i] = floatFromRaw(raw)
	}
	return out
}

func (s StreamSet) latLngSamples() []*models.LatLng {
	st, ok := s[StreamLatLng]
	if !ok || len(st.Data) == 0 {
		return nil
	}
	out := make([]*models.LatLng, len(st.Data))
	for i, raw := range st.Data {
		var pair []*float64
		if err := json.Unmarshal(raw, &pair); err != nil {
			continue
		}
		if len(pair) != 2 || pair[0] == nil || pair[1] == nil {
			continue
		}
		out[i] = &models.LatLng{Lat: *pair[0], Lng: *pair[1]}
	}
	return out
}

func floatFromRaw(raw json.RawMessage) *float64 {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}
