package pipeline

import (
	"github.com/onflows/telemetry-backend-go/internal/models"
)

// ValidateStreams converts raw parallel stream arrays into the canonical row
// sequence. Output length equals the length of the time stream; an empty
// time stream yields an empty sequence. The transform never fails: missing
// streams, short streams and sensor faults all degrade to nulls.
func ValidateStreams(raw *models.RawStreamSet, th Thresholds) []models.CanonicalRow {
	n := raw.Len()
	if n == 0 {
		return nil
	}

	rows := make([]models.CanonicalRow, n)
	// Null-as-zero speeds, kept for the rolling-minimum flag below.
	speeds := make([]float64, n)

	for i := 0; i < n; i++ {
		row := models.CanonicalRow{TsRelS: raw.Time[i]}

		row.DistM = models.FloatAt(raw.Distance, i)
		row.AltitudeM = models.FloatAt(raw.Altitude, i)
		row.Cadence = models.FloatAt(raw.Cadence, i)
		row.Watts = models.FloatAt(raw.Watts, i)
		row.Grade = models.FloatAt(raw.GradeSmooth, i)

		// Out-of-range heart rate is a sensor fault, nulled rather than
		// clamped to the boundary.
		if hr := models.FloatAt(raw.Heartrate, i); hr != nil && *hr >= th.HRMinBPM && *hr <= th.HRMaxBPM {
			row.HRBPM = hr
		}

		// Speed below the floor collapses to exactly 0 (stationary), which
		// stays distinct from a missing sample (null).
		if v := models.FloatAt(raw.VelocitySmooth, i); v != nil {
			if *v < th.MinSpeedMS {
				zero := 0.0
				row.SpeedMS = &zero
			} else {
				row.SpeedMS = v
			}
			speeds[i] = *row.SpeedMS
		}

		// A position is valid only as a complete pair.
		if p := models.LatLngAt(raw.LatLng, i); p != nil {
			lat, lng := p.Lat, p.Lng
			row.Lat = &lat
			row.Lng = &lng
		}

		row.Moving = speeds[i] > th.VLowMS
		rows[i] = row
	}

	// Trailing-window rolling minimum of null-as-zero speed, at most
	// LowWindow samples, partial at the start of the sequence.
	for i := range rows {
		lo := i - th.LowWindow + 1
		if lo < 0 {
			lo = 0
		}
		rollMin := speeds[lo]
		for j := lo + 1; j <= i; j++ {
			if speeds[j] < rollMin {
				rollMin = speeds[j]
			}
		}

		hr := 0.0
		if rows[i].HRBPM != nil {
			hr = *rows[i].HRBPM
		}
		rows[i].LowSpeedHRInconsistent = rollMin <= th.VLowMS && hr >= th.HRWorkBPM
	}

	return rows
}
