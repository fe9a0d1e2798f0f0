package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflows/telemetry-backend-go/internal/models"
)

func fptr(v float64) *float64 {
	return &v
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestValidateStreamsEmptyTime(t *testing.T) {
	rows := ValidateStreams(&models.RawStreamSet{}, DefaultThresholds())
	assert.Empty(t, rows)
}

func TestValidateStreamsHeartRateFaults(t *testing.T) {
	tests := []struct {
		name string
		hr   *float64
		want *float64
	}{
		{"below minimum is a fault", fptr(39), nil},
		{"minimum boundary is valid", fptr(40), fptr(40)},
		{"normal value passes through", fptr(150), fptr(150)},
		{"maximum boundary is valid", fptr(230), fptr(230)},
		{"above maximum is a fault", fptr(231), nil},
		{"missing stays missing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &models.RawStreamSet{
				Time:      []int{0},
				Heartrate: []*float64{tt.hr},
			}
			rows := ValidateStreams(raw, DefaultThresholds())
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].HRBPM)
		})
	}
}

func TestValidateStreamsSpeedCollapse(t *testing.T) {
	tests := []struct {
		name  string
		speed *float64
		want  *float64
	}{
		{"zero stays zero", fptr(0), fptr(0)},
		{"below floor collapses to zero", fptr(0.1), fptr(0)},
		{"just below floor collapses to zero", fptr(0.19), fptr(0)},
		{"floor boundary passes unchanged", fptr(0.2), fptr(0.2)},
		{"normal speed passes unchanged", fptr(1.5), fptr(1.5)},
		{"missing stays missing, not zero", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &models.RawStreamSet{
				Time:           []int{0},
				VelocitySmooth: []*float64{tt.speed},
			}
			rows := ValidateStreams(raw, DefaultThresholds())
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].SpeedMS)
		})
	}
}

func TestValidateStreamsPositionPairing(t *testing.T) {
	raw := &models.RawStreamSet{
		Time: seq(3),
		LatLng: []*models.LatLng{
			{Lat: 52.37, Lng: 4.89},
			nil,
			// latlng stream shorter than time
		},
	}

	rows := ValidateStreams(raw, DefaultThresholds())
	require.Len(t, rows, 3)

	assert.True(t, rows[0].HasPosition())
	assert.InDelta(t, 52.37, *rows[0].Lat, 1e-9)
	assert.InDelta(t, 4.89, *rows[0].Lng, 1e-9)

	for _, r := range rows[1:] {
		assert.Nil(t, r.Lat)
		assert.Nil(t, r.Lng)
	}
}

func TestValidateStreamsShortStreamsDegradeToNull(t *testing.T) {
	raw := &models.RawStreamSet{
		Time:      seq(4),
		Heartrate: []*float64{fptr(120), fptr(121)},
		Altitude:  nil,
	}

	rows := ValidateStreams(raw, DefaultThresholds())
	require.Len(t, rows, 4)

	assert.NotNil(t, rows[1].HRBPM)
	assert.Nil(t, rows[2].HRBPM)
	assert.Nil(t, rows[3].HRBPM)
	for _, r := range rows {
		assert.Nil(t, r.AltitudeM)
	}
}

func TestValidateStreamsMovingFlag(t *testing.T) {
	raw := &models.RawStreamSet{
		Time:           seq(4),
		VelocitySmooth: []*float64{fptr(0.5), fptr(0.6), fptr(0.7), nil},
	}

	rows := ValidateStreams(raw, DefaultThresholds())
	require.Len(t, rows, 4)

	assert.False(t, rows[0].Moving, "below v_low")
	assert.False(t, rows[1].Moving, "v_low itself does not count as moving")
	assert.True(t, rows[2].Moving)
	assert.False(t, rows[3].Moving, "null speed counts as zero")
}

func TestValidateStreamsLowSpeedHRInconsistent(t *testing.T) {
	// Steady fast running with one slow sample at index 5; elevated HR
	// throughout. The trailing 10-sample minimum keeps the slow sample in
	// scope for indices 5 through 14.
	n := 20
	speeds := make([]*float64, n)
	hrs := make([]*float64, n)
	for i := 0; i < n; i++ {
		speeds[i] = fptr(2.0)
		hrs[i] = fptr(120)
	}
	speeds[5] = fptr(0.3)

	raw := &models.RawStreamSet{
		Time:           seq(n),
		VelocitySmooth: speeds,
		Heartrate:      hrs,
	}
	rows := ValidateStreams(raw, DefaultThresholds())
	require.Len(t, rows, n)

	for i, r := range rows {
		if i >= 5 && i <= 14 {
			assert.True(t, r.LowSpeedHRInconsistent, "index %d inside trailing window", i)
		} else {
			assert.False(t, r.LowSpeedHRInconsistent, "index %d outside trailing window", i)
		}
	}
}

func TestValidateStreamsPartialWindowAtStart(t *testing.T) {
	// First sample alone forms the rolling window: low speed + high HR
	// flags immediately.
	raw := &models.RawStreamSet{
		Time:           []int{0, 1},
		VelocitySmooth: []*float64{fptr(0.0), fptr(2.0)},
		Heartrate:      []*float64{fptr(130), fptr(130)},
	}
	rows := ValidateStreams(raw, DefaultThresholds())
	require.Len(t, rows, 2)

	assert.True(t, rows[0].LowSpeedHRInconsistent)
	assert.True(t, rows[1].LowSpeedHRInconsistent, "slow sample still inside trailing window")
}

func TestValidateStreamsNoHRMeansNoInconsistency(t *testing.T) {
	raw := &models.RawStreamSet{
		Time:           seq(5),
		VelocitySmooth: []*float64{fptr(0), fptr(0), fptr(0), fptr(0), fptr(0)},
	}
	rows := ValidateStreams(raw, DefaultThresholds())
	for _, r := range rows {
		assert.False(t, r.LowSpeedHRInconsistent, "null HR counts as zero, below hr_work")
	}
}
