package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflows/telemetry-backend-go/internal/models"
)

// rowsWithSpeeds builds canonical rows at 1 Hz with the given speeds.
func rowsWithSpeeds(speeds []*float64) []models.CanonicalRow {
	rows := make([]models.CanonicalRow, len(speeds))
	for i := range speeds {
		rows[i] = models.CanonicalRow{TsRelS: i, SpeedMS: speeds[i]}
	}
	return rows
}

func zeros(n int) []*float64 {
	out := make([]*float64, n)
	for i := range out {
		out[i] = fptr(0)
	}
	return out
}

func moving(n int) []*float64 {
	out := make([]*float64, n)
	for i := range out {
		out[i] = fptr(2.5)
	}
	return out
}

func TestDetectArtifactsEmptyRows(t *testing.T) {
	assert.Nil(t, DetectArtifacts(nil, DefaultThresholds()))
}

func TestZeroSpeedPauseLongRun(t *testing.T) {
	speeds := append(moving(10), zeros(40)...)
	speeds = append(speeds, moving(10)...)

	artifacts := DetectArtifacts(rowsWithSpeeds(speeds), DefaultThresholds())
	require.Len(t, artifacts, 1)

	a := artifacts[0]
	assert.Equal(t, models.ArtifactZeroSpeedPause, a.Kind)
	assert.Equal(t, models.SeverityInfo, a.Severity)
	assert.Equal(t, 10, a.TsRelSFrom)
	assert.Equal(t, 49, a.TsRelSTo)
}

func TestZeroSpeedPauseShortRunIgnored(t *testing.T) {
	speeds := append(moving(10), zeros(20)...)
	speeds = append(speeds, moving(10)...)

	artifacts := DetectArtifacts(rowsWithSpeeds(speeds), DefaultThresholds())
	assert.Empty(t, artifacts)
}

func TestZeroSpeedPauseNullTerminatesRun(t *testing.T) {
	// 20 zeros, a null, 20 more zeros: two separate sub-threshold runs,
	// not one 40-sample pause.
	speeds := zeros(20)
	speeds = append(speeds, nil)
	speeds = append(speeds, zeros(20)...)

	artifacts := DetectArtifacts(rowsWithSpeeds(speeds), DefaultThresholds())
	assert.Empty(t, artifacts)
}

func TestZeroSpeedPauseOpenRunFlushedAtEnd(t *testing.T) {
	speeds := append(moving(5), zeros(35)...)

	artifacts := DetectArtifacts(rowsWithSpeeds(speeds), DefaultThresholds())
	require.Len(t, artifacts, 1)
	assert.Equal(t, 5, artifacts[0].TsRelSFrom)
	assert.Equal(t, 39, artifacts[0].TsRelSTo)
}

func TestGPSJumpDetected(t *testing.T) {
	// 0.001 degrees of latitude is roughly 111 m, well past the 50 m gate.
	rows := []models.CanonicalRow{
		{TsRelS: 0, SpeedMS: fptr(2.5), Lat: fptr(52.3700), Lng: fptr(4.8900)},
		{TsRelS: 1, SpeedMS: fptr(2.5), Lat: fptr(52.3710), Lng: fptr(4.8900)},
	}

	artifacts := DetectArtifacts(rows, DefaultThresholds())
	require.Len(t, artifacts, 1)

	a := artifacts[0]
	assert.Equal(t, models.ArtifactGPSJump, a.Kind)
	assert.Equal(t, models.SeveritySignificant, a.Severity)
	assert.Equal(t, 0, a.TsRelSFrom)
	assert.Equal(t, 1, a.TsRelSTo)
	assert.Contains(t, a.Note, "m")
}

func TestGPSJumpSmallStepIgnored(t *testing.T) {
	// 0.0001 degrees of latitude is roughly 11 m.
	rows := []models.CanonicalRow{
		{TsRelS: 0, SpeedMS: fptr(2.5), Lat: fptr(52.37000), Lng: fptr(4.89000)},
		{TsRelS: 1, SpeedMS: fptr(2.5), Lat: fptr(52.37010), Lng: fptr(4.89000)},
	}

	artifacts := DetectArtifacts(rows, DefaultThresholds())
	assert.Empty(t, artifacts)
}

func TestGPSJumpSkipsPositionlessRows(t *testing.T) {
	// The middle row has no fix; the scan compares the two valid fixes
	// against each other instead of breaking.
	rows := []models.CanonicalRow{
		{TsRelS: 0, SpeedMS: fptr(2.5), Lat: fptr(52.3700), Lng: fptr(4.8900)},
		{TsRelS: 1, SpeedMS: fptr(2.5)},
		{TsRelS: 2, SpeedMS: fptr(2.5), Lat: fptr(52.3710), Lng: fptr(4.8900)},
	}

	artifacts := DetectArtifacts(rows, DefaultThresholds())
	require.Len(t, artifacts, 1)
	assert.Equal(t, models.ArtifactGPSJump, artifacts[0].Kind)
	assert.Equal(t, 1, artifacts[0].TsRelSFrom)
	assert.Equal(t, 2, artifacts[0].TsRelSTo)
}

func TestMissingDataRatioAboveThreshold(t *testing.T) {
	rows := make([]models.CanonicalRow, 100)
	for i := range rows {
		rows[i] = models.CanonicalRow{TsRelS: i}
		if i >= 25 {
			rows[i].SpeedMS = fptr(2.0)
		}
	}

	artifacts := DetectArtifacts(rows, DefaultThresholds())
	require.Len(t, artifacts, 1)

	a := artifacts[0]
	assert.Equal(t, models.ArtifactMissingDataRatio, a.Kind)
	assert.Equal(t, models.SeveritySignificant, a.Severity)
	assert.Equal(t, 0, a.TsRelSFrom)
	assert.Equal(t, 99, a.TsRelSTo)
	assert.Contains(t, a.Note, "0.25")
}

func TestMissingDataRatioBelowThreshold(t *testing.T) {
	rows := make([]models.CanonicalRow, 100)
	for i := range rows {
		rows[i] = models.CanonicalRow{TsRelS: i}
		if i >= 10 {
			rows[i].SpeedMS = fptr(2.0)
		}
	}

	artifacts := DetectArtifacts(rows, DefaultThresholds())
	assert.Empty(t, artifacts)
}

func TestMissingDataRatioNeedsAllThreeNull(t *testing.T) {
	// Altitude present on every row: nothing is "all null" even though
	// speed and HR are missing everywhere.
	rows := make([]models.CanonicalRow, 50)
	for i := range rows {
		rows[i] = models.CanonicalRow{TsRelS: i, AltitudeM: fptr(12)}
	}

	artifacts := DetectArtifacts(rows, DefaultThresholds())
	assert.Empty(t, artifacts)
}

func TestArtifactEmissionOrder(t *testing.T) {
	// One input tripping all three checks: mostly-null rows, a long zero
	// run, and a positional jump.
	rows := make([]models.CanonicalRow, 80)
	for i := range rows {
		rows[i] = models.CanonicalRow{TsRelS: i}
	}
	for i := 0; i < 40; i++ {
		rows[i].SpeedMS = fptr(0)
	}
	rows[50].Lat, rows[50].Lng = fptr(52.3700), fptr(4.8900)
	rows[51].Lat, rows[51].Lng = fptr(52.3800), fptr(4.8900)

	artifacts := DetectArtifacts(rows, DefaultThresholds())
	require.Len(t, artifacts, 3)
	assert.Equal(t, models.ArtifactMissingDataRatio, artifacts[0].Kind)
	assert.Equal(t, models.ArtifactZeroSpeedPause, artifacts[1].Kind)
	assert.Equal(t, models.ArtifactGPSJump, artifacts[2].Kind)
}
