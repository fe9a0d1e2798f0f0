package pipeline

import (
	"fmt"

	"github.com/onflows/telemetry-backend-go/internal/models"
	"github.com/onflows/telemetry-backend-go/internal/spatial"
)

// DetectArtifacts scans the canonical row sequence for intervals of low data
// quality. The three checks are independent passes over the same input and
// emit in a fixed order (missing ratio, pause scan, jump scan) so repeated
// runs produce identical output.
func DetectArtifacts(rows []models.CanonicalRow, th Thresholds) []models.Artifact {
	if len(rows) == 0 {
		return nil
	}

	var artifacts []models.Artifact
	artifacts = append(artifacts, detectMissingDataRatio(rows, th)...)
	artifacts = append(artifacts, detectZeroSpeedPauses(rows, th)...)
	artifacts = append(artifacts, detectGPSJumps(rows, th)...)
	return artifacts
}

// detectMissingDataRatio flags the whole activity when too many rows carry
// no speed, heart rate and altitude at the same time.
func detectMissingDataRatio(rows []models.CanonicalRow, th Thresholds) []models.Artifact {
	missing := 0
	for _, r := range rows {
		if r.SpeedMS == nil && r.HRBPM == nil && r.AltitudeM == nil {
			missing++
		}
	}

	ratio := float64(missing) / float64(len(rows))
	if ratio < th.MissingRatioWarn {
		return nil
	}

	return []models.Artifact{{
		TsRelSFrom: rows[0].TsRelS,
		TsRelSTo:   rows[len(rows)-1].TsRelS,
		Kind:       models.ArtifactMissingDataRatio,
		Severity:   models.SeveritySignificant,
		Note:       fmt.Sprintf("missing data ratio %.2f", ratio),
	}}
}

// detectZeroSpeedPauses finds runs of consecutive exact-zero speed samples.
// A null speed sample terminates the run without extending it; a run still
// open at the end of the sequence is flushed with the same length rule.
func detectZeroSpeedPauses(rows []models.CanonicalRow, th Thresholds) []models.Artifact {
	var artifacts []models.Artifact
	runStart, runLen := 0, 0

	flush := func() {
		if runLen >= th.ZeroSpeedPauseSec {
			artifacts = append(artifacts, models.Artifact{
				TsRelSFrom: runStart,
				TsRelSTo:   runStart + runLen - 1,
				Kind:       models.ArtifactZeroSpeedPause,
				Severity:   models.SeverityInfo,
				Note:       fmt.Sprintf("stationary for %d s", runLen),
			})
		}
		runLen = 0
	}

	for _, r := range rows {
		if r.SpeedMS != nil && *r.SpeedMS == 0.0 {
			if runLen == 0 {
				runStart = r.TsRelS
			}
			runLen++
			continue
		}
		flush()
	}
	flush()

	return artifacts
}

// detectGPSJumps compares each valid position against the previous valid
// one; rows without a position are skipped without breaking the chain.
func detectGPSJumps(rows []models.CanonicalRow, th Thresholds) []models.Artifact {
	var artifacts []models.Artifact
	var prev *models.CanonicalRow

	for i := range rows {
		r := &rows[i]
		if !r.HasPosition() {
			continue
		}
		if prev != nil {
			d := spatial.HaversineDistance(*prev.Lat, *prev.Lng, *r.Lat, *r.Lng)
			if d > th.GPSJumpM {
				artifacts = append(artifacts, models.Artifact{
					TsRelSFrom: r.TsRelS - 1,
					TsRelSTo:   r.TsRelS,
					Kind:       models.ArtifactGPSJump,
					Severity:   models.SeveritySignificant,
					Note:       fmt.Sprintf("gps jump of %.1f m", d),
				})
			}
		}
		prev = r
	}

	return artifacts
}
