// Package pipeline implements the per-activity telemetry quality pipeline:
// raw stream arrays are validated into canonical rows, scanned for
// data-quality artifacts, and aggregated into fixed-width windows with a
// composite quality score. The pipeline is a pure function over its input:
// it performs no I/O and never fails on malformed telemetry; quality
// problems surface as artifacts instead.
package pipeline

import (
	"time"

	"github.com/onflows/telemetry-backend-go/internal/models"
)

// Result bundles the three output sequences for one activity.
type Result struct {
	Rows      []models.CanonicalRow
	Artifacts []models.Artifact
	Windows   []models.WindowAggregate
}

// Run executes the three stages in order. Each stage fully consumes the
// previous stage's output; artifacts and windows are both derived
// independently from the same canonical rows.
func Run(raw *models.RawStreamSet, startUTC time.Time, th Thresholds) Result {
	rows := ValidateStreams(raw, th)
	return Result{
		Rows:      rows,
		Artifacts: DetectArtifacts(rows, th),
		Windows:   AggregateWindows(rows, startUTC, th),
	}
}
