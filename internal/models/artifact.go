package models

// Artifact kinds emitted by the detector.
const (
	ArtifactMissingDataRatio = "missing_data_ratio"
	ArtifactZeroSpeedPause   = "zero_speed_pause"
	ArtifactGPSJump          = "gps_jump"
)

// Artifact severities.
const (
	SeverityInfo        = 1
	SeveritySignificant = 2
)

// Artifact flags a closed interval of activity-relative seconds whose
// recording is untrustworthy. Artifacts are the only channel through which
// data-quality problems are surfaced; processing itself never fails on them.
type Artifact struct {
	TsRelSFrom int    `json:"ts_rel_s_from" db:"ts_rel_s_from"`
	TsRelSTo   int    `json:"ts_rel_s_to" db:"ts_rel_s_to"`
	Kind       string `json:"kind" db:"kind"`
	Severity   int    `json:"severity" db:"severity"`
	Note       string `json:"note" db:"note"`
}

// ArtifactFilter represents filter parameters for querying artifacts.
type ArtifactFilter struct {
	Kind        string `form:"kind"`
	MinSeverity int    `form:"minSeverity"`
}
