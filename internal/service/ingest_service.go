package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/onflows/telemetry-backend-go/internal/models"
	"github.com/onflows/telemetry-backend-go/internal/pipeline"
	"github.com/onflows/telemetry-backend-go/internal/repository"
	"github.com/onflows/telemetry-backend-go/internal/strava"
)

// IngestService runs the quality pipeline for one activity at a time and
// persists the three output sequences. The pipeline itself is pure; all
// I/O lives here.
type IngestService struct {
	activityRepo *repository.ActivityRepository
	rowRepo      *repository.RowRepository
	artifactRepo *repository.ArtifactRepository
	windowRepo   *repository.WindowRepository
	thresholds   pipeline.Thresholds
}

// NewIngestService creates a new ingest service
func NewIngestService(
	activityRepo *repository.ActivityRepository,
	rowRepo *repository.RowRepository,
	artifactRepo *repository.ArtifactRepository,
	windowRepo *repository.WindowRepository,
	thresholds pipeline.Thresholds,
) *IngestService {
	return &IngestService{
		activityRepo: activityRepo,
		rowRepo:      rowRepo,
		artifactRepo: artifactRepo,
		windowRepo:   windowRepo,
		thresholds:   thresholds,
	}
}

// ProcessStreams validates, scans and aggregates one activity's streams
// payload, then stores rows, artifacts and window aggregates. An empty time
// stream produces an empty result and stores nothing.
func (s *IngestService) ProcessStreams(activityID int64, sportType string, startUTC time.Time, windowS int, streams strava.StreamSet) (*models.ProcessResult, error) {
	th := s.thresholds
	if windowS > 0 {
		th.WindowS = windowS
	}

	raw := streams.ToRawStreams()
	result := pipeline.Run(raw, startUTC, th)
	if len(result.Rows) == 0 {
		log.Printf("[IngestService] activity %d: empty time stream, nothing to store", activityID)
		return &models.ProcessResult{ActivityID: activityID, Artifacts: []models.Artifact{}}, nil
	}

	if err := s.rowRepo.UpsertRows(activityID, result.Rows); err != nil {
		return nil, fmt.Errorf("failed to store rows: %w", err)
	}
	if err := s.artifactRepo.Replace(activityID, result.Artifacts); err != nil {
		return nil, fmt.Errorf("failed to store artifacts: %w", err)
	}
	if err := s.windowRepo.UpsertWindows(activityID, result.Windows); err != nil {
		return nil, fmt.Errorf("failed to store windows: %w", err)
	}

	activity := summarize(activityID, sportType, startUTC, result.Rows)
	if err := s.activityRepo.Upsert(activity); err != nil {
		return nil, fmt.Errorf("failed to store activity: %w", err)
	}

	log.Printf("[IngestService] activity %d: %d rows, %d artifacts, %d windows",
		activityID, len(result.Rows), len(result.Artifacts), len(result.Windows))

	artifacts := result.Artifacts
	if artifacts == nil {
		artifacts = []models.Artifact{}
	}
	return &models.ProcessResult{
		ActivityID: activityID,
		Rows:       len(result.Rows),
		Windows:    len(result.Windows),
		Artifacts:  artifacts,
	}, nil
}

// ImportLastN pulls the most recent activities through the Strava client
// and processes each one. Activities without a time stream are skipped.
func (s *IngestService) ImportLastN(ctx context.Context, client *strava.Client, n int) (int, error) {
	if n < 1 {
		n = 30
	}

	activities, err := client.ListActivities(ctx, 1, n)
	if err != nil {
		return 0, fmt.Errorf("failed to list activities: %w", err)
	}

	imported := 0
	for _, a := range activities {
		streams, err := client.GetActivityStreams(ctx, a.ID)
		if err != nil {
			return imported, fmt.Errorf("failed to fetch streams for activity %d: %w", a.ID, err)
		}

		res, err := s.ProcessStreams(a.ID, a.SportType, a.StartDate, 0, streams)
		if err != nil {
			return imported, fmt.Errorf("failed to process activity %d: %w", a.ID, err)
		}
		if res.Rows > 0 {
			imported++
		}
	}

	log.Printf("[IngestService] imported %d of %d activities", imported, len(activities))
	return imported, nil
}

// summarize derives the stored activity summary from the canonical rows.
func summarize(activityID int64, sportType string, startUTC time.Time, rows []models.CanonicalRow) *models.Activity {
	if sportType == "" {
		sportType = "Run"
	}

	activity := &models.Activity{
		ActivityID:   activityID,
		SportType:    sportType,
		StartUTC:     startUTC,
		ElapsedTimeS: rows[len(rows)-1].TsRelS + 1,
		ProcessedAt:  time.Now().UTC(),
	}

	var speedSum, hrSum float64
	speedN, hrN := 0, 0
	for i := range rows {
		if v := rows[i].SpeedMS; v != nil {
			speedSum += *v
			speedN++
		}
		if v := rows[i].HRBPM; v != nil {
			hrSum += *v
			hrN++
		}
		if v := rows[i].DistM; v != nil {
			activity.DistanceM = v
		}
	}
	if speedN > 0 {
		avg := speedSum / float64(speedN)
		activity.AvgSpeedMS = &avg
	}
	if hrN > 0 {
		avg := hrSum / float64(hrN)
		activity.AvgHRBPM = &avg
	}
	return activity
}
