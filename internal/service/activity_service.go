package service

import (
	"fmt"

	"github.com/onflows/telemetry-backend-go/internal/models"
	"github.com/onflows/telemetry-backend-go/internal/repository"
)

// ActivityService handles read paths for stored pipeline output
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	rowRepo      *repository.RowRepository
	artifactRepo *repository.ArtifactRepository
	windowRepo   *repository.WindowRepository
}

// NewActivityService creates a new activity service
func NewActivityService(
	activityRepo *repository.ActivityRepository,
	rowRepo *repository.RowRepository,
	artifactRepo *repository.ArtifactRepository,
	windowRepo *repository.WindowRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		rowRepo:      rowRepo,
		artifactRepo: artifactRepo,
		windowRepo:   windowRepo,
	}
}

// ListActivities returns stored activity summaries, newest first
func (s *ActivityService) ListActivities(limit int) ([]models.Activity, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	activities, err := s.activityRepo.List(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// GetRows returns canonical rows for one stored activity
func (s *ActivityService) GetRows(activityID int64, filter models.RowFilter) (*models.RowsResponse, error) {
	if err := s.ensureStored(activityID); err != nil {
		return nil, err
	}

	result, err := s.rowRepo.GetRows(activityID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return result, nil
}

// GetArtifacts returns the data-quality artifacts of one stored activity
func (s *ActivityService) GetArtifacts(activityID int64, filter models.ArtifactFilter) ([]models.Artifact, error) {
	if err := s.ensureStored(activityID); err != nil {
		return nil, err
	}

	artifacts, err := s.artifactRepo.GetArtifacts(activityID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get artifacts: %w", err)
	}
	return artifacts, nil
}

// GetWindows returns the window aggregates of one stored activity
func (s *ActivityService) GetWindows(activityID int64, filter models.WindowFilter) ([]models.WindowAggregate, error) {
	if err := s.ensureStored(activityID); err != nil {
		return nil, err
	}

	windows, err := s.windowRepo.GetWindows(activityID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get windows: %w", err)
	}
	return windows, nil
}

func (s *ActivityService) ensureStored(activityID int64) error {
	activity, err := s.activityRepo.GetByID(activityID)
	if err != nil {
		return fmt.Errorf("failed to look up activity: %w", err)
	}
	if activity == nil {
		return fmt.Errorf("activity %d not found", activityID)
	}
	return nil
}
