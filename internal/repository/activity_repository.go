package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/onflows/telemetry-backend-go/internal/models"
)

// ActivityRepository handles database operations for activity summaries
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Upsert inserts or replaces one activity summary
func (r *ActivityRepository) Upsert(a *models.Activity) error {
	query := `INSERT INTO activities
		(activity_id, sport_type, start_utc, elapsed_time_s, distance_m, avg_speed_ms, avg_hr_bpm, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (activity_id) DO UPDATE SET
			sport_type = excluded.sport_type,
			start_utc = excluded.start_utc,
			elapsed_time_s = excluded.elapsed_time_s,
			distance_m = excluded.distance_m,
			avg_speed_ms = excluded.avg_speed_ms,
			avg_hr_bpm = excluded.avg_hr_bpm,
			processed_at = excluded.processed_at`

	_, err := r.db.Exec(query,
		a.ActivityID, a.SportType, a.StartUTC.UTC().Format(time.RFC3339),
		a.ElapsedTimeS, a.DistanceM, a.AvgSpeedMS, a.AvgHRBPM,
		a.ProcessedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}
	return nil
}

// List retrieves stored activities ordered by start time, newest first
func (r *ActivityRepository) List(limit int) ([]models.Activity, error) {
	if limit < 1 {
		limit = 50
	}

	query := `SELECT activity_id, sport_type, start_utc, elapsed_time_s,
		distance_m, avg_speed_ms, avg_hr_bpm, processed_at
		FROM activities ORDER BY start_utc DESC LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// GetByID retrieves one activity summary, nil if not stored
func (r *ActivityRepository) GetByID(activityID int64) (*models.Activity, error) {
	query := `SELECT activity_id, sport_type, start_utc, elapsed_time_s,
		distance_m, avg_speed_ms, avg_hr_bpm, processed_at
		FROM activities WHERE activity_id = ?`

	rows, err := r.db.Query(query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanActivity(rows)
}

func scanActivity(rows *sql.Rows) (*models.Activity, error) {
	var a models.Activity
	var startUTC, processedAt string
	err := rows.Scan(
		&a.ActivityID, &a.SportType, &startUTC, &a.ElapsedTimeS,
		&a.DistanceM, &a.AvgSpeedMS, &a.AvgHRBPM, &processedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}
	if a.StartUTC, err = time.Parse(time.RFC3339, startUTC); err != nil {
		return nil, fmt.Errorf("failed to parse start_utc: %w", err)
	}
	if a.ProcessedAt, err = time.Parse(time.RFC3339, processedAt); err != nil {
		return nil, fmt.Errorf("failed to parse processed_at: %w", err)
	}
	return &a, nil
}
