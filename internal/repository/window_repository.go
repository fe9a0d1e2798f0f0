package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/onflows/telemetry-backend-go/internal/database"
	"github.com/onflows/telemetry-backend-go/internal/models"
)

// WindowRepository handles database operations for window aggregates
type WindowRepository struct {
	db *sql.DB
}

// NewWindowRepository creates a new window aggregate repository
func NewWindowRepository(db *sql.DB) *WindowRepository {
	return &WindowRepository{db: db}
}

// UpsertWindows bulk-upserts the window aggregates of one activity in chunks
func (r *WindowRepository) UpsertWindows(activityID int64, windows []models.WindowAggregate) error {
	query := `INSERT INTO agg_windows
		(activity_id, window_s, win_idx, t_start, t_end, mean_speed_ms, p95_speed_ms,
		 median_hr_bpm, hr_valid_fraction, mean_grade, elev_delta_m, distance_delta_m,
		 lat_center, lng_center, moving_fraction, n_points, gap_seconds, q_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (activity_id, window_s, win_idx) DO UPDATE SET
			t_start = excluded.t_start,
			t_end = excluded.t_end,
			mean_speed_ms = excluded.mean_speed_ms,
			p95_speed_ms = excluded.p95_speed_ms,
			median_hr_bpm = excluded.median_hr_bpm,
			hr_valid_fraction = excluded.hr_valid_fraction,
			mean_grade = excluded.mean_grade,
			elev_delta_m = excluded.elev_delta_m,
			distance_delta_m = excluded.distance_delta_m,
			lat_center = excluded.lat_center,
			lng_center = excluded.lng_center,
			moving_fraction = excluded.moving_fraction,
			n_points = excluded.n_points,
			gap_seconds = excluded.gap_seconds,
			q_score = excluded.q_score`

	for start := 0; start < len(windows); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(windows) {
			end = len(windows)
		}
		chunk := windows[start:end]

		err := database.Transaction(func(tx *sql.Tx) error {
			stmt, err := tx.Prepare(query)
			if err != nil {
				return fmt.Errorf("failed to prepare window upsert: %w", err)
			}
			defer stmt.Close()

			for i := range chunk {
				w := &chunk[i]
				_, err := stmt.Exec(
					activityID, w.WindowS, w.WinIdx,
					w.TStart.UTC().Format(time.RFC3339), w.TEnd.UTC().Format(time.RFC3339),
					w.MeanSpeedMS, w.P95SpeedMS, w.MedianHRBPM, w.HRValidFraction,
					w.MeanGrade, w.ElevDeltaM, w.DistanceDeltaM, w.LatCenter, w.LngCenter,
					w.MovingFraction, w.NPoints, w.GapSeconds, w.QScore,
				)
				if err != nil {
					return fmt.Errorf("failed to upsert window %d: %w", w.WinIdx, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GetWindows retrieves the window aggregates of one activity, optionally
// capped by q_score to surface low-trust windows
func (r *WindowRepository) GetWindows(activityID int64, filter models.WindowFilter) ([]models.WindowAggregate, error) {
	query := `SELECT window_s, win_idx, t_start, t_end, mean_speed_ms, p95_speed_ms,
		median_hr_bpm, hr_valid_fraction, mean_grade, elev_delta_m, distance_delta_m,
		lat_center, lng_center, moving_fraction, n_points, gap_seconds, q_score
		FROM agg_windows WHERE activity_id = ?`
	args := []interface{}{activityID}

	if filter.WindowS > 0 {
		query += " AND window_s = ?"
		args = append(args, filter.WindowS)
	}
	if filter.MaxQ != nil {
		query += " AND q_score <= ?"
		args = append(args, *filter.MaxQ)
	}
	query += " ORDER BY win_idx"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query windows: %w", err)
	}
	defer rows.Close()

	var windows []models.WindowAggregate
	for rows.Next() {
		var w models.WindowAggregate
		var tStart, tEnd string
		err := rows.Scan(
			&w.WindowS, &w.WinIdx, &tStart, &tEnd, &w.MeanSpeedMS, &w.P95SpeedMS,
			&w.MedianHRBPM, &w.HRValidFraction, &w.MeanGrade, &w.ElevDeltaM,
			&w.DistanceDeltaM, &w.LatCenter, &w.LngCenter, &w.MovingFraction,
			&w.NPoints, &w.GapSeconds, &w.QScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan window: %w", err)
		}
		if w.TStart, err = time.Parse(time.RFC3339, tStart); err != nil {
			return nil, fmt.Errorf("failed to parse t_start: %w", err)
		}
		if w.TEnd, err = time.Parse(time.RFC3339, tEnd); err != nil {
			return nil, fmt.Errorf("failed to parse t_end: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
