package repository

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/onflows/telemetry-backend-go/internal/database"
	"github.com/onflows/telemetry-backend-go/internal/models"
)

// upsertChunkSize is how many records one transaction writes. Batching is
// a storage concern; the pipeline just yields full sequences.
const upsertChunkSize = 500

// RowRepository handles database operations for canonical rows
type RowRepository struct {
	db *sql.DB
}

// NewRowRepository creates a new canonical row repository
func NewRowRepository(db *sql.DB) *RowRepository {
	return &RowRepository{db: db}
}

// UpsertRows bulk-upserts the canonical rows of one activity in chunks
func (r *RowRepository) UpsertRows(activityID int64, rows []models.CanonicalRow) error {
	query := `INSERT INTO canonical_rows
		(activity_id, ts_rel_s, dist_m, speed_ms, hr_bpm, altitude_m, cadence, watts, lat, lng, grade, moving, low_speed_hr_inconsistent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (activity_id, ts_rel_s) DO UPDATE SET
			dist_m = excluded.dist_m,
			speed_ms = excluded.speed_ms,
			hr_bpm = excluded.hr_bpm,
			altitude_m = excluded.altitude_m,
			cadence = excluded.cadence,
			watts = excluded.watts,
			lat = excluded.lat,
			lng = excluded.lng,
			grade = excluded.grade,
			moving = excluded.moving,
			low_speed_hr_inconsistent = excluded.low_speed_hr_inconsistent`

	for start := 0; start < len(rows); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		err := database.Transaction(func(tx *sql.Tx) error {
			stmt, err := tx.Prepare(query)
			if err != nil {
				return fmt.Errorf("failed to prepare row upsert: %w", err)
			}
			defer stmt.Close()

			for i := range chunk {
				row := &chunk[i]
				_, err := stmt.Exec(
					activityID, row.TsRelS, row.DistM, row.SpeedMS, row.HRBPM,
					row.AltitudeM, row.Cadence, row.Watts, row.Lat, row.Lng,
					row.Grade, boolToInt(row.Moving), boolToInt(row.LowSpeedHRInconsistent),
				)
				if err != nil {
					return fmt.Errorf("failed to upsert row ts=%d: %w", row.TsRelS, err)
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

// GetRows retrieves canonical rows for one activity with time-range
// filtering and pagination
func (r *RowRepository) GetRows(activityID int64, filter models.RowFilter) (*models.RowsResponse, error) {
	where := "WHERE activity_id = ?"
	args := []interface{}{activityID}

	if filter.StartTs > 0 {
		where += " AND ts_rel_s >= ?"
		args = append(args, filter.StartTs)
	}
	if filter.EndTs > 0 {
		where += " AND ts_rel_s <= ?"
		args = append(args, filter.EndTs)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM canonical_rows " + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 1000
	}
	if filter.PageSize > 10000 {
		filter.PageSize = 10000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := `SELECT ts_rel_s, dist_m, speed_ms, hr_bpm, altitude_m, cadence,
		watts, lat, lng, grade, moving, low_speed_hr_inconsistent
		FROM canonical_rows ` + where + ` ORDER BY ts_rel_s LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, offset)

	dbRows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer dbRows.Close()

	var rows []models.CanonicalRow
	for dbRows.Next() {
		var row models.CanonicalRow
		var moving, inconsistent int
		err := dbRows.Scan(
			&row.TsRelS, &row.DistM, &row.SpeedMS, &row.HRBPM, &row.AltitudeM,
			&row.Cadence, &row.Watts, &row.Lat, &row.Lng, &row.Grade,
			&moving, &inconsistent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row.Moving = moving != 0
		row.LowSpeedHRInconsistent = inconsistent != 0
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, err
	}

	return &models.RowsResponse{
		Data:       rows,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
