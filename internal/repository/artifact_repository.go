package repository

import (
	"database/sql"
	"fmt"

	"github.com/onflows/telemetry-backend-go/internal/database"
	"github.com/onflows/telemetry-backend-go/internal/models"
)

// ArtifactRepository handles database operations for data-quality artifacts
type ArtifactRepository struct {
	db *sql.DB
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *sql.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Replace swaps the stored artifact set of one activity for the given one.
// Reprocessing an activity must not leave stale intervals behind, so this
// is a delete-and-insert in a single transaction.
func (r *ArtifactRepository) Replace(activityID int64, artifacts []models.Artifact) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM artifacts WHERE activity_id = ?", activityID); err != nil {
			return fmt.Errorf("failed to clear artifacts: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO artifacts
			(activity_id, ts_rel_s_from, ts_rel_s_to, kind, severity, note)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare artifact insert: %w", err)
		}
		defer stmt.Close()

		for _, a := range artifacts {
			if _, err := stmt.Exec(activityID, a.TsRelSFrom, a.TsRelSTo, a.Kind, a.Severity, a.Note); err != nil {
				return fmt.Errorf("failed to insert artifact: %w", err)
			}
		}
		return nil
	})
}

// GetArtifacts retrieves the artifacts of one activity, optionally filtered
// by kind and minimum severity
func (r *ArtifactRepository) GetArtifacts(activityID int64, filter models.ArtifactFilter) ([]models.Artifact, error) {
	query := `SELECT ts_rel_s_from, ts_rel_s_to, kind, severity, note
		FROM artifacts WHERE activity_id = ?`
	args := []interface{}{activityID}

	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	if filter.MinSeverity > 0 {
		query += " AND severity >= ?"
		args = append(args, filter.MinSeverity)
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []models.Artifact
	for rows.Next() {
		var a models.Artifact
		if err := rows.Scan(&a.TsRelSFrom, &a.TsRelSTo, &a.Kind, &a.Severity, &a.Note); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
