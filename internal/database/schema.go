package database

import (
	"database/sql"
	"fmt"
)

// schema holds the full table set. The service owns exactly one schema, so
// tables are created idempotently at startup instead of through a
// migrations directory.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		activity_id    INTEGER PRIMARY KEY,
		sport_type     TEXT NOT NULL DEFAULT 'Run',
		start_utc      TIMESTAMP NOT NULL,
		elapsed_time_s INTEGER NOT NULL DEFAULT 0,
		distance_m     REAL,
		avg_speed_ms   REAL,
		avg_hr_bpm     REAL,
		processed_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS canonical_rows (
		activity_id               INTEGER NOT NULL,
		ts_rel_s                  INTEGER NOT NULL,
		dist_m                    REAL,
		speed_ms                  REAL,
		hr_bpm                    REAL,
		altitude_m                REAL,
		cadence                   REAL,
		watts                     REAL,
		lat                       REAL,
		lng                       REAL,
		grade                     REAL,
		moving                    INTEGER NOT NULL DEFAULT 0,
		low_speed_hr_inconsistent INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (activity_id, ts_rel_s)
	)`,
	`CREATE TABLE IF NOT EXISTS artifacts (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		activity_id   INTEGER NOT NULL,
		ts_rel_s_from INTEGER NOT NULL,
		ts_rel_s_to   INTEGER NOT NULL,
		kind          TEXT NOT NULL,
		severity      INTEGER NOT NULL,
		note          TEXT NOT NULL DEFAULT '',
		UNIQUE (activity_id, kind, ts_rel_s_from, ts_rel_s_to)
	)`,
	`CREATE TABLE IF NOT EXISTS agg_windows (
		activity_id       INTEGER NOT NULL,
		window_s          INTEGER NOT NULL,
		win_idx           INTEGER NOT NULL,
		t_start           TIMESTAMP NOT NULL,
		t_end             TIMESTAMP NOT NULL,
		mean_speed_ms     REAL,
		p95_speed_ms      REAL,
		median_hr_bpm     REAL,
		hr_valid_fraction REAL NOT NULL DEFAULT 0,
		mean_grade        REAL,
		elev_delta_m      REAL,
		distance_delta_m  REAL,
		lat_center        REAL,
		lng_center        REAL,
		moving_fraction   REAL NOT NULL DEFAULT 0,
		n_points          INTEGER NOT NULL DEFAULT 0,
		gap_seconds       INTEGER NOT NULL DEFAULT 0,
		q_score           REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (activity_id, window_s, win_idx)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_artifacts_activity ON artifacts (activity_id, kind)`,
	`CREATE INDEX IF NOT EXISTS idx_agg_windows_q ON agg_windows (activity_id, q_score)`,
}

func applySchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
