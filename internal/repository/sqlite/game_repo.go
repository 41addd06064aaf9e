// Package sqlite is the client-local game archive. It records finished
// games in a single-file database so past scores survive across runs.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iamasit07/dropblox-client/internal/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS game (
	game_id          TEXT PRIMARY KEY,
	mode             TEXT NOT NULL,
	score            INTEGER NOT NULL,
	total_moves      INTEGER NOT NULL,
	duration_seconds INTEGER NOT NULL,
	finished_at      INTEGER NOT NULL
);
`

type GameRepo struct {
	DB *sql.DB
}

// Open opens (creating if needed) the archive database at path.
func Open(path string) (*GameRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive database unreachable: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %v", err)
	}
	return &GameRepo{DB: db}, nil
}

func (r *GameRepo) Close() error {
	return r.DB.Close()
}

// SaveResult inserts or updates one finished game (UPSERT so a replayed
// game id cannot produce a duplicate row).
func (r *GameRepo) SaveResult(result domain.GameResult) error {
	query := `
	INSERT INTO game (game_id, mode, score, total_moves, duration_seconds, finished_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (game_id) DO UPDATE SET
		mode = EXCLUDED.mode,
		score = EXCLUDED.score,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at;
	`
	_, err := r.DB.Exec(query,
		result.GameID, result.Mode, result.Score,
		result.TotalMoves, result.DurationSeconds, result.FinishedAtUnix)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %v", err)
	}
	return nil
}

// GetHistory returns the most recently finished games, newest first.
func (r *GameRepo) GetHistory(limit int) ([]domain.GameResult, error) {
	query := `
	SELECT game_id, mode, score, total_moves, duration_seconds, finished_at
	FROM game
	ORDER BY finished_at DESC
	LIMIT ?;
	`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %v", err)
	}
	defer rows.Close()

	var games []domain.GameResult
	for rows.Next() {
		var result domain.GameResult
		err := rows.Scan(
			&result.GameID,
			&result.Mode,
			&result.Score,
			&result.TotalMoves,
			&result.DurationSeconds,
			&result.FinishedAtUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %v", err)
		}
		games = append(games, result)
	}
	return games, rows.Err()
}

// CleanupOldResults deletes archived games older than daysToKeep and
// returns how many were removed.
func (r *GameRepo) CleanupOldResults(daysToKeep int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -daysToKeep).Unix()
	res, err := r.DB.Exec(`DELETE FROM game WHERE finished_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up old game records: %v", err)
	}
	return res.RowsAffected()
}
