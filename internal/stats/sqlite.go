// Package stats keeps the append-only round log. The session notifies it
// once per completed round and never reads it back; the results page shows
// aggregates from here.
package stats

import (
	"database/sql"
	"embed"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/game"
)

//go:embed schema.sql
var embeddedSchema embed.FS

// Store persists round summaries to sqlite
type Store struct {
	db *sql.DB
}

// New wraps an open database handle
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (or creates) the database at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	s := New(db)
	if err := s.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema applies the embedded schema
func (s *Store) InitSchema() error {
	b, err := embeddedSchema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.db.Exec(strings.TrimSpace(string(b)))
	return err
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRound implements game.RoundSink. Persistence here is best-effort:
// a failed insert is logged and the game carries on.
func (s *Store) RecordRound(summary game.RoundSummary) {
	if err := s.insertRound(summary); err != nil {
		log.Printf("stats: recording round %d for %s: %v", summary.RoundNumber, summary.SessionCode, err)
	}
}

func (s *Store) insertRound(sum game.RoundSummary) error {
	_, err := s.db.Exec(`
INSERT INTO rounds(
    session_code, round_number, word, category,
    imposter_name, imposter_number, voted_out, crew_won,
    imposter_points, correct_votes, crew_count, started_at, ended_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SessionCode, sum.RoundNumber, sum.Word, sum.Category,
		sum.ImposterName, sum.ImposterNumber, sum.VotedOut, sum.CrewWon,
		sum.ImposterPoints, sum.CorrectVotes, sum.CrewCount, sum.StartedAt, sum.EndedAt)
	return err
}

// SessionTotals aggregates the round log for one session
type SessionTotals struct {
	RoundsPlayed int
	CrewWins     int
}

// Totals returns the aggregate for a session code. A session with no
// recorded rounds yields zero totals, not an error.
func (s *Store) Totals(sessionCode string) (SessionTotals, error) {
	var t SessionTotals
	err := s.db.QueryRow(`
SELECT COUNT(1), IFNULL(SUM(crew_won), 0)
FROM rounds
WHERE session_code = ?`, sessionCode).Scan(&t.RoundsPlayed, &t.CrewWins)
	if err != nil {
		return SessionTotals{}, err
	}
	return t, nil
}

// RecentRounds returns up to limit most recent rounds for a session,
// newest first.
func (s *Store) RecentRounds(sessionCode string, limit int) ([]game.RoundSummary, error) {
	rows, err := s.db.Query(`
SELECT round_number, word, category, imposter_name, imposter_number,
       voted_out, crew_won, imposter_points, correct_votes, crew_count,
       started_at, ended_at
FROM rounds
WHERE session_code = ?
ORDER BY id DESC
LIMIT ?`, sessionCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.RoundSummary
	for rows.Next() {
		sum := game.RoundSummary{SessionCode: sessionCode}
		if err := rows.Scan(&sum.RoundNumber, &sum.Word, &sum.Category,
			&sum.ImposterName, &sum.ImposterNumber, &sum.VotedOut, &sum.CrewWon,
			&sum.ImposterPoints, &sum.CorrectVotes, &sum.CrewCount,
			&sum.StartedAt, &sum.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
