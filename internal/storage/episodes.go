package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EpisodeRecord is the outcome of one finished episode.
type EpisodeRecord struct {
	ID            string // uuid, assigned on save when empty
	GameID        string
	Mode          string
	Seed          int64
	Steps         int
	Reward        float64
	LevelComplete bool
	EndReason     string
	CreatedAt     time.Time
}

// EpisodeStats aggregates the recorded episodes of one game.
type EpisodeStats struct {
	GameID     string
	Episodes   int
	Completed  int
	BestReward float64
	AvgReward  float64
	AvgSteps   float64
}

// CompletionRate returns the share of episodes that finished the level.
func (s EpisodeStats) CompletionRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Episodes)
}

// SaveEpisode records a finished episode and returns its ID.
func (s *Store) SaveEpisode(rec EpisodeRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO episodes (id, game_id, mode, seed, steps, reward, level_complete, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.Mode, rec.Seed, rec.Steps, rec.Reward, rec.LevelComplete, rec.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save episode: %w", err)
	}
	return rec.ID, nil
}

// RecentEpisodes returns the newest episodes first. An empty gameID
// returns episodes of every game.
func (s *Store) RecentEpisodes(gameID string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, mode, seed, steps, reward, level_complete, end_reason, created_at
		 FROM episodes
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var out []EpisodeRecord
	for rows.Next() {
		var rec EpisodeRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.Mode, &rec.Seed, &rec.Steps,
			&rec.Reward, &rec.LevelComplete, &rec.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan episode: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// GetEpisodeStats aggregates every recorded episode of a game.
func (s *Store) GetEpisodeStats(gameID string) (EpisodeStats, error) {
	st := EpisodeStats{GameID: gameID}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(level_complete), 0), COALESCE(MAX(reward), 0),
		        COALESCE(AVG(reward), 0), COALESCE(AVG(steps), 0)
		 FROM episodes WHERE game_id = ?`,
		gameID,
	).Scan(&st.Episodes, &st.Completed, &st.BestReward, &st.AvgReward, &st.AvgSteps)
	if err != nil {
		return EpisodeStats{}, fmt.Errorf("storage: cannot get episode stats: %w", err)
	}
	return st, nil
}
