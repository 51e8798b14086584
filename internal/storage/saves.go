package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveSlot is one stored save state.
type SaveSlot struct {
	ID        string
	GameID    string
	Slot      int
	Data      []byte
	CreatedAt time.Time
}

// SaveState stores a serialized game state in a slot and returns its ID.
// Older saves in the slot are kept; the newest one wins on load.
func (s *Store) SaveState(gameID string, slot int, data []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO saves (id, game_id, slot, data) VALUES (?, ?, ?, ?)",
		id, gameID, slot, data,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save state: %w", err)
	}
	return id, nil
}

// LoadLatestState returns the newest save in a slot, or ErrNoSave.
func (s *Store) LoadLatestState(gameID string, slot int) (SaveSlot, error) {
	out := SaveSlot{GameID: gameID, Slot: slot}
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, data, created_at
		 FROM saves
		 WHERE game_id = ? AND slot = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
		gameID, slot,
	).Scan(&out.ID, &out.Data, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return SaveSlot{}, fmt.Errorf("%w for %s slot %d", ErrNoSave, gameID, slot)
	}
	if err != nil {
		return SaveSlot{}, fmt.Errorf("storage: cannot load state: %w", err)
	}
	out.CreatedAt = parseTime(createdAt)
	return out, nil
}

// ClearSaves deletes every save of a game.
func (s *Store) ClearSaves(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear saves: %w", err)
	}
	return nil
}
