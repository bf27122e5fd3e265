package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ymachida/pomogoal/internal/logger"
)

// Logical keys in the kv table. The timer path writes only keyCounter
// and the goal path writes keyGoals/keyHistory, so the two never race
// on the same row.
const (
	keyGoals   = "goals"
	keyHistory = "history"
	keyCounter = "today_pomodoros"
	keyTasks   = "tasks"
)

// getRaw reads one value. Any failure degrades to "absent": callers
// always have a usable default and the user never sees a storage error.
func (s *Store) getRaw(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		logger.Warn("read failed, treating as absent", "key", key, "err", err)
		return "", false
	}
	return value, true
}

// setRaw upserts one value. Failures are logged and otherwise ignored;
// in-memory state is not rolled back, so the UI may run ahead of disk
// until the next successful write.
func (s *Store) setRaw(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		logger.Error("write failed", "key", key, "err", err)
	}
}

// removeRaw deletes one value, best effort.
func (s *Store) removeRaw(key string) {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		logger.Error("delete failed", "key", key, "err", err)
	}
}

// getJSON decodes the value at key into out. A document that fails to
// decode is treated exactly like a missing key.
func (s *Store) getJSON(key string, out any) bool {
	raw, ok := s.getRaw(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Warn("undecodable value, treating as absent", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Store) setJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("encode failed", "key", key, "err", err)
		return
	}
	s.setRaw(key, string(data))
}
