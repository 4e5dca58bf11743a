// Package store persists per-user application records as JSON values in a
// flat key namespace backed by SQLite: a plain currentUser pointer plus one
// record each for profile, meal history, and streak per username.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ccorchooo/CalAIFree/internal/model"
)

// ErrCorruptRecord marks a stored value that exists but does not decode.
// Callers fall back to an empty/absent value rather than failing the session.
var ErrCorruptRecord = errors.New("corrupt record")

const currentUserKey = "currentUser"

func ProfileKey(username string) string { return "userProfile_" + username }
func HistoryKey(username string) string { return "mealHistory_" + username }
func StreakKey(username string) string  { return "streakData_" + username }

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get record %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO records(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set record %q: %w", key, err)
	}
	return nil
}

func (s *Store) delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

// CurrentUser returns the logged-in username, if any.
func (s *Store) CurrentUser() (string, bool, error) {
	return s.get(currentUserKey)
}

func (s *Store) SetCurrentUser(username string) error {
	return s.set(currentUserKey, username)
}

func (s *Store) ClearCurrentUser() error {
	return s.delete(currentUserKey)
}

// HasProfile reports whether a profile record exists for the username,
// regardless of whether it decodes.
func (s *Store) HasProfile(username string) (bool, error) {
	_, ok, err := s.get(ProfileKey(username))
	return ok, err
}

// Profile returns nil with no error when no record exists, and nil with a
// wrapped ErrCorruptRecord when the stored value does not decode.
func (s *Store) Profile(username string) (*model.UserProfile, error) {
	raw, ok, err := s.get(ProfileKey(username))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var p model.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile for %q: %w: %w", username, ErrCorruptRecord, err)
	}
	return &p, nil
}

func (s *Store) SaveProfile(username string, p model.UserProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile for %q: %w", username, err)
	}
	return s.set(ProfileKey(username), string(raw))
}

func (s *Store) DeleteProfile(username string) error {
	return s.delete(ProfileKey(username))
}

// History returns the stored meal history, newest first. A missing record is
// an empty history; a corrupt one returns ErrCorruptRecord.
func (s *Store) History(username string) ([]model.HistoryItem, error) {
	raw, ok, err := s.get(HistoryKey(username))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.HistoryItem{}, nil
	}
	var items []model.HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode history for %q: %w: %w", username, ErrCorruptRecord, err)
	}
	return items, nil
}

func (s *Store) SaveHistory(username string, items []model.HistoryItem) error {
	if items == nil {
		items = []model.HistoryItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history for %q: %w", username, err)
	}
	return s.set(HistoryKey(username), string(raw))
}

func (s *Store) DeleteHistory(username string) error {
	return s.delete(HistoryKey(username))
}

// Streak returns the stored streak state, zero-valued when absent.
func (s *Store) Streak(username string) (model.StreakState, error) {
	raw, ok, err := s.get(StreakKey(username))
	if err != nil {
		return model.StreakState{}, err
	}
	if !ok {
		return model.StreakState{}, nil
	}
	var st model.StreakState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return model.StreakState{}, fmt.Errorf("decode streak for %q: %w: %w", username, ErrCorruptRecord, err)
	}
	return st, nil
}

func (s *Store) SaveStreak(username string, st model.StreakState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode streak for %q: %w", username, err)
	}
	return s.set(StreakKey(username), string(raw))
}

func (s *Store) DeleteStreak(username string) error {
	return s.delete(StreakKey(username))
}

type Record struct {
	Key   string
	Value string
}

// Records lists every stored record, for integrity checks.
func (s *Store) Records() ([]Record, error) {
	rows, err := s.db.Query(`SELECT key, value FROM records ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Key, &r.Value); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// DeleteRecord removes an arbitrary record by key, for doctor fixes.
func (s *Store) DeleteRecord(key string) error {
	return s.delete(key)
}
