package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/model"
	"github.com/ccorchooo/CalAIFree/internal/store"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrNotLoggedIn   = errors.New("not logged in")
)

// Session is the loaded state for one user, passed explicitly to every
// operation that touches it. There is no ambient current-user global.
type Session struct {
	Username string
	Profile  *model.UserProfile
	History  []model.HistoryItem
	Streak   model.StreakState
}

// NormalizeUsername folds the username to the form used as key material.
func NormalizeUsername(username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	return username, nil
}

// loadSessionData reads profile, history, and streak for a user, applying
// the corrupt-record fallbacks: profile nil (forces re-onboarding), history
// empty, streak zero. The load-time streak staleness check is applied and,
// when it fires, persisted.
func loadSessionData(st *store.Store, username string, now time.Time) (*Session, error) {
	sess := &Session{Username: username}

	profile, err := st.Profile(username)
	if err != nil && !errors.Is(err, store.ErrCorruptRecord) {
		return nil, err
	}
	sess.Profile = profile

	history, err := st.History(username)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptRecord) {
			return nil, err
		}
		history = []model.HistoryItem{}
	}
	sess.History = history

	streak, err := st.Streak(username)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptRecord) {
			return nil, err
		}
		streak = model.StreakState{}
	}
	if reset, changed := ResetIfStale(streak, now); changed {
		streak = reset
		if err := st.SaveStreak(username, streak); err != nil {
			return nil, err
		}
	}
	sess.Streak = streak

	return sess, nil
}

// Login succeeds only when a profile record already exists for the
// username. This is identity selection, not authentication; no credential
// is checked anywhere.
func Login(st *store.Store, username string, now time.Time) (*Session, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	ok, err := st.HasProfile(username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	sess, err := loadSessionData(st, username, now)
	if err != nil {
		return nil, err
	}
	if err := st.SetCurrentUser(username); err != nil {
		return nil, err
	}
	return sess, nil
}

// SignUp establishes a new username with no profile and empty history and
// streak; the next step is onboarding. Leftover history or streak records
// under the name (from an earlier deleted or abandoned account) are erased so
// the new account starts clean.
func SignUp(st *store.Store, username string) (*Session, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	ok, err := st.HasProfile(username)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	}
	if err := st.DeleteHistory(username); err != nil {
		return nil, err
	}
	if err := st.DeleteStreak(username); err != nil {
		return nil, err
	}
	if err := st.SetCurrentUser(username); err != nil {
		return nil, err
	}
	return &Session{Username: username, History: []model.HistoryItem{}}, nil
}

// Logout clears the current-user pointer only; persisted data survives.
func Logout(st *store.Store) error {
	return st.ClearCurrentUser()
}

// DeleteAccount erases the user's profile, history, and streak records,
// then logs out.
func DeleteAccount(st *store.Store, username string) error {
	username, err := NormalizeUsername(username)
	if err != nil {
		return err
	}
	if err := st.DeleteProfile(username); err != nil {
		return err
	}
	if err := st.DeleteHistory(username); err != nil {
		return err
	}
	if err := st.DeleteStreak(username); err != nil {
		return err
	}
	return Logout(st)
}

// LoadSession resolves the logged-in user and loads their state.
func LoadSession(st *store.Store, now time.Time) (*Session, error) {
	username, ok, err := st.CurrentUser()
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(username) == "" {
		return nil, ErrNotLoggedIn
	}
	return loadSessionData(st, username, now)
}
