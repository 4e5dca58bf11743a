package store_test

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/db"
	"github.com/ccorchooo/CalAIFree/internal/model"
	"github.com/ccorchooo/CalAIFree/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calai.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.New(sqldb), sqldb
}

func TestCurrentUserLifecycle(t *testing.T) {
	st, _ := newTestStore(t)

	if _, ok, err := st.CurrentUser(); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v, want absent", ok, err)
	}
	if err := st.SetCurrentUser("alice"); err != nil {
		t.Fatalf("set current user: %v", err)
	}
	username, ok, err := st.CurrentUser()
	if err != nil || !ok || username != "alice" {
		t.Fatalf("current user = %q ok=%v err=%v", username, ok, err)
	}
	if err := st.ClearCurrentUser(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := st.CurrentUser(); ok {
		t.Fatalf("current user should be cleared")
	}
}

func TestProfileRoundTripAndDefaults(t *testing.T) {
	st, _ := newTestStore(t)

	profile, err := st.Profile("alice")
	if err != nil || profile != nil {
		t.Fatalf("missing profile = %+v err=%v, want nil nil", profile, err)
	}
	if ok, err := st.HasProfile("alice"); err != nil || ok {
		t.Fatalf("has profile on empty store: ok=%v err=%v", ok, err)
	}

	want := model.UserProfile{
		Age: 30, Weight: 65, Height: 165,
		Gender: model.GenderFemale, ActivityLevel: model.ActivityModerate,
		CalorieGoal: 1620,
		MacroGoals:  model.Macros{Protein: 122, Carbs: 162, Fats: 54},
	}
	if err := st.SaveProfile("alice", want); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	got, err := st.Profile("alice")
	if err != nil || got == nil {
		t.Fatalf("profile: %v", err)
	}
	if *got != want {
		t.Fatalf("profile = %+v, want %+v", *got, want)
	}
	if ok, _ := st.HasProfile("alice"); !ok {
		t.Fatalf("HasProfile should report the saved profile")
	}
}

func TestHistoryRoundTripAndDefaults(t *testing.T) {
	st, _ := newTestStore(t)

	history, err := st.History("bob")
	if err != nil || history == nil || len(history) != 0 {
		t.Fatalf("missing history = %v err=%v, want empty slice", history, err)
	}

	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []model.HistoryItem{{
		ID:    "1710072000000",
		Image: "data:image/jpeg;base64,/9g=",
		Analysis: model.MealAnalysis{
			MealName:    "Avocado Toast",
			Ingredients: []string{"bread", "avocado"},
			Calories:    350,
			Macros:      model.Macros{Protein: 10, Carbs: 40, Fats: 18},
			HealthScore: 7,
			Reasoning:   "Whole grain bread with healthy fats.",
		},
		CreatedAt: created,
	}}
	if err := st.SaveHistory("bob", items); err != nil {
		t.Fatalf("save history: %v", err)
	}
	got, err := st.History("bob")
	if err != nil || len(got) != 1 {
		t.Fatalf("history: %v err=%v", got, err)
	}
	if got[0].Analysis.MealName != "Avocado Toast" || !got[0].CreatedAt.Equal(created) {
		t.Fatalf("history item = %+v", got[0])
	}

	if err := st.SaveHistory("bob", nil); err != nil {
		t.Fatalf("save nil history: %v", err)
	}
	got, err = st.History("bob")
	if err != nil || len(got) != 0 {
		t.Fatalf("nil history save should store an empty list, got %v err=%v", got, err)
	}
}

func TestStreakRoundTripAndDefaults(t *testing.T) {
	st, _ := newTestStore(t)

	streak, err := st.Streak("carol")
	if err != nil || streak.StreakCount != 0 || !streak.LastDate.IsZero() {
		t.Fatalf("missing streak = %+v err=%v, want zero", streak, err)
	}

	last := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	if err := st.SaveStreak("carol", model.StreakState{StreakCount: 4, LastDate: last}); err != nil {
		t.Fatalf("save streak: %v", err)
	}
	got, err := st.Streak("carol")
	if err != nil || got.StreakCount != 4 || !got.LastDate.Equal(last) {
		t.Fatalf("streak = %+v err=%v", got, err)
	}
}

func TestCorruptRecordsSurfaceSentinel(t *testing.T) {
	st, sqldb := newTestStore(t)

	for _, key := range []string{
		store.ProfileKey("alice"),
		store.HistoryKey("alice"),
		store.StreakKey("alice"),
	} {
		if _, err := sqldb.Exec(`INSERT INTO records(key, value) VALUES(?, '{broken')`, key); err != nil {
			t.Fatalf("insert corrupt %s: %v", key, err)
		}
	}

	if _, err := st.Profile("alice"); !errors.Is(err, store.ErrCorruptRecord) {
		t.Fatalf("profile err = %v, want ErrCorruptRecord", err)
	}
	if _, err := st.History("alice"); !errors.Is(err, store.ErrCorruptRecord) {
		t.Fatalf("history err = %v, want ErrCorruptRecord", err)
	}
	if _, err := st.Streak("alice"); !errors.Is(err, store.ErrCorruptRecord) {
		t.Fatalf("streak err = %v, want ErrCorruptRecord", err)
	}

	// Existence checks ignore decodability.
	if ok, err := st.HasProfile("alice"); err != nil || !ok {
		t.Fatalf("HasProfile on corrupt record: ok=%v err=%v, want true", ok, err)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	st, _ := newTestStore(t)

	if err := st.SaveProfile("alice", model.UserProfile{CalorieGoal: 1620}); err != nil {
		t.Fatalf("save alice: %v", err)
	}
	if err := st.SaveProfile("bob", model.UserProfile{CalorieGoal: 2340}); err != nil {
		t.Fatalf("save bob: %v", err)
	}
	if err := st.DeleteProfile("alice"); err != nil {
		t.Fatalf("delete alice: %v", err)
	}

	if profile, _ := st.Profile("alice"); profile != nil {
		t.Fatalf("alice's profile should be gone")
	}
	profile, err := st.Profile("bob")
	if err != nil || profile == nil || profile.CalorieGoal != 2340 {
		t.Fatalf("bob's profile = %+v err=%v, must be untouched", profile, err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	if _, ok, err := st.GetConfig(store.ConfigGeminiModel); err != nil || ok {
		t.Fatalf("unset config: ok=%v err=%v", ok, err)
	}
	if err := st.SetConfig(store.ConfigGeminiModel, "gemini-2.5-pro"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	value, ok, err := st.GetConfig(store.ConfigGeminiModel)
	if err != nil || !ok || value != "gemini-2.5-pro" {
		t.Fatalf("config = %q ok=%v err=%v", value, ok, err)
	}

	all, err := st.ListConfig()
	if err != nil || all[store.ConfigGeminiModel] != "gemini-2.5-pro" {
		t.Fatalf("list config = %v err=%v", all, err)
	}
}
