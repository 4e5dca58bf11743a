package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/db"
	"github.com/ccorchooo/CalAIFree/internal/model"
	"github.com/ccorchooo/CalAIFree/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
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
	return store.New(sqldb)
}

func mealAt(t *testing.T, id string, createdAt time.Time, calories int, macros model.Macros, healthScore int) model.HistoryItem {
	t.Helper()
	return model.HistoryItem{
		ID:    id,
		Image: "data:image/jpeg;base64,/9g=",
		Analysis: model.MealAnalysis{
			MealName:    "meal " + id,
			Ingredients: []string{"ingredient"},
			Calories:    calories,
			Macros:      macros,
			HealthScore: healthScore,
		},
		CreatedAt: createdAt,
	}
}
