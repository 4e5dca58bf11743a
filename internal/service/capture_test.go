package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/model"
	"github.com/ccorchooo/CalAIFree/internal/service"
)

var tinyJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

type stubAnalyzer struct {
	analysis model.MealAnalysis
	err      error
	calls    int
}

func (a *stubAnalyzer) AnalyzeMeal(ctx context.Context, jpeg []byte) (model.MealAnalysis, error) {
	a.calls++
	return a.analysis, a.err
}

func TestLogMealAppendsAndAdvancesStreak(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	analyzer := &stubAnalyzer{analysis: model.MealAnalysis{
		MealName: "Grilled Chicken Salad",
		Calories: 430,
		Macros:   model.Macros{Protein: 38, Carbs: 18, Fats: 22},
	}}

	if err := st.SaveHistory("alice", []model.HistoryItem{
		mealAt(t, "old", now.AddDate(0, 0, -1), 500, model.Macros{}, 5),
	}); err != nil {
		t.Fatalf("seed history: %v", err)
	}
	if err := st.SaveStreak("alice", model.StreakState{StreakCount: 2, LastDate: now.AddDate(0, 0, -1)}); err != nil {
		t.Fatalf("seed streak: %v", err)
	}

	result, err := service.LogMeal(context.Background(), st, analyzer, "alice", tinyJPEG, now)
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if result.Item.ID != fmt.Sprintf("%d", now.UnixMilli()) {
		t.Fatalf("item id = %q, want unix millis", result.Item.ID)
	}
	if !strings.HasPrefix(result.Item.Image, "data:image/jpeg;base64,") {
		t.Fatalf("image = %q, want a JPEG data URL", result.Item.Image)
	}
	if result.Streak.StreakCount != 3 {
		t.Fatalf("streak = %d, want 3", result.Streak.StreakCount)
	}

	history, err := st.History("alice")
	if err != nil {
		t.Fatalf("reload history: %v", err)
	}
	if len(history) != 2 || history[0].ID != result.Item.ID || history[1].ID != "old" {
		t.Fatalf("history order wrong: %v", history)
	}
}

func TestLogMealRejectsNonJPEG(t *testing.T) {
	st := newTestStore(t)
	analyzer := &stubAnalyzer{}
	_, err := service.LogMeal(context.Background(), st, analyzer, "alice", []byte("PNG..."), time.Now())
	if err == nil || !strings.Contains(err.Error(), "not a JPEG") {
		t.Fatalf("log meal with PNG: %v, want JPEG rejection", err)
	}
	if analyzer.calls != 0 {
		t.Fatalf("analyzer must not be called for a rejected image")
	}
}

func TestLogMealAnalysisFailureWritesNothing(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	analyzer := &stubAnalyzer{err: fmt.Errorf("model unavailable")}

	_, err := service.LogMeal(context.Background(), st, analyzer, "alice", tinyJPEG, now)
	if err == nil {
		t.Fatalf("expected analysis failure to propagate")
	}

	history, err := st.History("alice")
	if err != nil || len(history) != 0 {
		t.Fatalf("history after failed log = %v err=%v, want empty", history, err)
	}
	streak, err := st.Streak("alice")
	if err != nil || streak.StreakCount != 0 {
		t.Fatalf("streak after failed log = %+v err=%v, want zero", streak, err)
	}
}

func TestLogMealSameDayKeepsStreakCount(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	analyzer := &stubAnalyzer{analysis: model.MealAnalysis{MealName: "Oatmeal", Calories: 300}}

	first, err := service.LogMeal(context.Background(), st, analyzer, "bob", tinyJPEG, now)
	if err != nil {
		t.Fatalf("first log: %v", err)
	}
	if first.Streak.StreakCount != 1 {
		t.Fatalf("first streak = %d, want 1", first.Streak.StreakCount)
	}

	second, err := service.LogMeal(context.Background(), st, analyzer, "bob", tinyJPEG, now.Add(6*time.Hour))
	if err != nil {
		t.Fatalf("second log: %v", err)
	}
	if second.Streak.StreakCount != 1 {
		t.Fatalf("same-day streak = %d, want still 1", second.Streak.StreakCount)
	}
}
