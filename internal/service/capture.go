package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/model"
	"github.com/ccorchooo/CalAIFree/internal/store"
)

// Analyzer estimates a meal's nutrition from a JPEG image.
type Analyzer interface {
	AnalyzeMeal(ctx context.Context, jpeg []byte) (model.MealAnalysis, error)
}

var jpegMagic = []byte{0xFF, 0xD8}

type CaptureResult struct {
	Item   model.HistoryItem
	Streak model.StreakState
}

// LogMeal runs the capture pipeline for one image: encode as a data URL,
// analyze, prepend the new history item, advance the streak, and persist.
// On analysis failure nothing is written. The history write lands before
// the streak write; the load-time staleness check is the only recovery for
// a crash in between.
func LogMeal(ctx context.Context, st *store.Store, analyzer Analyzer, username string, jpeg []byte, now time.Time) (*CaptureResult, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(jpeg, jpegMagic) {
		return nil, fmt.Errorf("image is not a JPEG")
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)

	analysis, err := analyzer.AnalyzeMeal(ctx, jpeg)
	if err != nil {
		return nil, fmt.Errorf("analyze meal: %w", err)
	}

	item := model.HistoryItem{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Image:     dataURL,
		Analysis:  analysis,
		CreatedAt: now,
	}

	history, err := st.History(username)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptRecord) {
			return nil, err
		}
		history = []model.HistoryItem{}
	}
	history = append([]model.HistoryItem{item}, history...)
	if err := st.SaveHistory(username, history); err != nil {
		return nil, err
	}

	streak, err := st.Streak(username)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptRecord) {
			return nil, err
		}
		streak = model.StreakState{}
	}
	streak = AdvanceStreak(streak, now)
	if err := st.SaveStreak(username, streak); err != nil {
		return nil, err
	}

	return &CaptureResult{Item: item, Streak: streak}, nil
}
