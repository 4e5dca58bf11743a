package service

import (
	"time"

	"github.com/ccorchooo/CalAIFree/internal/model"
)

// FilterDay keeps items whose capture instant falls on the same local
// calendar date as day, preserving order.
func FilterDay(items []model.HistoryItem, day time.Time) []model.HistoryItem {
	out := make([]model.HistoryItem, 0)
	for _, item := range items {
		if sameDay(item.CreatedAt, day) {
			out = append(out, item)
		}
	}
	return out
}

func SumCalories(items []model.HistoryItem) int {
	total := 0
	for _, item := range items {
		total += item.Analysis.Calories
	}
	return total
}

func SumMacros(items []model.HistoryItem) model.Macros {
	total := model.Macros{}
	for _, item := range items {
		total.Protein += item.Analysis.Macros.Protein
		total.Carbs += item.Analysis.Macros.Carbs
		total.Fats += item.Analysis.Macros.Fats
	}
	return total
}

type DayGroup struct {
	Label         string              `json:"label"`
	Date          string              `json:"date"`
	Items         []model.HistoryItem `json:"items"`
	TotalCalories int                 `json:"total_calories"`
}

// GroupByDay buckets history by local calendar date in encounter order,
// labeling the current and previous day Today and Yesterday. Items keep
// their order inside each group.
func GroupByDay(items []model.HistoryItem, now time.Time) []DayGroup {
	yesterday := now.AddDate(0, 0, -1)
	groups := make([]DayGroup, 0)
	index := map[string]int{}
	for _, item := range items {
		date := item.CreatedAt.Local().Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			label := item.CreatedAt.Local().Format("January 2, 2006")
			if sameDay(item.CreatedAt, now) {
				label = "Today"
			} else if sameDay(item.CreatedAt, yesterday) {
				label = "Yesterday"
			}
			index[date] = len(groups)
			groups = append(groups, DayGroup{Label: label, Date: date})
			i = index[date]
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].TotalCalories += item.Analysis.Calories
	}
	return groups
}

// DeleteItem removes the entry with the given id, leaving the order of the
// rest unchanged. Reports whether anything was removed.
func DeleteItem(items []model.HistoryItem, id string) ([]model.HistoryItem, bool) {
	out := make([]model.HistoryItem, 0, len(items))
	removed := false
	for _, item := range items {
		if item.ID == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
