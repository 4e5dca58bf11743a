package service

import (
	"math"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/model"
)

type DayCalories struct {
	Day      string `json:"day"`
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

type AnalyticsReport struct {
	Days               []DayCalories `json:"days"`
	MaxDayCalories     int           `json:"max_day_calories"`
	TotalMacros        model.Macros  `json:"total_macros"`
	TotalMacroGrams    int           `json:"total_macro_grams"`
	ProteinPercent     int           `json:"protein_percent"`
	CarbsPercent       int           `json:"carbs_percent"`
	FatsPercent        int           `json:"fats_percent"`
	AverageHealthScore float64       `json:"average_health_score"`
	MealCount          int           `json:"meal_count"`
}

// Last7Days totals calories per calendar day for the 7 days ending today,
// oldest first. The returned max has a floor of 1 so bar scaling never
// divides by zero.
func Last7Days(items []model.HistoryItem, now time.Time) ([]DayCalories, int) {
	days := make([]DayCalories, 0, 7)
	max := 1
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		total := SumCalories(FilterDay(items, day))
		days = append(days, DayCalories{
			Day:      day.Local().Format("Mon"),
			Date:     day.Local().Format("2006-01-02"),
			Calories: total,
		})
		if total > max {
			max = total
		}
	}
	return days, max
}

// MacroSharePercent converts macro totals into whole percentages of total
// grams. All zeros when the total is zero.
func MacroSharePercent(total model.Macros) (protein, carbs, fats int) {
	grams := total.Protein + total.Carbs + total.Fats
	if grams == 0 {
		return 0, 0, 0
	}
	pct := func(v int) int {
		return int(math.Round(float64(v) / float64(grams) * 100))
	}
	return pct(total.Protein), pct(total.Carbs), pct(total.Fats)
}

// AverageHealthScore reports ok=false for empty history; the caller must
// render a distinct no-data state instead of an average.
func AverageHealthScore(items []model.HistoryItem) (float64, bool) {
	if len(items) == 0 {
		return 0, false
	}
	total := 0
	for _, item := range items {
		total += item.Analysis.HealthScore
	}
	return float64(total) / float64(len(items)), true
}

// BuildAnalytics assembles the analytics view. Nil when there is no history.
func BuildAnalytics(items []model.HistoryItem, now time.Time) *AnalyticsReport {
	if len(items) == 0 {
		return nil
	}
	days, max := Last7Days(items, now)
	totalMacros := SumMacros(items)
	protein, carbs, fats := MacroSharePercent(totalMacros)
	avg, _ := AverageHealthScore(items)
	return &AnalyticsReport{
		Days:               days,
		MaxDayCalories:     max,
		TotalMacros:        totalMacros,
		TotalMacroGrams:    totalMacros.Protein + totalMacros.Carbs + totalMacros.Fats,
		ProteinPercent:     protein,
		CarbsPercent:       carbs,
		FatsPercent:        fats,
		AverageHealthScore: avg,
		MealCount:          len(items),
	}
}
