package engine

import (
	"sort"
	"time"

	"alcyxob/adaptive-coach/internal/domain"
)

// PerformanceMetrics summarises a window of recent workouts.
// It is recomputed on demand and never persisted.
type PerformanceMetrics struct {
	CompletionRate   float64 `json:"completionRate"`
	ConsistencyScore float64 `json:"consistencyScore"`
	DifficultyTrend  float64 `json:"difficultyTrend"`
	// RecentWorkouts is the analysed window, oldest first.
	RecentWorkouts []domain.Workout `json:"-"`
}

// AnalyzePattern aggregates recent workouts into PerformanceMetrics.
// The input slice is not modified. The profile is currently unused by the rules.
func AnalyzePattern(recent []domain.Workout, _ Catalog, _ *domain.User) PerformanceMetrics {
	if len(recent) == 0 {
		return PerformanceMetrics{RecentWorkouts: []domain.Workout{}}
	}

	var total float64
	for i := range recent {
		total += recent[i].CompletionRatio()
	}

	window := chronological(recent)
	return PerformanceMetrics{
		CompletionRate:   total / float64(len(recent)),
		ConsistencyScore: consistencyScore(window),
		DifficultyTrend:  difficultyTrend(window),
		RecentWorkouts:   window,
	}
}

// chronological returns a copy of workouts sorted by date, oldest first.
// Workouts on the same date keep their relative order.
func chronological(workouts []domain.Workout) []domain.Workout {
	sorted := make([]domain.Workout, len(workouts))
	copy(sorted, workouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// consistencyScore is 1 - variance(day gaps)/10, clamped to [0,1].
// Needs at least two workouts; sorted must be in date order.
func consistencyScore(sorted []domain.Workout) float64 {
	if len(sorted) < 2 {
		return 0
	}

	gaps := make([]float64, 0, len(sorted)-1)
	var sum float64
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
		gaps = append(gaps, gap)
		sum += gap
	}
	avg := sum / float64(len(gaps))

	var variance float64
	for _, gap := range gaps {
		variance += (gap - avg) * (gap - avg)
	}
	variance /= float64(len(gaps))

	return clamp(1-variance/10, 0, 1)
}

// difficultyTrend is mean(difficulty of later half) - mean(earlier half).
// On odd counts the earlier half is the smaller one. Needs at least three workouts.
func difficultyTrend(sorted []domain.Workout) float64 {
	if len(sorted) < 3 {
		return 0
	}
	mid := len(sorted) / 2
	return meanDifficulty(sorted[mid:]) - meanDifficulty(sorted[:mid])
}

func meanDifficulty(workouts []domain.Workout) float64 {
	var sum int
	for i := range workouts {
		sum += workouts[i].DifficultyScore
	}
	return float64(sum) / float64(len(workouts))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Since returns the calendar day that starts a window of days ending today.
func Since(now time.Time, days int) time.Time {
	return domain.Day(now).AddDate(0, 0, -days)
}
