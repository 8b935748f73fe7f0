package engine

// Recommend turns metrics into short coaching hints for the insights screen.
func Recommend(m PerformanceMetrics) []string {
	var out []string

	switch {
	case m.CompletionRate < 0.5:
		out = append(out,
			"Consider reducing workout intensity or duration",
			"Focus on building consistency before increasing difficulty")
	case m.CompletionRate > 0.9:
		out = append(out,
			"You're ready for more challenging workouts",
			"Consider adding weight or increasing reps")
	}

	if m.ConsistencyScore < 0.5 {
		out = append(out,
			"Try to maintain a more regular workout schedule",
			"Set reminders or find an accountability partner")
	}

	switch {
	case m.DifficultyTrend < -1:
		out = append(out, "Your workouts are getting easier - time to step it up!")
	case m.DifficultyTrend > 2:
		out = append(out, "Rapid difficulty increases detected - ensure adequate recovery")
	}

	if len(out) == 0 {
		out = append(out, "Great progress! Keep up the consistent effort")
	}
	return out
}

// PerformanceMessage is the one-line verdict shown next to the completion rate.
func PerformanceMessage(completionRate float64) string {
	switch {
	case completionRate >= 0.9:
		return "Excellent performance! You're crushing your workouts."
	case completionRate >= 0.7:
		return "Good progress! Keep up the consistent effort."
	case completionRate >= 0.5:
		return "Making progress. Consider adjusting your routine."
	default:
		return "Let's optimize your routine for better success."
	}
}
