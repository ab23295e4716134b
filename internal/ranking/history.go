package ranking

import "github.com/skillsmarket/skillsmarket/internal/models"

// historyDays is the sparkline window length
const historyDays = 7

// History7d builds the 7-day score history ending at today, oldest first.
// Days with no recorded point inherit the last known value rather than zero,
// so a quiet day does not produce a sawtooth in the sparkline. Days before
// the first recorded point are zero.
func History7d(points []models.DailyPoint, today int64) []float64 {
	byDay := make(map[int64]float64, len(points))
	for _, p := range points {
		byDay[p.Day] = p.Value
	}

	// Seed the carry with the newest point older than the window, if any
	var carry float64
	for _, p := range points {
		if p.Day < today-historyDays+1 {
			carry = p.Value
		}
	}

	history := make([]float64, 0, historyDays)
	for day := today - historyDays + 1; day <= today; day++ {
		if v, ok := byDay[day]; ok {
			carry = v
		}
		history = append(history, carry)
	}
	return history
}
