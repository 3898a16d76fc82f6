package stats

import "time"

// DateLayout is the calendar-day format stored in LastStudyDate.
const DateLayout = "2006-01-02"

// Today returns the calendar day of now in now's location. It is the only
// place a wall-clock instant becomes a study day.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// NextStreak computes the streak after a study activity on today.
//
// Studying again on the same day keeps the streak, studying on the day after
// the last study day extends it, and anything else (first activity, a gap,
// a malformed or future date) starts over at 1. The returned date is today.
func NextStreak(prev UserStats, today string) (streak int, lastStudyDate string) {
	day, err := time.Parse(DateLayout, today)
	if err != nil {
		return 1, today
	}

	last, err := time.Parse(DateLayout, prev.LastStudyDate)
	if err != nil {
		return 1, today
	}

	switch {
	case last.Equal(day):
		return prev.Streak, today
	case last.Equal(day.AddDate(0, 0, -1)):
		return prev.Streak + 1, today
	default:
		return 1, today
	}
}

// StreakAlive reports whether a streak is still current on today: the last
// study day is today or yesterday.
func StreakAlive(s UserStats, today string) bool {
	if s.Streak == 0 {
		return false
	}
	day, err := time.Parse(DateLayout, today)
	if err != nil {
		return false
	}
	last, err := time.Parse(DateLayout, s.LastStudyDate)
	if err != nil {
		return false
	}
	return last.Equal(day) || last.Equal(day.AddDate(0, 0, -1))
}
