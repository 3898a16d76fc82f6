package stats

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name       string
		prev       UserStats
		today      string
		wantStreak int
	}{
		{"first activity", UserStats{}, "2024-03-10", 1},
		{"same day keeps streak", UserStats{Streak: 4, LastStudyDate: "2024-03-10"}, "2024-03-10", 4},
		{"consecutive day extends", UserStats{Streak: 4, LastStudyDate: "2024-03-09"}, "2024-03-10", 5},
		{"gap resets", UserStats{Streak: 4, LastStudyDate: "2024-03-08"}, "2024-03-10", 1},
		{"month boundary", UserStats{Streak: 2, LastStudyDate: "2024-02-29"}, "2024-03-01", 3},
		{"year boundary", UserStats{Streak: 9, LastStudyDate: "2023-12-31"}, "2024-01-01", 10},
		{"future date resets", UserStats{Streak: 7, LastStudyDate: "2024-03-11"}, "2024-03-10", 1},
		{"malformed date resets", UserStats{Streak: 7, LastStudyDate: "Sun Mar 10 2024"}, "2024-03-10", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, date := NextStreak(tt.prev, tt.today)
			if streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", streak, tt.wantStreak)
			}
			if date != tt.today {
				t.Errorf("lastStudyDate = %q, want %q", date, tt.today)
			}
		})
	}
}

func TestNextStreakSameDayIsIdempotent(t *testing.T) {
	st := UserStats{Streak: 2, LastStudyDate: "2024-03-09"}
	st.Streak, st.LastStudyDate = NextStreak(st, "2024-03-10")
	st.Streak, st.LastStudyDate = NextStreak(st, "2024-03-10")
	if st.Streak != 3 {
		t.Errorf("streak after two same-day activities = %d, want 3", st.Streak)
	}
}

func TestTodayUsesLocation(t *testing.T) {
	// 23:30 UTC on the 9th is already the 10th in UTC+2.
	utc := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	plus2 := utc.In(time.FixedZone("UTC+2", 2*60*60))

	if got := Today(utc); got != "2024-03-09" {
		t.Errorf("Today(utc) = %q", got)
	}
	if got := Today(plus2); got != "2024-03-10" {
		t.Errorf("Today(+2) = %q", got)
	}
}

func TestStreakAlive(t *testing.T) {
	tests := []struct {
		st   UserStats
		want bool
	}{
		{UserStats{}, false},
		{UserStats{Streak: 3, LastStudyDate: "2024-03-10"}, true},
		{UserStats{Streak: 3, LastStudyDate: "2024-03-09"}, true},
		{UserStats{Streak: 3, LastStudyDate: "2024-03-08"}, false},
		{UserStats{Streak: 3, LastStudyDate: "bad"}, false},
	}
	for _, tt := range tests {
		if got := StreakAlive(tt.st, "2024-03-10"); got != tt.want {
			t.Errorf("StreakAlive(%+v) = %v, want %v", tt.st, got, tt.want)
		}
	}
}
