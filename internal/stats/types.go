// Package stats owns the persisted user statistics record and the daily
// study streak.
package stats

// UserStats is the aggregate progress record. Field names match the JSON
// record kept under the userStats key.
type UserStats struct {
	TotalWords     int    `json:"totalWords"`
	LearnedWords   int    `json:"learnedWords"`
	CorrectAnswers int    `json:"correctAnswers"`
	Streak         int    `json:"streak"`
	LastStudyDate  string `json:"lastStudyDate,omitempty"`
}

// normalize clamps counters that a hand-edited or corrupted record might
// carry below zero.
func (s *UserStats) normalize() {
	s.TotalWords = max(s.TotalWords, 0)
	s.LearnedWords = max(s.LearnedWords, 0)
	s.CorrectAnswers = max(s.CorrectAnswers, 0)
	s.Streak = max(s.Streak, 0)
}
