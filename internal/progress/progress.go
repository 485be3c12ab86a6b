// Package progress computes the next per-topic training record after an
// answer. It owns no storage: callers load a record, call Advance and persist
// the result.
package progress

import (
	"fmt"
	"math"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// TopicProgress is the per (user, topic) training record.
//
// CurrentStreak is the displayed streak: raw consecutive correct answers
// across all history. LevelStreak and LevelMisses only drive difficulty
// changes and restart whenever a difficulty decision fires.
type TopicProgress struct {
	TotalAttempts     int `json:"total_attempts"`
	CorrectAttempts   int `json:"correct_attempts"`
	CurrentStreak     int `json:"current_streak"`
	BestStreak        int `json:"best_streak"`
	CurrentDifficulty int `json:"current_difficulty"`
	LevelStreak       int `json:"level_streak"`
	LevelMisses       int `json:"level_misses"`
}

// New returns an empty record at the easiest difficulty.
func New() TopicProgress {
	return TopicProgress{CurrentDifficulty: MinDifficulty}
}

// Accuracy is the percentage of correct attempts, 0 when nothing was attempted.
func (p TopicProgress) Accuracy() float64 {
	if p.TotalAttempts == 0 {
		return 0
	}
	return float64(p.CorrectAttempts) / float64(p.TotalAttempts) * 100
}

// Policy holds the difficulty adaptation thresholds.
type Policy struct {
	// PromoteStreak consecutive correct answers at the current level raise
	// the difficulty by one.
	PromoteStreak int
	// DemoteMisses consecutive incorrect answers lower it by one.
	DemoteMisses int
}

// DefaultPolicy promotes after 3 correct in a row and demotes after 2 misses.
func DefaultPolicy() Policy {
	return Policy{PromoteStreak: 3, DemoteMisses: 2}
}

// Validate checks the thresholds are usable.
func (pol Policy) Validate() error {
	if pol.PromoteStreak < 1 {
		return fmt.Errorf("promote streak must be at least 1, got %d", pol.PromoteStreak)
	}
	if pol.DemoteMisses < 1 {
		return fmt.Errorf("demote misses must be at least 1, got %d", pol.DemoteMisses)
	}
	return nil
}

// Advance returns the record that follows prev after one answer. It has no
// side effects and is safe to call concurrently for different records.
func (pol Policy) Advance(prev TopicProgress, correct bool) TopicProgress {
	next := prev
	next.CurrentDifficulty = ClampDifficulty(prev.CurrentDifficulty)
	next.TotalAttempts++

	if correct {
		next.CorrectAttempts++
		next.CurrentStreak++
		next.BestStreak = max(next.BestStreak, next.CurrentStreak)

		next.LevelMisses = 0
		next.LevelStreak++
		if next.LevelStreak >= pol.PromoteStreak {
			next.CurrentDifficulty = ClampDifficulty(next.CurrentDifficulty + 1)
			next.LevelStreak = 0
		}
		return next
	}

	next.CurrentStreak = 0
	next.LevelStreak = 0
	next.LevelMisses++
	if next.LevelMisses >= pol.DemoteMisses {
		next.CurrentDifficulty = ClampDifficulty(next.CurrentDifficulty - 1)
		next.LevelMisses = 0
	}
	return next
}

// Advance applies DefaultPolicy.
func Advance(prev TopicProgress, correct bool) TopicProgress {
	return DefaultPolicy().Advance(prev, correct)
}

// ClampDifficulty limits d to MinDifficulty..MaxDifficulty.
func ClampDifficulty(d int) int {
	return min(max(d, MinDifficulty), MaxDifficulty)
}

// RoundAccuracy rounds a percentage to one decimal place for display.
func RoundAccuracy(pct float64) float64 {
	return math.Round(pct*10) / 10
}

// Summary aggregates several topic records.
type Summary struct {
	TotalAttempts int     `json:"total_questions"`
	TotalCorrect  int     `json:"total_correct"`
	Accuracy      float64 `json:"overall_accuracy"`
}

// Summarize totals the attempts across records.
func Summarize(records []TopicProgress) Summary {
	var s Summary
	for _, r := range records {
		s.TotalAttempts += r.TotalAttempts
		s.TotalCorrect += r.CorrectAttempts
	}
	if s.TotalAttempts > 0 {
		s.Accuracy = RoundAccuracy(float64(s.TotalCorrect) / float64(s.TotalAttempts) * 100)
	}
	return s
}
