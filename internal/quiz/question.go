// Package quiz generates and grades training questions. Generation is pure:
// the same topic, difficulty and seed always produce the same question.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokertrainer/internal/deck"
)

var (
	// ErrGenerationExhausted means resampling could not satisfy the
	// difficulty constraints within the attempt bound. Callers should fall
	// back to an easier difficulty.
	ErrGenerationExhausted = errors.New("question generation exhausted")

	// ErrUnknownQuestion means a question reference is unknown, expired,
	// already graded or was issued to someone else.
	ErrUnknownQuestion = errors.New("unknown question")

	ErrUnknownTopic      = errors.New("unknown question type")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Topic is a question type. It doubles as the progress key.
type Topic string

const (
	HandRanking  Topic = "hand_ranking"
	WhichWins    Topic = "which_wins"
	StartingHand Topic = "starting_hand"
)

// Topics lists every topic in the order they are offered.
func Topics() []Topic {
	return []Topic{HandRanking, WhichWins, StartingHand}
}

// TopicNames returns the topics as plain strings.
func TopicNames() []string {
	topics := Topics()
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = string(t)
	}
	return out
}

// ParseTopic resolves a topic id.
func ParseTopic(s string) (Topic, error) {
	t := Topic(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTopic, s)
}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	switch t {
	case HandRanking, WhichWins, StartingHand:
		return true
	}
	return false
}

// Name is the display name of the topic.
func (t Topic) Name() string {
	switch t {
	case HandRanking:
		return "Hand Rankings"
	case WhichWins:
		return "Which Hand Wins"
	case StartingHand:
		return "Starting Hands"
	default:
		return string(t)
	}
}

// Description says what the topic drills.
func (t Topic) Description() string {
	switch t {
	case HandRanking:
		return "Identify the poker hand from the cards shown"
	case WhichWins:
		return "Compare two hands and determine the winner"
	case StartingHand:
		return "Learn which starting hands to play preflop"
	default:
		return ""
	}
}

// TopicInfo describes a topic for listings.
type TopicInfo struct {
	ID          Topic  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TopicInfos describes every topic.
func TopicInfos() []TopicInfo {
	out := make([]TopicInfo, 0, len(Topics()))
	for _, t := range Topics() {
		out = append(out, TopicInfo{ID: t, Name: t.Name(), Description: t.Description()})
	}
	return out
}

// ValidateDifficulty checks d is within 1..5.
func ValidateDifficulty(d int) error {
	if d < MinDifficulty || d > MaxDifficulty {
		return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidDifficulty, d, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// Question is one generated exercise. Answer and Explanation stay on the
// server until the question is graded.
type Question struct {
	ID         string
	Topic      Topic
	Difficulty int
	Seed       int64

	Prompt  string
	Cards   []deck.Card
	Cards2  []deck.Card // second hand for which-wins questions
	Choices []string
	// Notation is the canonical starting hand for starting-hand questions.
	Notation string

	Answer      string
	Explanation string
}

// HasChoice reports whether s is one of the offered choices.
func (q Question) HasChoice(s string) bool {
	for _, c := range q.Choices {
		if strings.EqualFold(c, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
