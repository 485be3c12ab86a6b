// Package trainer is the application service behind every front end: it
// issues questions, grades answers and keeps progress.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertrainer/internal/progress"
	"github.com/lox/pokertrainer/internal/quiz"
	"github.com/lox/pokertrainer/internal/randutil"
	"github.com/lox/pokertrainer/internal/store"
)

// RecentLimit is how many attempts Stats returns.
const RecentLimit = 10

// Options wires a Service.
type Options struct {
	Store     store.Store
	Generator *quiz.Generator
	Registry  *quiz.Registry
	Policy    progress.Policy
	Logger    *log.Logger
	Clock     quartz.Clock
	// Seeds returns the seed for each new question. Defaults to randutil.NewSeed.
	Seeds func() int64
}

// Service coordinates generation, grading and persistence.
type Service struct {
	store     store.Store
	generator *quiz.Generator
	registry  *quiz.Registry
	policy    progress.Policy
	logger    *log.Logger
	clock     quartz.Clock
	seeds     func() int64
}

// New builds a service, filling unset options with defaults.
func New(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("trainer: store is required")
	}
	if opts.Policy == (progress.Policy{}) {
		opts.Policy = progress.DefaultPolicy()
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Generator == nil {
		opts.Generator = quiz.NewGenerator(quiz.DefaultConfig())
	}
	if opts.Registry == nil {
		opts.Registry = quiz.NewRegistry(opts.Clock, quiz.DefaultTTL)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Seeds == nil {
		opts.Seeds = randutil.NewSeed
	}

	return &Service{
		store:     opts.Store,
		generator: opts.Generator,
		registry:  opts.Registry,
		policy:    opts.Policy,
		logger:    opts.Logger.WithPrefix("trainer"),
		clock:     opts.Clock,
		seeds:     opts.Seeds,
	}, nil
}

// NextQuestion issues a question to userID. An empty topic picks the
// recommended one and difficulty 0 uses the stored level; any other
// difficulty must be in range. If the constraints of a level cannot be met
// the question falls back to difficulty 1.
func (s *Service) NextQuestion(ctx context.Context, userID, topic string, difficulty int) (quiz.Question, error) {
	if difficulty != 0 {
		if err := quiz.ValidateDifficulty(difficulty); err != nil {
			return quiz.Question{}, err
		}
	}

	t, err := s.resolveTopic(ctx, userID, topic)
	if err != nil {
		return quiz.Question{}, err
	}

	if difficulty == 0 {
		p, err := s.store.GetProgress(ctx, userID, string(t))
		if err != nil {
			return quiz.Question{}, fmt.Errorf("load progress: %w", err)
		}
		difficulty = p.CurrentDifficulty
	}
	difficulty = progress.ClampDifficulty(difficulty)

	seed := s.seeds()
	q, err := s.generator.Generate(t, difficulty, seed)
	if errors.Is(err, quiz.ErrGenerationExhausted) && difficulty != quiz.MinDifficulty {
		s.logger.Warn("Generation exhausted, falling back", "topic", t, "difficulty", difficulty, "seed", seed)
		q, err = s.generator.Generate(t, quiz.MinDifficulty, seed)
	}
	if err != nil {
		return quiz.Question{}, err
	}

	q, err = s.registry.Issue(userID, q)
	if err != nil {
		return quiz.Question{}, err
	}
	s.logger.Debug("Issued question", "user", userID, "topic", t, "difficulty", q.Difficulty, "id", q.ID)
	return q, nil
}

func (s *Service) resolveTopic(ctx context.Context, userID, topic string) (quiz.Topic, error) {
	if topic != "" {
		return quiz.ParseTopic(topic)
	}
	t, err := s.RecommendedTopic(ctx, userID)
	if err != nil {
		return "", err
	}
	return t, nil
}

// RecommendedTopic returns the topic the user should practice next.
func (s *Service) RecommendedTopic(ctx context.Context, userID string) (quiz.Topic, error) {
	records, err := s.store.ListProgress(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load progress: %w", err)
	}
	byTopic := make(map[string]progress.TopicProgress, len(records))
	for _, r := range records {
		byTopic[r.Topic] = r.Progress
	}
	return quiz.Topic(progress.Recommend(quiz.TopicNames(), byTopic)), nil
}

// AnswerResult is returned after grading.
type AnswerResult struct {
	quiz.Result
	Topic          quiz.Topic `json:"question_type"`
	Streak         int        `json:"streak"`
	Accuracy       float64    `json:"accuracy"`
	NextDifficulty int        `json:"next_difficulty"`
}

// SubmitAnswer grades the answer to a question previously issued to userID
// and records it. The question is consumed even when the answer is wrong,
// but not when recording fails.
func (s *Service) SubmitAnswer(ctx context.Context, userID, questionID, answer string, responseTime time.Duration) (AnswerResult, error) {
	q, err := s.registry.Take(userID, questionID)
	if err != nil {
		return AnswerResult{}, err
	}

	res := quiz.Grade(q, answer)
	attempt := store.Attempt{
		UserID:         userID,
		Topic:          string(q.Topic),
		QuestionID:     q.ID,
		Difficulty:     q.Difficulty,
		Correct:        res.Correct,
		ResponseTimeMS: responseTime.Milliseconds(),
		CreatedAt:      s.clock.Now(),
	}
	next, err := s.store.ApplyAnswer(ctx, attempt, func(prev progress.TopicProgress) progress.TopicProgress {
		return s.policy.Advance(prev, res.Correct)
	})
	if err != nil {
		// the answer was not recorded, so the question stays answerable
		s.registry.Restore(userID, q)
		return AnswerResult{}, fmt.Errorf("record answer: %w", err)
	}

	s.logger.Info("Graded answer", "user", userID, "topic", q.Topic, "correct", res.Correct,
		"streak", next.CurrentStreak, "difficulty", next.CurrentDifficulty)

	return AnswerResult{
		Result:         res,
		Topic:          q.Topic,
		Streak:         next.CurrentStreak,
		Accuracy:       progress.RoundAccuracy(next.Accuracy()),
		NextDifficulty: next.CurrentDifficulty,
	}, nil
}

// TopicStats is one topic's progress as shown to the user.
type TopicStats struct {
	Topic             quiz.Topic `json:"topic"`
	TopicDisplay      string     `json:"topic_display"`
	TotalAttempts     int        `json:"total_attempts"`
	CorrectAttempts   int        `json:"correct_attempts"`
	Accuracy          float64    `json:"accuracy"`
	CurrentStreak     int        `json:"current_streak"`
	BestStreak        int        `json:"best_streak"`
	CurrentDifficulty int        `json:"current_difficulty"`
	LastReviewed      *time.Time `json:"last_reviewed"`
}

// Stats summarizes a user's training.
type Stats struct {
	progress.Summary
	Topics         []TopicStats    `json:"topics"`
	RecentAttempts []store.Attempt `json:"recent_attempts"`
}

// Stats reports every topic, practiced or not, and the most recent attempts.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	records, err := s.store.ListProgress(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("load progress: %w", err)
	}
	byTopic := make(map[string]store.TopicRecord, len(records))
	all := make([]progress.TopicProgress, 0, len(records))
	for _, r := range records {
		byTopic[r.Topic] = r
		all = append(all, r.Progress)
	}

	recent, err := s.store.RecentAttempts(ctx, userID, RecentLimit)
	if err != nil {
		return Stats{}, fmt.Errorf("load attempts: %w", err)
	}
	if recent == nil {
		recent = []store.Attempt{}
	}

	out := Stats{Summary: progress.Summarize(all), RecentAttempts: recent}
	for _, t := range quiz.Topics() {
		r, ok := byTopic[string(t)]
		if !ok {
			r = store.TopicRecord{Topic: string(t), Progress: progress.New()}
		}
		ts := TopicStats{
			Topic:             t,
			TopicDisplay:      t.Name(),
			TotalAttempts:     r.Progress.TotalAttempts,
			CorrectAttempts:   r.Progress.CorrectAttempts,
			Accuracy:          progress.RoundAccuracy(r.Progress.Accuracy()),
			CurrentStreak:     r.Progress.CurrentStreak,
			BestStreak:        r.Progress.BestStreak,
			CurrentDifficulty: r.Progress.CurrentDifficulty,
		}
		if !r.LastReviewed.IsZero() {
			reviewed := r.LastReviewed
			ts.LastReviewed = &reviewed
		}
		out.Topics = append(out.Topics, ts)
	}
	return out, nil
}

// Reset clears the user's progress and history.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if err := s.store.Reset(ctx, userID); err != nil {
		return fmt.Errorf("reset %s: %w", userID, err)
	}
	s.logger.Info("Reset statistics", "user", userID)
	return nil
}
