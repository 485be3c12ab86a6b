package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/pokertrainer/internal/progress"
)

const schema = `
CREATE TABLE IF NOT EXISTS topic_progress (
	user_id            TEXT    NOT NULL,
	topic              TEXT    NOT NULL,
	total_attempts     INTEGER NOT NULL DEFAULT 0,
	correct_attempts   INTEGER NOT NULL DEFAULT 0,
	current_streak     INTEGER NOT NULL DEFAULT 0,
	best_streak        INTEGER NOT NULL DEFAULT 0,
	current_difficulty INTEGER NOT NULL DEFAULT 1,
	level_streak       INTEGER NOT NULL DEFAULT 0,
	level_misses       INTEGER NOT NULL DEFAULT 0,
	last_reviewed      INTEGER,
	PRIMARY KEY (user_id, topic)
);

CREATE TABLE IF NOT EXISTS attempts (
	id               TEXT    PRIMARY KEY,
	user_id          TEXT    NOT NULL,
	topic            TEXT    NOT NULL,
	question_id      TEXT    NOT NULL,
	difficulty       INTEGER NOT NULL,
	correct          BOOLEAN NOT NULL,
	response_time_ms INTEGER,
	created_at       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS attempts_user_created ON attempts (user_id, created_at);
`

// SQLite is a Store backed by a SQLite file. Transactions begin IMMEDIATE,
// so ApplyAnswer holds the write lock from its first read.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a single connection keeps writers queued in-process instead of
	// contending for the file lock
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProgress(ctx context.Context, q queryer, userID, topic string) (progress.TopicProgress, error) {
	p := progress.New()
	err := q.QueryRowContext(ctx, `
		SELECT total_attempts, correct_attempts, current_streak, best_streak,
		       current_difficulty, level_streak, level_misses
		FROM topic_progress WHERE user_id = ? AND topic = ?`,
		userID, topic,
	).Scan(&p.TotalAttempts, &p.CorrectAttempts, &p.CurrentStreak, &p.BestStreak,
		&p.CurrentDifficulty, &p.LevelStreak, &p.LevelMisses)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.New(), nil
	}
	if err != nil {
		return progress.TopicProgress{}, fmt.Errorf("load progress %s/%s: %w", userID, topic, err)
	}
	return p, nil
}

func (s *SQLite) GetProgress(ctx context.Context, userID, topic string) (progress.TopicProgress, error) {
	return getProgress(ctx, s.db, userID, topic)
}

func (s *SQLite) ListProgress(ctx context.Context, userID string) ([]TopicRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT topic, total_attempts, correct_attempts, current_streak, best_streak,
		       current_difficulty, level_streak, level_misses, last_reviewed
		FROM topic_progress WHERE user_id = ? ORDER BY topic`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []TopicRecord
	for rows.Next() {
		var (
			r        TopicRecord
			reviewed sql.NullInt64
		)
		p := &r.Progress
		if err := rows.Scan(&r.Topic, &p.TotalAttempts, &p.CorrectAttempts, &p.CurrentStreak,
			&p.BestStreak, &p.CurrentDifficulty, &p.LevelStreak, &p.LevelMisses, &reviewed); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		if reviewed.Valid {
			r.LastReviewed = time.UnixMilli(reviewed.Int64)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) ApplyAnswer(ctx context.Context, a Attempt, advance AdvanceFunc) (progress.TopicProgress, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return progress.TopicProgress{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	prev, err := getProgress(ctx, tx, a.UserID, a.Topic)
	if err != nil {
		return progress.TopicProgress{}, err
	}
	next := advance(prev)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO topic_progress (user_id, topic, total_attempts, correct_attempts,
			current_streak, best_streak, current_difficulty, level_streak, level_misses, last_reviewed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, topic) DO UPDATE SET
			total_attempts = excluded.total_attempts,
			correct_attempts = excluded.correct_attempts,
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			current_difficulty = excluded.current_difficulty,
			level_streak = excluded.level_streak,
			level_misses = excluded.level_misses,
			last_reviewed = excluded.last_reviewed`,
		a.UserID, a.Topic, next.TotalAttempts, next.CorrectAttempts, next.CurrentStreak,
		next.BestStreak, next.CurrentDifficulty, next.LevelStreak, next.LevelMisses,
		a.CreatedAt.UnixMilli())
	if err != nil {
		return progress.TopicProgress{}, fmt.Errorf("save progress: %w", err)
	}

	var responseTime sql.NullInt64
	if a.ResponseTimeMS > 0 {
		responseTime = sql.NullInt64{Int64: a.ResponseTimeMS, Valid: true}
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO attempts (id, user_id, topic, question_id, difficulty, correct, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Topic, a.QuestionID, a.Difficulty, a.Correct, responseTime, a.CreatedAt.UnixMilli())
	if err != nil {
		return progress.TopicProgress{}, fmt.Errorf("record attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return progress.TopicProgress{}, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (s *SQLite) RecentAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, topic, question_id, difficulty, correct, response_time_ms, created_at
		FROM attempts WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, userID, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("recent attempts for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a            Attempt
			responseTime sql.NullInt64
			created      int64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Topic, &a.QuestionID, &a.Difficulty, &a.Correct,
			&responseTime, &created); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.ResponseTimeMS = responseTime.Int64
		a.CreatedAt = time.UnixMilli(created)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLite) Reset(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM topic_progress WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM attempts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete attempts: %w", err)
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
