package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertrainer/internal/quiz"
	"github.com/lox/pokertrainer/internal/trainer"
)

// Trainer is the part of trainer.Service the quiz needs.
type Trainer interface {
	NextQuestion(ctx context.Context, userID, topic string, difficulty int) (quiz.Question, error)
	SubmitAnswer(ctx context.Context, userID, questionID, answer string, responseTime time.Duration) (trainer.AnswerResult, error)
}

// Options configure a Model.
type Options struct {
	Trainer Trainer
	UserID  string
	// Topic pins the quiz to one topic. Empty follows the recommendation.
	Topic  quiz.Topic
	Logger *log.Logger
	Clock  quartz.Clock
}

type questionMsg struct{ question quiz.Question }

type resultMsg struct{ result trainer.AnswerResult }

type errMsg struct{ err error }

// Model is the bubbletea model for an interactive quiz session.
type Model struct {
	ctx     context.Context
	trainer Trainer
	userID  string
	topic   quiz.Topic
	logger  *log.Logger
	clock   quartz.Clock

	keys keyMap
	help help.Model

	question *quiz.Question
	askedAt  time.Time
	cursor   int
	result   *trainer.AnswerResult
	err      error

	answered int
	correct  int
	quitting bool
}

// NewModel creates a quiz model. The context bounds every trainer call.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Model{
		ctx:     ctx,
		trainer: opts.Trainer,
		userID:  opts.UserID,
		topic:   opts.Topic,
		logger:  opts.Logger.WithPrefix("tui"),
		clock:   opts.Clock,
		keys:    defaultKeys(),
		help:    help.New(),
	}
}

// Init fetches the first question.
func (m *Model) Init() tea.Cmd {
	return m.fetchQuestion()
}

func (m *Model) fetchQuestion() tea.Cmd {
	topic := string(m.topic)
	return func() tea.Msg {
		q, err := m.trainer.NextQuestion(m.ctx, m.userID, topic, 0)
		if err != nil {
			return errMsg{err}
		}
		return questionMsg{q}
	}
}

func (m *Model) submit(answer string) tea.Cmd {
	id := m.question.ID
	elapsed := m.clock.Since(m.askedAt)
	return func() tea.Msg {
		res, err := m.trainer.SubmitAnswer(m.ctx, m.userID, id, answer, elapsed)
		if err != nil {
			return errMsg{err}
		}
		return resultMsg{res}
	}
}

// Update handles key presses and trainer responses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case questionMsg:
		q := msg.question
		m.question = &q
		m.result = nil
		m.err = nil
		m.cursor = 0
		m.askedAt = m.clock.Now()
		return m, nil

	case resultMsg:
		r := msg.result
		m.result = &r
		m.answered++
		if r.Correct {
			m.correct++
		}
		return m, nil

	case errMsg:
		m.logger.Error("Trainer request failed", "error", msg.err)
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Topic):
		m.topic = nextTopic(m.topic)
		return m, m.fetchQuestion()
	}

	// After an answer or an error any confirm key moves on.
	if m.question == nil || m.result != nil || m.err != nil {
		if key.Matches(msg, m.keys.Choose) {
			return m, m.fetchQuestion()
		}
		return m, nil
	}

	choices := m.question.Choices
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Pick):
		i := int(msg.String()[0] - '1')
		if i < len(choices) {
			m.cursor = i
			return m, m.submit(choices[i])
		}
	case key.Matches(msg, m.keys.Choose):
		if len(choices) > 0 {
			return m, m.submit(choices[m.cursor])
		}
	}
	return m, nil
}

// nextTopic cycles recommended, then each topic in order.
func nextTopic(t quiz.Topic) quiz.Topic {
	topics := quiz.Topics()
	if t == "" {
		return topics[0]
	}
	for i, candidate := range topics {
		if candidate == t && i+1 < len(topics) {
			return topics[i+1]
		}
	}
	return ""
}

// View renders the current question and feedback.
func (m *Model) View() string {
	if m.quitting {
		return fmt.Sprintf("Answered %d, correct %d. Thanks for training!\n", m.answered, m.correct)
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch {
	case m.err != nil && m.question == nil:
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.question == nil:
		b.WriteString(InfoStyle.Render("Dealing..."))
		b.WriteString("\n")
	default:
		m.renderQuestion(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) header() string {
	topic := "Recommended"
	if m.topic != "" {
		topic = m.topic.Name()
	}
	parts := []string{"Poker Trainer", topic}
	if m.question != nil {
		parts = append(parts, fmt.Sprintf("Level %d", m.question.Difficulty))
	}
	if m.result != nil {
		parts = append(parts, fmt.Sprintf("Streak %d", m.result.Streak), fmt.Sprintf("%.1f%%", m.result.Accuracy))
	}
	return HeaderStyle.Render(strings.Join(parts, " | "))
}

func (m *Model) renderQuestion(b *strings.Builder) {
	q := m.question
	b.WriteString(InfoStyle.Render(q.Topic.Name()))
	b.WriteString("\n")
	b.WriteString(PromptStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	switch {
	case len(q.Cards2) > 0:
		fmt.Fprintf(b, "  %s:  %s\n", quiz.HandOne, renderCards(q.Cards))
		fmt.Fprintf(b, "  %s:  %s\n", quiz.HandTwo, renderCards(q.Cards2))
	case len(q.Cards) > 0:
		fmt.Fprintf(b, "  %s\n", renderCards(q.Cards))
	}
	if q.Notation != "" {
		b.WriteString(InfoStyle.Render("  " + q.Notation))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, choice := range q.Choices {
		line := fmt.Sprintf("%d. %s", i+1, choice)
		if i == m.cursor && m.result == nil {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Press enter for a new question."))
		b.WriteString("\n")
		return
	}

	if m.result != nil {
		b.WriteString("\n")
		if m.result.Correct {
			b.WriteString(SuccessStyle.Render("Correct!"))
		} else {
			b.WriteString(ErrorStyle.Render("Not quite. The answer is " + m.result.CorrectAnswer + "."))
		}
		b.WriteString("\n")
		b.WriteString(m.result.Explanation)
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Press enter for the next question."))
		b.WriteString("\n")
	}
}

// Run starts the quiz in the terminal and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
