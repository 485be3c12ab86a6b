package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertrainer/internal/quiz"
	"github.com/lox/pokertrainer/internal/store"
	"github.com/lox/pokertrainer/internal/trainer"
)

func newTestServer(t *testing.T) (*Server, *quiz.Registry) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	clock := quartz.NewMock(t)
	registry := quiz.NewRegistry(clock, time.Minute)
	svc, err := trainer.New(trainer.Options{
		Store:    store.NewMemory(),
		Registry: registry,
		Clock:    clock,
		Logger:   logger,
	})
	require.NoError(t, err)
	return New(svc, logger, "default_user"), registry
}

func do(t *testing.T, h http.Handler, method, target string, body any, user string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRankings(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/hands/rankings", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Rankings []struct {
			Rank int    `json:"rank"`
			Name string `json:"name"`
		} `json:"rankings"`
	}](t, rec)
	require.Len(t, body.Rankings, 10)
	assert.Equal(t, "Royal Flush", body.Rankings[0].Name)
	assert.Equal(t, 10, body.Rankings[0].Rank)
	assert.Equal(t, "High Card", body.Rankings[9].Name)
}

func TestStartingHands(t *testing.T) {
	srv, _ := newTestServer(t)

	type chart struct {
		Hands []struct {
			Notation     string `json:"notation"`
			CategoryName string `json:"category_name"`
			Play         *bool  `json:"play"`
		} `json:"hands"`
		Categories []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"categories"`
	}

	rec := do(t, srv, http.MethodGet, "/api/hands/starting", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[chart](t, rec)
	require.Len(t, body.Hands, 169)
	assert.Equal(t, "AA", body.Hands[0].Notation)
	assert.Equal(t, "Premium", body.Hands[0].CategoryName)
	assert.Nil(t, body.Hands[0].Play)
	require.Len(t, body.Categories, 5)
	assert.Equal(t, 4, body.Categories[0].Count)

	rec = do(t, srv, http.MethodGet, "/api/hands/starting?position=early", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[chart](t, rec)
	for _, h := range body.Hands {
		require.NotNil(t, h.Play)
		if h.Notation == "AA" {
			assert.True(t, *h.Play)
		}
		if h.Notation == "72o" {
			assert.False(t, *h.Play)
		}
	}

	rec = do(t, srv, http.MethodGet, "/api/hands/starting?position=cutoff", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTypes(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/training/types", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Types []quiz.TopicInfo `json:"types"`
	}](t, rec)
	require.Len(t, body.Types, 3)
	assert.Equal(t, quiz.HandRanking, body.Types[0].ID)
}

func TestQuestionAndAnswer(t *testing.T) {
	srv, registry := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/training/question?question_type=which_wins&difficulty=2", nil, "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "explanation")
	assert.NotContains(t, rec.Body.String(), "answer")

	q := decode[QuestionView](t, rec)
	assert.Equal(t, quiz.WhichWins, q.QuestionType)
	assert.Equal(t, 2, q.Difficulty)
	assert.Len(t, q.Cards, 5)
	assert.Len(t, q.Cards2, 5)
	assert.Equal(t, []string{"Hand 1", "Hand 2"}, q.Choices)
	assert.Equal(t, "Which hand wins?", q.Prompt)
	assert.NotEmpty(t, q.Cards[0].Display)

	rec = do(t, srv, http.MethodPost, "/api/training/answer", AnswerRequest{
		QuestionID: q.QuestionID, Answer: "Hand 1", ResponseTimeMS: 800,
	}, "alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, q.Choices, decode[struct {
		CorrectAnswer string `json:"correct_answer"`
	}](t, rec).CorrectAnswer)

	_, err := registry.Take("alice", q.QuestionID)
	assert.ErrorIs(t, err, quiz.ErrUnknownQuestion, "graded questions leave the registry")
}

func TestAnswerGrading(t *testing.T) {
	srv, registry := newTestServer(t)

	q, err := quiz.NewGenerator(quiz.DefaultConfig()).Generate(quiz.HandRanking, 1, 99)
	require.NoError(t, err)
	q, err = registry.Issue("alice", q)
	require.NoError(t, err)

	rec := do(t, srv, http.MethodPost, "/api/training/answer", AnswerRequest{
		QuestionID: q.ID, Answer: strings.ToUpper(q.Answer), ResponseTimeMS: 800,
	}, "alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[struct {
		Correct        bool    `json:"correct"`
		CorrectAnswer  string  `json:"correct_answer"`
		Explanation    string  `json:"explanation"`
		Streak         int     `json:"streak"`
		Accuracy       float64 `json:"accuracy"`
		NextDifficulty int     `json:"next_difficulty"`
	}](t, rec)
	assert.True(t, res.Correct)
	assert.Equal(t, q.Answer, res.CorrectAnswer)
	assert.Equal(t, q.Explanation, res.Explanation)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 100.0, res.Accuracy)
	assert.Equal(t, 1, res.NextDifficulty)

	rec = do(t, srv, http.MethodPost, "/api/training/answer", AnswerRequest{QuestionID: q.ID, Answer: q.Answer}, "alice")
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "please request a new question")
}

func TestAnswerFromAnotherUserIsRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/training/question?question_type=starting_hand", nil, "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	q := decode[QuestionView](t, rec)

	rec = do(t, srv, http.MethodPost, "/api/training/answer", AnswerRequest{QuestionID: q.QuestionID, Answer: "Weak"}, "")
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		status int
	}{
		{"unknown topic", http.MethodGet, "/api/training/question?question_type=omaha", nil, http.StatusBadRequest},
		{"bad difficulty", http.MethodGet, "/api/training/question?difficulty=hard", nil, http.StatusBadRequest},
		{"difficulty too high", http.MethodGet, "/api/training/question?question_type=which_wins&difficulty=9", nil, http.StatusBadRequest},
		{"negative difficulty", http.MethodGet, "/api/training/question?difficulty=-1", nil, http.StatusBadRequest},
		{"missing id", http.MethodPost, "/api/training/answer", AnswerRequest{Answer: "Pair"}, http.StatusBadRequest},
		{"unknown id", http.MethodPost, "/api/training/answer", AnswerRequest{QuestionID: "q_nope", Answer: "Pair"}, http.StatusGone},
		{"wrong method", http.MethodGet, "/api/stats/reset", nil, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.target, tt.body, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/training/answer", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsAndReset(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 2; i++ {
		rec := do(t, srv, http.MethodGet, "/api/training/question?question_type=hand_ranking", nil, "alice")
		require.Equal(t, http.StatusOK, rec.Code)
		q := decode[QuestionView](t, rec)
		rec = do(t, srv, http.MethodPost, "/api/training/answer", AnswerRequest{QuestionID: q.QuestionID, Answer: "nope"}, "alice")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	type stats struct {
		TotalQuestions  int     `json:"total_questions"`
		TotalCorrect    int     `json:"total_correct"`
		OverallAccuracy float64 `json:"overall_accuracy"`
		Topics          []struct {
			Topic             string `json:"topic"`
			TotalAttempts     int    `json:"total_attempts"`
			CurrentDifficulty int    `json:"current_difficulty"`
		} `json:"topics"`
		RecentAttempts []map[string]any `json:"recent_attempts"`
	}

	rec := do(t, srv, http.MethodGet, "/api/stats", nil, "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[stats](t, rec)
	assert.Equal(t, 2, body.TotalQuestions)
	assert.Equal(t, 0, body.TotalCorrect)
	assert.Equal(t, 0.0, body.OverallAccuracy)
	require.Len(t, body.Topics, 3)
	assert.Equal(t, 2, body.Topics[0].TotalAttempts)
	assert.Equal(t, 1, body.Topics[0].CurrentDifficulty)
	assert.Len(t, body.RecentAttempts, 2)

	other := decode[stats](t, do(t, srv, http.MethodGet, "/api/stats", nil, "bob"))
	assert.Equal(t, 0, other.TotalQuestions)

	rec = do(t, srv, http.MethodPost, "/api/stats/reset", nil, "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[ResetResponse](t, rec).Success)

	body = decode[stats](t, do(t, srv, http.MethodGet, "/api/stats", nil, "alice"))
	assert.Equal(t, 0, body.TotalQuestions)
	assert.Empty(t, body.RecentAttempts)
}

func TestDrillSocket(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/drill?user=carol"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(DrillRequest{Type: DrillNext, QuestionType: "starting_hand", Difficulty: 1}))
	var resp DrillResponse
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, DrillQuestion, resp.Type, resp.Error)
	require.NotNil(t, resp.Question)
	assert.Len(t, resp.Question.Cards, 2)

	require.NoError(t, conn.WriteJSON(DrillRequest{Type: DrillAnswer, QuestionID: resp.Question.QuestionID, Answer: "Premium"}))
	var result struct {
		Type   DrillMessageType `json:"type"`
		Result struct {
			CorrectAnswer string `json:"correct_answer"`
		} `json:"result"`
	}
	require.NoError(t, conn.ReadJSON(&result))
	assert.Equal(t, DrillResult, result.Type)
	assert.Contains(t, []string{"Premium", "Weak"}, result.Result.CorrectAnswer)

	require.NoError(t, conn.WriteJSON(DrillRequest{Type: DrillAnswer, QuestionID: resp.Question.QuestionID, Answer: "Premium"}))
	resp = DrillResponse{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, DrillError, resp.Type)
	assert.Contains(t, resp.Error, "please request a new question")

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "shuffle"}))
	resp = DrillResponse{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, DrillError, resp.Type)

	// the drill records under the user from the query string
	stats := decode[struct {
		TotalQuestions int `json:"total_questions"`
	}](t, do(t, srv, http.MethodGet, "/api/stats?user=carol", nil, ""))
	assert.Equal(t, 1, stats.TotalQuestions)
}

func TestDrillDeliverStopsAfterWriteFailure(t *testing.T) {
	conns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- c
	}))
	defer ts.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	serverConn := <-conns
	require.NoError(t, serverConn.Close())

	sess := &drillSession{
		conn:   serverConn,
		send:   make(chan DrillResponse),
		logger: log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.writePump(ctx, cancel)
	}()

	// the write loop takes this one and fails writing it
	assert.True(t, sess.deliver(ctx, DrillResponse{Type: DrillError, Error: "first"}))

	delivered := make(chan bool, 1)
	go func() { delivered <- sess.deliver(ctx, DrillResponse{Type: DrillError, Error: "second"}) }()
	select {
	case ok := <-delivered:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("deliver blocked after the write loop exited")
	}
	<-done
}
