package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Send pings at this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// drillSession runs one drill socket: the read loop answers each client
// frame in order, the write loop owns every write to the connection.
type drillSession struct {
	server *Server
	conn   *websocket.Conn
	userID string
	send   chan DrillResponse
	logger *log.Logger
}

func (s *Server) handleDrill(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	sess := &drillSession{
		server: s,
		conn:   conn,
		userID: userID,
		send:   make(chan DrillResponse, 16),
		logger: s.logger.With("user", userID),
	}
	sess.logger.Info("Drill connected")

	ctx, cancel := context.WithCancel(r.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.writePump(ctx, cancel)
	}()
	sess.readPump(ctx)
	cancel()
	<-done
	sess.logger.Info("Drill disconnected")
}

func (d *drillSession) readPump(ctx context.Context) {
	d.conn.SetReadLimit(maxMessageSize)
	_ = d.conn.SetReadDeadline(time.Now().Add(pongWait))
	d.conn.SetPongHandler(func(string) error {
		return d.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := d.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.logger.Warn("Drill read failed", "error", err)
			}
			return
		}

		if !d.deliver(ctx, d.handle(ctx, data)) {
			return
		}
	}
}

// deliver queues resp for the write loop. It reports false once the session
// has ended.
func (d *drillSession) deliver(ctx context.Context, resp DrillResponse) bool {
	select {
	case d.send <- resp:
		return true
	case <-ctx.Done():
		return false
	}
}

func (d *drillSession) handle(ctx context.Context, data []byte) DrillResponse {
	var req DrillRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return DrillResponse{Type: DrillError, Error: "invalid message: " + err.Error()}
	}

	switch req.Type {
	case DrillNext:
		q, err := d.server.trainer.NextQuestion(ctx, d.userID, req.QuestionType, req.Difficulty)
		if err != nil {
			return d.errorResponse(err)
		}
		view := questionView(q)
		return DrillResponse{Type: DrillQuestion, Question: &view}

	case DrillAnswer:
		res, err := d.server.trainer.SubmitAnswer(ctx, d.userID, req.QuestionID, req.Answer,
			time.Duration(req.ResponseTimeMS)*time.Millisecond)
		if err != nil {
			return d.errorResponse(err)
		}
		return DrillResponse{Type: DrillResult, Result: res}

	default:
		return DrillResponse{Type: DrillError, Error: fmt.Sprintf("unknown message type %q", req.Type)}
	}
}

func (d *drillSession) errorResponse(err error) DrillResponse {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		d.logger.Error("Drill request failed", "error", err)
	}
	return DrillResponse{Type: DrillError, Error: msg}
}

// writePump sends responses and keepalive pings until ctx ends or a write
// fails, then cancels the session and closes the connection.
func (d *drillSession) writePump(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		_ = d.conn.Close()
	}()

	for {
		select {
		case resp := <-d.send:
			_ = d.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := d.conn.WriteJSON(resp); err != nil {
				d.logger.Warn("Drill write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = d.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := d.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			_ = d.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
