package agent

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/scenecoach/internal/coach"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming websocket message format.
type wsRequest struct {
	Type string     `json:"type"` // "ask" or "validate"
	Ask  AskRequest `json:"ask"`
	// Validate is only read for "validate" messages.
	Validate ValidateRequest `json:"validate"`
}

// wsAttempt describes a judged attempt without its text; rejected drafts
// never reach the writer.
type wsAttempt struct {
	Index      int                 `json:"index"`
	Passed     bool                `json:"passed"`
	Violation  coach.ViolationKind `json:"violation,omitempty"`
	Structural string              `json:"structural,omitempty"`
}

// wsResponse is the outgoing websocket message format.
type wsResponse struct {
	Type     string            `json:"type"` // "attempt", "reply", "validation" or "error"
	Attempt  *wsAttempt        `json:"attempt,omitempty"`
	Reply    *AskResponse      `json:"reply,omitempty"`
	Result   *ValidateResponse `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
	Details  string            `json:"details,omitempty"`
	ThreadID string            `json:"thread_id,omitempty"`
}

// handleWebSocket serves one ask per incoming message on a long-lived
// connection, streaming attempt events before the reply.
func (s *Service) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.send(conn, wsResponse{Type: "error", Error: "invalid message format"})
			continue
		}

		switch req.Type {
		case "ask":
			s.wsAsk(r, conn, user, req.Ask)
		case "validate":
			result := Validate(req.Validate)
			s.send(conn, wsResponse{Type: "validation", Result: &result})
		default:
			s.send(conn, wsResponse{Type: "error", Error: "unknown message type: " + req.Type})
		}
	}
}

func (s *Service) wsAsk(r *http.Request, conn *websocket.Conn, user string, req AskRequest) {
	req.UserID = user
	req.OnAttempt = func(a coach.AttemptResult) {
		ev := &wsAttempt{Index: a.Index, Passed: a.Passed, Structural: a.Structural}
		if a.Violation != nil {
			ev.Violation = a.Violation.Kind
		}
		s.send(conn, wsResponse{Type: "attempt", Attempt: ev})
	}

	resp, err := s.Ask(r.Context(), req)
	if err != nil {
		_, body := statusFor(err)
		if body.Error == "internal server error" {
			s.logger.Error("websocket ask failed", zap.Error(err))
		}
		s.send(conn, wsResponse{Type: "error", Error: body.Error, Details: body.Details})
		return
	}
	s.send(conn, wsResponse{Type: "reply", Reply: resp, ThreadID: resp.ThreadID})
}

func (s *Service) send(conn *websocket.Conn, resp wsResponse) bool {
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Warn("websocket write", zap.Error(err))
		return false
	}
	return true
}
