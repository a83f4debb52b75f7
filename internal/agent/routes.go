package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/scenecoach/internal/coach"
)

// UserHeader carries the caller's identity.
const UserHeader = "X-User-ID"

// maxBodyBytes bounds request bodies; a full screenplay fits comfortably.
const maxBodyBytes = 4 << 20

// RegisterRoutes mounts the agent API under /api/agent on the router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/agent", func(r chi.Router) {
		r.Post("/ask", handleAsk(svc))
		r.Post("/validate", handleValidate())
		r.Get("/thread", handleThread(svc))
		r.Get("/thread/export", handleExport(svc))
		r.Get("/threads/{id}", handleThreadByID(svc))
	})
}

// RegisterWebSocket mounts /ws/agent. Connections are long-lived, so the
// router should not carry a request timeout.
func RegisterWebSocket(r chi.Router, svc *Service) {
	r.Get("/ws/agent", svc.handleWebSocket)
}

func userID(r *http.Request) string {
	if id := r.Header.Get(UserHeader); id != "" {
		return id
	}
	if id := r.URL.Query().Get("user_id"); id != "" {
		return id
	}
	return AnonymousUser
}

func handleAsk(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AskRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", "")
			return
		}
		req.UserID = userID(r)

		resp, err := svc.Ask(r.Context(), req)
		if err != nil {
			svc.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleValidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ValidateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", "")
			return
		}
		writeJSON(w, http.StatusOK, Validate(req))
	}
}

func handleThread(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		view, err := svc.Thread(r.Context(), r.URL.Query().Get("script_id"), userID(r), limit)
		if err != nil {
			svc.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleThreadByID(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.ThreadByID(r.Context(), chi.URLParam(r, "id"), userID(r))
		if err != nil {
			svc.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleExport(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := svc.ExportHTML(r.Context(), q.Get("script_id"), userID(r), q.Get("title"))
		if err != nil {
			svc.writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page))
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// statusFor maps a service error onto an HTTP status and body.
func statusFor(err error) (int, errorBody) {
	var exhausted *coach.ContractExhaustedError
	var upstream *coach.UpstreamError
	switch {
	case errors.As(err, &exhausted):
		body := errorBody{Error: exhausted.Message()}
		if exhausted.Last != nil {
			body.Details = exhausted.Last.Error()
		}
		return http.StatusBadGateway, body
	case errors.As(err, &upstream):
		return http.StatusBadGateway, errorBody{Error: "model call failed", Details: upstream.Err.Error()}
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, errorBody{Error: err.Error()}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorBody{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal server error"}
	}
}

func (s *Service) writeServiceError(w http.ResponseWriter, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("agent request failed", zap.Error(err))
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
