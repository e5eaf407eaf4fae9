// Package server exposes drill sessions as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/at-ishikawa/verbdrill/internal/scheduler"
	"github.com/at-ishikawa/verbdrill/internal/session"
	"github.com/at-ishikawa/verbdrill/internal/statistics"
)

// CardView is a card as shown to the player. The translation is revealed only through
// feedback.
type CardView struct {
	ID              int    `json:"id"`
	Verb            string `json:"verb"`
	Category        string `json:"category"`
	ExampleSentence string `json:"example_sentence,omitempty"`
}

type SessionView struct {
	ID       string            `json:"id"`
	Mode     session.Mode      `json:"mode"`
	Card     *CardView         `json:"card,omitempty"`
	Options  []string          `json:"options,omitempty"`
	Score    int               `json:"score"`
	Streak   int               `json:"streak"`
	Feedback *session.Feedback `json:"feedback,omitempty"`
}

type StatsView struct {
	statistics.StatisticsResult
	MasteryPercentage float64 `json:"mastery_percentage"`
}

type AnswerRequest struct {
	Answer *string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SessionHandler serves every session of one shared engine. Engine calls are serialized.
type SessionHandler struct {
	mu       sync.Mutex
	engine   *session.Engine
	sessions map[string]session.State
}

func NewSessionHandler(engine *session.Engine) *SessionHandler {
	return &SessionHandler{
		engine:   engine,
		sessions: make(map[string]session.State),
	}
}

// Routes registers the API on a new mux.
func (h *SessionHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", h.createSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.deleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/answer", h.answer)
	mux.HandleFunc("POST /api/sessions/{id}/next", h.next)
	mux.HandleFunc("GET /api/stats", h.stats)
	return mux
}

func (h *SessionHandler) createSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := h.engine.Start(session.NewState())
	if errors.Is(err, scheduler.ErrEmptyDeck) {
		writeError(w, http.StatusConflict, "nothing to study")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id := uuid.NewString()
	h.sessions[id] = state
	writeJSON(w, http.StatusCreated, newSessionView(id, state))
}

func (h *SessionHandler) getSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := r.PathValue("id")
	state, ok := h.sessions[id]
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(id, state))
}

func (h *SessionHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := r.PathValue("id")
	if _, ok := h.sessions[id]; !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	delete(h.sessions, id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Answer == nil {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	id := r.PathValue("id")
	state, ok := h.sessions[id]
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	next, err := h.engine.Answer(r.Context(), state, *req.Answer)
	if errors.Is(err, session.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		if next.Mode != session.ModeFeedback {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		slog.Default().Warn("failed to save progress", "session_id", id, "error", err)
	}
	h.sessions[id] = next
	writeJSON(w, http.StatusOK, newSessionView(id, next))
}

func (h *SessionHandler) next(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := r.PathValue("id")
	state, ok := h.sessions[id]
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	next, err := h.engine.Advance(state)
	if errors.Is(err, session.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.sessions[id] = next
	writeJSON(w, http.StatusOK, newSessionView(id, next))
}

func (h *SessionHandler) stats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	result := h.engine.Statistics()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, StatsView{
		StatisticsResult:  result,
		MasteryPercentage: result.Summary.MasteryPercentage(),
	})
}

func newSessionView(id string, state session.State) SessionView {
	view := SessionView{
		ID:       id,
		Mode:     state.Mode,
		Options:  state.Options,
		Score:    state.Score,
		Streak:   state.Streak,
		Feedback: state.Feedback,
	}
	if state.Current != nil {
		view.Card = &CardView{
			ID:       state.Current.ID,
			Verb:     state.Current.Verb,
			Category: state.Current.Category,
		}
		if state.Mode == session.ModeFeedback {
			view.Card.ExampleSentence = state.Current.ExampleSentence
		}
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
