package demo

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eora-ai/eora/internal/logger"
	"github.com/eora-ai/eora/internal/session"
)

// sessionDTO is the wire shape of a listed session.
type sessionDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAt    string `json:"created_at"`
	MessageCount int    `json:"message_count"`
}

type messageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// NewHandler builds the REST router over store.
func NewHandler(store *Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions", func(w http.ResponseWriter, r *http.Request) { listSessions(w, store) })
		r.Post("/sessions", func(w http.ResponseWriter, r *http.Request) { createSession(w, r, store) })
		r.Delete("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) { deleteSession(w, r, store) })
		r.Get("/sessions/{id}/messages", func(w http.ResponseWriter, r *http.Request) { sessionMessages(w, r, store) })
		r.Get("/user/points", func(w http.ResponseWriter, r *http.Request) { userPoints(w, store) })
		r.Post("/chat", func(w http.ResponseWriter, r *http.Request) { chat(w, r, store) })
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.WithComponent("demo").Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func listSessions(w http.ResponseWriter, store *Store) {
	sessions := store.Sessions()
	out := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionDTO{
			ID:           s.ID,
			Name:         s.Name,
			CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
			MessageCount: s.MessageCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func createSession(w http.ResponseWriter, r *http.Request, store *Store) {
	var body struct {
		Name   string `json:"name"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	id, err := store.Create(body.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	// The real backend answers with a Mongo-style "_id".
	writeJSON(w, http.StatusCreated, map[string]any{"_id": id, "name": body.Name})
}

func deleteSession(w http.ResponseWriter, r *http.Request, store *Store) {
	if err := store.Delete(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func sessionMessages(w http.ResponseWriter, r *http.Request, store *Store) {
	msgs, err := store.Messages(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageDTO{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out})
}

func userPoints(w http.ResponseWriter, store *Store) {
	points, level, err := store.Points()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points, "level": level})
}

func chat(w http.ResponseWriter, r *http.Request, store *Store) {
	var body struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !session.IsValidID(body.SessionID) || body.Message == "" {
		writeError(w, http.StatusUnprocessableEntity, "session_id and message are required")
		return
	}
	reply, err := store.Chat(body.SessionID, body.Message)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"response": reply, "session_id": body.SessionID})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, ErrInjected):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
