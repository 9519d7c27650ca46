// Command gateway-stub is a local stand-in for the assistant gateway. It
// serves canned data over the real contract so the console can be developed
// and demoed without the actual backend running.
package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type meeting struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// stubServer holds a mutable fixture list so schedule/delete chats visibly
// change what /meetings returns.
type stubServer struct {
	router *chi.Mux

	mu       sync.Mutex
	meetings []meeting
}

func newStubServer() *stubServer {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &stubServer{
		router: r,
		meetings: []meeting{
			{Title: "Standup", StartTime: "09:00", Duration: 15},
			{Title: "Design review", StartTime: "14:30", Duration: 45},
		},
	}
	s.routes()
	return s
}

func (s *stubServer) routes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/chat", s.handleChat)
	s.router.Get("/meetings", s.handleMeetings)
	s.router.Post("/email", s.handleEmail)
}

func (s *stubServer) Router() http.Handler { return s.router }

func (s *stubServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *stubServer) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	lower := strings.ToLower(text)
	var reply string
	switch {
	case strings.Contains(lower, "schedule"):
		s.mu.Lock()
		s.meetings = append(s.meetings, meeting{Title: "New meeting", StartTime: "16:00", Duration: 30})
		s.mu.Unlock()
		reply = "Done, meeting scheduled."
	case strings.Contains(lower, "delete"):
		s.mu.Lock()
		if len(s.meetings) > 0 {
			s.meetings = s.meetings[:len(s.meetings)-1]
		}
		s.mu.Unlock()
		reply = "Done, meeting deleted."
	case strings.Contains(lower, "silence"):
		// Lets the console's "no response" path be exercised by hand.
		reply = ""
	default:
		reply = "(stub) You said: " + text
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

func (s *stubServer) handleMeetings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	meetings := append([]meeting(nil), s.meetings...)
	s.mu.Unlock()

	var b strings.Builder
	for _, m := range meetings {
		b.WriteString(m.Title + " at " + m.StartTime + "\n")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meetings":       meetings,
		"formatted_text": b.String(),
	})
}

func (s *stubServer) handleEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !strings.Contains(req.To, "@") {
		s.writeError(w, http.StatusBadRequest, "invalid recipient")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *stubServer) writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
