package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/jellyfit/internal/catalog"
	"github.com/meltforce/jellyfit/internal/coach"
	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/plan"
	"github.com/meltforce/jellyfit/internal/tracker"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("type"); cat != "" {
		writeJSON(w, http.StatusOK, s.catalog.ByCategory(models.Category(cat)))
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleGenerateTemplates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sport string `json:"sport"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sport := strings.TrimSpace(req.Sport)
	if sport == "" {
		if p := s.store.GetProfile(r.Context()); p != nil {
			sport = p.Sport
		}
	}
	if sport == "" {
		writeError(w, http.StatusBadRequest, "sport is required")
		return
	}

	templates := s.coach.GenerateRoutines(r.Context(), sport)
	s.catalog.Add(templates...)
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseTimeParam(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start: "+err.Error())
		return
	}
	to, err := parseTimeParam(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end: "+err.Error())
		return
	}
	sessions := tracker.FilterSessions(s.store.GetSessions(r.Context()), from, to, models.Category(q.Get("type")))
	writeJSON(w, http.StatusOK, sessions)
}

// parseTimeParam accepts RFC 3339 timestamps. An empty value is the zero time.
func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.GetSession(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p := s.store.GetProfile(r.Context())
	if p == nil {
		writeError(w, http.StatusNotFound, "no profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if !decodeJSON(w, r, &p) {
		return
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.store.SaveProfile(r.Context(), p); err != nil {
		s.log.Error("saving profile", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	p := s.store.GetPlan(r.Context())
	if p == nil {
		writeError(w, http.StatusNotFound, "no plan")
		return
	}
	done, scheduled := plan.Progress(p)
	writeJSON(w, http.StatusOK, map[string]any{
		"plan":      p,
		"completed": done,
		"scheduled": scheduled,
		"today":     plan.WeekdayName(s.now(), s.loc),
	})
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	profile := s.store.GetProfile(r.Context())
	if profile == nil {
		writeError(w, http.StatusBadRequest, "create a profile first")
		return
	}
	p, err := s.coach.GenerateAndStorePlan(r.Context(), *profile)
	if err != nil {
		s.log.Error("generating plan", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusServiceUnavailable, "plan generation unavailable")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCompleteDay(w http.ResponseWriter, r *http.Request) {
	p, err := plan.NewSynchronizer(s.store, s.log).MarkDayComplete(r.Context(), chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "no plan")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleStartPlanDay(w http.ResponseWriter, r *http.Request) {
	day, ok := plan.Day(s.store.GetPlan(r.Context()), chi.URLParam(r, "day"))
	if !ok {
		writeError(w, http.StatusNotFound, "plan day not found")
		return
	}
	if day.IsRestDay {
		writeError(w, http.StatusBadRequest, "cannot start a rest day")
		return
	}
	s.startSession(w, catalog.FromDailyPlan(day, s.now()))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	text := s.coach.GetInsights(r.Context(), s.store.GetSessions(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"insight": text})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string          `json:"message"`
		History []coach.Message `json:"history"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	profile := s.store.GetProfile(r.Context())
	if profile == nil {
		writeError(w, http.StatusBadRequest, "create a profile first")
		return
	}
	reply := s.coach.Chat(r.Context(), *profile, req.Message, req.History)
	writeJSON(w, http.StatusOK, coach.Message{Role: coach.RoleModel, Text: reply})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := tracker.ComputeStats(s.store.GetSessions(r.Context()), s.now())
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
	return false
}
