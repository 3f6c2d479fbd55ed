package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/session"
	"github.com/meltforce/jellyfit/internal/tracker"
)

// activeView is the JSON shape of the session in progress.
type activeView struct {
	TemplateID     string            `json:"templateId"`
	Name           string            `json:"name"`
	Category       models.Category   `json:"type"`
	StartedAt      time.Time         `json:"startedAt"`
	ElapsedSeconds int               `json:"elapsedSeconds"`
	Notes          string            `json:"notes"`
	Exercises      []models.Exercise `json:"exercises"`
}

func viewOf(ed *session.Editor) activeView {
	tmpl := ed.Template()
	return activeView{
		TemplateID:     tmpl.ID,
		Name:           tmpl.Name,
		Category:       tmpl.Category,
		StartedAt:      ed.StartedAt(),
		ElapsedSeconds: ed.Elapsed(),
		Notes:          ed.Notes(),
		Exercises:      ed.Snapshot().Exercises(),
	}
}

// activeEditor writes 404 when no session is running.
func (s *Server) activeEditor(w http.ResponseWriter) (*session.Editor, bool) {
	ed, err := s.tracker.Active()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return ed, true
}

// activeExercise resolves the {exerciseID} URL parameter, writing 404 when the
// session or exercise does not exist.
func (s *Server) activeExercise(w http.ResponseWriter, r *http.Request) (*session.Editor, models.Exercise, bool) {
	ed, ok := s.activeEditor(w)
	if !ok {
		return nil, models.Exercise{}, false
	}
	ex, ok := ed.Snapshot().Exercise(chi.URLParam(r, "exerciseID"))
	if !ok {
		writeError(w, http.StatusNotFound, "exercise not found")
		return nil, models.Exercise{}, false
	}
	return ed, ex, true
}

func (s *Server) activeSet(w http.ResponseWriter, r *http.Request) (*session.Editor, models.Exercise, string, bool) {
	ed, ex, ok := s.activeExercise(w, r)
	if !ok {
		return nil, ex, "", false
	}
	setID := chi.URLParam(r, "setID")
	for _, set := range ex.Sets {
		if set.ID == setID {
			return ed, ex, setID, true
		}
	}
	writeError(w, http.StatusNotFound, "set not found")
	return nil, ex, "", false
}

func (s *Server) handleGetActive(w http.ResponseWriter, r *http.Request) {
	if ed, ok := s.activeEditor(w); ok {
		writeJSON(w, http.StatusOK, viewOf(ed))
	}
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"templateId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	tmpl, ok := s.catalog.Get(req.TemplateID)
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	s.startSession(w, tmpl)
}

func (s *Server) startSession(w http.ResponseWriter, tmpl models.Template) {
	ed, err := s.tracker.Start(tmpl)
	if errors.Is(err, tracker.ErrSessionActive) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(ed))
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Cancel(); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.Finish(r.Context())
	if errors.Is(err, tracker.ErrNoActiveSession) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.log.Error("finishing session", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSessionNotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if ed, ok := s.activeEditor(w); ok {
		ed.SetNotes(req.Notes)
		writeJSON(w, http.StatusOK, viewOf(ed))
	}
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ed, ok := s.activeEditor(w)
	if !ok {
		return
	}
	id := ed.AddExercise(req.Name)
	if id == "" {
		writeError(w, http.StatusBadRequest, "exercise name is required")
		return
	}
	ex, _ := ed.Snapshot().Exercise(id)
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	if ed, ex, ok := s.activeExercise(w, r); ok {
		ed.RemoveExercise(ex.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleToggleTimed(w http.ResponseWriter, r *http.Request) {
	if ed, ex, ok := s.activeExercise(w, r); ok {
		ed.ToggleTimedMode(ex.ID)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) handleExerciseNotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if ed, ex, ok := s.activeExercise(w, r); ok {
		ed.SetExerciseNotes(ex.ID, req.Notes)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) handleAttachMedia(w http.ResponseWriter, r *http.Request) {
	var ref models.MediaRef
	if !decodeJSON(w, r, &ref) {
		return
	}
	if ref.Ref == "" || !ref.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "media needs a ref and a kind of image or video")
		return
	}
	if ed, ex, ok := s.activeExercise(w, r); ok {
		ed.AttachMedia(ex.ID, ref)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) handleDetachMedia(w http.ResponseWriter, r *http.Request) {
	if ed, ex, ok := s.activeExercise(w, r); ok {
		ed.DetachMedia(ex.ID)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	if ed, ex, ok := s.activeExercise(w, r); ok {
		ed.AddSet(ex.ID)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	if ed, ex, setID, ok := s.activeSet(w, r); ok {
		ed.RemoveSet(ex.ID, setID)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field session.Field `json:"field"`
		Value *float64      `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	switch req.Field {
	case session.FieldReps, session.FieldWeight, session.FieldTime, session.FieldRest:
	default:
		writeError(w, http.StatusBadRequest, "field must be one of reps, weight, time, rest")
		return
	}
	if ed, ex, setID, ok := s.activeSet(w, r); ok {
		ed.UpdateSetField(ex.ID, setID, req.Field, req.Value)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) handleToggleSet(w http.ResponseWriter, r *http.Request) {
	if ed, ex, setID, ok := s.activeSet(w, r); ok {
		ed.ToggleSetCompleted(ex.ID, setID)
		s.writeExercise(w, ed, ex.ID)
	}
}

func (s *Server) writeExercise(w http.ResponseWriter, ed *session.Editor, exerciseID string) {
	ex, ok := ed.Snapshot().Exercise(exerciseID)
	if !ok {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, ex)
}
