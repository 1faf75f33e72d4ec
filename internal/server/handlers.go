package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/stagecue/cueboard/internal/metrics"
	"github.com/stagecue/cueboard/internal/store"
)

// handleController serves the director page.
func (s *Server) handleController(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "controller.html")
}

// handleViewer serves the passive display page.
func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "viewer.html")
}

// handleCue returns the current-state fragment.
//
// Without a rev parameter it responds immediately. With ?rev=N it long-polls:
// the response is held back until the store's revision passes N or the wait
// window elapses. A timeout responds 204 No Content with the baseline echoed
// in the revision header so the client re-polls with the same value.
func (s *Server) handleCue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("rev")
	if q == "" {
		sig, rev := s.store.Get()
		s.writeFragment(w, sig, rev)
		return
	}

	baseline, err := strconv.ParseUint(q, 10, 64)
	if err != nil {
		metrics.InvalidInput.Inc()
		http.Error(w, "rev must be a non-negative integer", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.waitTimeout)
	defer cancel()

	sig, rev, err := s.store.Wait(ctx, store.Revision(baseline))
	if err != nil {
		if r.Context().Err() != nil {
			// client went away or the server is shutting down; the waiter
			// is already released, nothing useful to write
			return
		}
		metrics.LongPollTimeouts.Inc()
		w.Header().Set(revisionHeader, q)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeFragment(w, sig, rev)
}

// handleSetLetter selects the active cue letter.
func (s *Server) handleSetLetter(w http.ResponseWriter, r *http.Request) {
	letter := r.FormValue("letter")
	s.logger.Debug("setting cue letter", "letter", letter)

	if err := s.store.SetLetter(letter); err != nil {
		s.rejectInput(w, err)
		return
	}

	sig, rev := s.store.Get()
	s.writeFragment(w, sig, rev)
}

// handleAppendDigit sets the repetition digit on the current letter. With
// no letter active the store treats this as a no-op and the unchanged
// fragment is returned.
func (s *Server) handleAppendDigit(w http.ResponseWriter, r *http.Request) {
	digit := r.FormValue("digit")
	s.logger.Debug("setting cue digit", "digit", digit)

	if err := s.store.AppendDigit(digit); err != nil {
		s.rejectInput(w, err)
		return
	}

	sig, rev := s.store.Get()
	s.writeFragment(w, sig, rev)
}

// handleClear resets the signal.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("clearing cue")
	s.store.Clear()

	sig, rev := s.store.Get()
	s.writeFragment(w, sig, rev)
}

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, rev := s.store.Get()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"revision": rev,
	}); err != nil {
		s.logger.Error("failed to encode health response", "error", err)
	}
}

// rejectInput maps a store validation error to a 422 without touching state.
func (s *Server) rejectInput(w http.ResponseWriter, err error) {
	if !errors.Is(err, store.ErrInvalidInput) {
		s.logger.Error("unexpected store error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	metrics.InvalidInput.Inc()
	http.Error(w, err.Error(), http.StatusUnprocessableEntity)
}
