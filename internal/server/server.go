package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"wow-tracker/internal/repository"
)

// SnapshotServer exposes the persisted documents read-only, for a dashboard
// frontend. It serves whatever the last tracker run wrote; it never mutates
// state.
type SnapshotServer struct {
	snapshots *repository.SnapshotRepository
	history   *repository.HistoryRepository
	logger    zerolog.Logger
}

func NewSnapshotServer(snapshots *repository.SnapshotRepository, history *repository.HistoryRepository, logger zerolog.Logger) *SnapshotServer {
	return &SnapshotServer{snapshots: snapshots, history: history, logger: logger}
}

func (s *SnapshotServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/history/daily", s.handleDailyHistory)
	mux.HandleFunc("GET /api/history/experience", s.handleExperienceHistory)
}

func (s *SnapshotServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshots.Load()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load snapshot")
		http.Error(w, "snapshot not available", http.StatusNotFound)
		return
	}
	s.writeJSON(w, snap)
}

func (s *SnapshotServer) handleDailyHistory(w http.ResponseWriter, r *http.Request) {
	doc, err := s.history.LoadDaily()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load daily history")
		http.Error(w, "history not available", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, doc)
}

func (s *SnapshotServer) handleExperienceHistory(w http.ResponseWriter, r *http.Request) {
	doc, err := s.history.LoadExperience()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load experience history")
		http.Error(w, "history not available", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, doc)
}

func (s *SnapshotServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
