// internal/handlers/play.go
package handlers

import (
	"net/http"
)

type joinRequest struct {
	Name string `json:"name"`
}

func (s *Server) handlePlayerJoin(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionid")

	var req joinRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	playerID, err := s.engine.PlayerJoin(req.Name, sessionID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.saveState(r)
	writeJSON(w, http.StatusOK, map[string]string{"playerId": playerID})
}

func (s *Server) handlePlayerStatus(w http.ResponseWriter, r *http.Request) {
	started, err := s.engine.HasStarted(r.PathValue("playerid"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"started": started})
}

func (s *Server) handlePlayerQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := s.engine.GetQuestion(r.PathValue("playerid"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"question": question})
}

func (s *Server) handlePlayerGetAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := s.engine.GetAnswers(r.PathValue("playerid"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answers": answers})
}

type submitAnswersRequest struct {
	Answers []string `json:"answers"`
}

func (s *Server) handlePlayerSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req submitAnswersRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.engine.SubmitAnswers(r.PathValue("playerid"), req.Answers); err != nil {
		s.respondError(w, err)
		return
	}
	s.saveState(r)
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handlePlayerResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.engine.GetResults(r.PathValue("playerid"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
