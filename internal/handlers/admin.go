// internal/handlers/admin.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bigbrain-live/bigbrain/internal/engine"
	"github.com/bigbrain-live/bigbrain/internal/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	token, err := s.engine.Register(req.Email, req.Password, req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.saveState(r)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	token, err := s.engine.Login(req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.saveState(r)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	email, err := s.authedEmail(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.engine.Logout(email); err != nil {
		s.respondError(w, err)
		return
	}
	s.saveState(r)
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetGames(w http.ResponseWriter, r *http.Request) {
	email, err := s.authedEmail(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	games, err := s.engine.GetGamesFromAdmin(email)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

// flexID accepts either a JSON number or a JSON string id, since older
// clients send game ids as numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type gamePayload struct {
	ID        flexID            `json:"id"`
	Owner     string            `json:"owner"`
	Name      string            `json:"name"`
	Thumbnail string            `json:"thumbnail"`
	Questions []models.Question `json:"questions"`
}

type updateGamesRequest struct {
	Games []gamePayload `json:"games"`
}

func (s *Server) handlePutGames(w http.ResponseWriter, r *http.Request) {
	email, err := s.authedEmail(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req updateGamesRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	updates := make([]engine.GameUpdate, 0, len(req.Games))
	for _, g := range req.Games {
		updates = append(updates, engine.GameUpdate{
			ID:        string(g.ID),
			Owner:     g.Owner,
			Name:      g.Name,
			Thumbnail: g.Thumbnail,
			Questions: g.Questions,
		})
	}

	if err := s.engine.UpdateGamesFromAdmin(updates, email); err != nil {
		s.respondError(w, err)
		return
	}
	s.saveState(r)
	writeJSON(w, http.StatusOK, struct{}{})
}

type mutateRequest struct {
	MutationType string `json:"mutationType"`
}

func (s *Server) handleMutateGame(w http.ResponseWriter, r *http.Request) {
	email, err := s.authedEmail(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	gameID := r.PathValue("gameid")

	if err := s.engine.AssertOwnsGame(email, gameID); err != nil {
		s.respondError(w, err)
		return
	}

	var req mutateRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	result, err := s.engine.MutateGame(gameID, req.MutationType)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.saveState(r)
	writeJSON(w, http.StatusOK, map[string]any{"data": result})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	email, err := s.authedEmail(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	sessionID := r.PathValue("sessionid")

	if err := s.engine.AssertOwnsSession(email, sessionID); err != nil {
		s.respondError(w, err)
		return
	}

	status, err := s.engine.GetSessionStatus(sessionID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": status})
}

func (s *Server) handleSessionResults(w http.ResponseWriter, r *http.Request) {
	email, err := s.authedEmail(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	sessionID := r.PathValue("sessionid")

	if err := s.engine.AssertOwnsSession(email, sessionID); err != nil {
		s.respondError(w, err)
		return
	}

	results, err := s.engine.SessionResults(sessionID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
