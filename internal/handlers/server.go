// internal/handlers/server.go
package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/bigbrain-live/bigbrain/internal/engine"
	"github.com/bigbrain-live/bigbrain/internal/ws"
)

// Server wires the engine to the HTTP surface. Routes mirror the admin and
// player APIs; the engine itself knows nothing about HTTP.
type Server struct {
	engine *engine.Engine
	hub    *ws.Hub
	log    *logrus.Logger
}

// New builds a server and hooks the engine's event callback into the
// websocket hub.
func New(e *engine.Engine, hub *ws.Hub, log *logrus.Logger) *Server {
	s := &Server{engine: e, hub: hub, log: log}
	e.OnEvent = func(sessionID string, ev engine.Event) {
		hub.Publish(sessionID, ev)
	}
	return s
}

// Routes returns the full route table.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /admin/auth/register", s.handleRegister)
	mux.HandleFunc("POST /admin/auth/login", s.handleLogin)
	mux.HandleFunc("POST /admin/auth/logout", s.handleLogout)

	mux.HandleFunc("GET /admin/games", s.handleGetGames)
	mux.HandleFunc("PUT /admin/games", s.handlePutGames)
	mux.HandleFunc("POST /admin/game/{gameid}/mutate", s.handleMutateGame)
	mux.HandleFunc("GET /admin/session/{sessionid}/status", s.handleSessionStatus)
	mux.HandleFunc("GET /admin/session/{sessionid}/results", s.handleSessionResults)

	mux.HandleFunc("POST /play/join/{sessionid}", s.handlePlayerJoin)
	mux.HandleFunc("GET /play/{playerid}/status", s.handlePlayerStatus)
	mux.HandleFunc("GET /play/{playerid}/question", s.handlePlayerQuestion)
	mux.HandleFunc("GET /play/{playerid}/answer", s.handlePlayerGetAnswers)
	mux.HandleFunc("PUT /play/{playerid}/answer", s.handlePlayerSubmitAnswers)
	mux.HandleFunc("GET /play/{playerid}/results", s.handlePlayerResults)
	mux.HandleFunc("GET /play/{playerid}/ws", s.handlePlayerWS)

	return mux
}

// authedEmail resolves the caller's admin email from the Authorization
// header.
func (s *Server) authedEmail(r *http.Request) (string, error) {
	return s.engine.AuthEmail(r.Header.Get("Authorization"))
}

// saveState snapshots the store after a successful mutation. Failures are
// logged inside the engine and deliberately not surfaced to the client;
// the mutation itself has already taken effect.
func (s *Server) saveState(r *http.Request) {
	_ = s.engine.Save(r.Context())
}
