// internal/handlers/session_ws.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// handlePlayerWS streams the player's session lifecycle events (question
// advanced, answers available, session ended) over a websocket, so clients
// don't have to poll the status endpoint.
func (s *Server) handlePlayerWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerid")

	sessionID, err := s.engine.SessionIDForPlayer(playerID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer c.Close(websocket.StatusInternalError, "handler finished")

	sub := s.hub.Subscribe(sessionID)
	defer s.hub.Unsubscribe(sessionID, sub)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			c.Close(websocket.StatusNormalClosure, "")
			return
		case msg, ok := <-sub.Messages():
			if !ok {
				c.Close(websocket.StatusNormalClosure, "")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
