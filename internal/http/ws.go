package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/mauv0809/clicky-block/internal/team"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ConnectHandler upgrades the request to a websocket and feeds the viewer
// live team snapshots until the peer goes away.
func (s *Server) ConnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameName := r.PathValue("game")
		teamID := r.PathValue("teamId")

		entity, err := s.Teams.Team(teamID)
		if err != nil {
			http.Error(w, "Failed to reach team", http.StatusInternalServerError)
			log.Error("Failed to reach team", "teamId", teamID, "error", err)
			return
		}

		// The registry owns the display name; mirror it onto the entity so
		// the initial snapshot is current even after a restart.
		if g, err := s.Games.Get(gameName); err == nil {
			if name, err := g.DisplayName(teamID); err == nil {
				entity.SetName(name)
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade connection", "error", err)
			return
		}
		log.Info("Viewer connected", "game", gameName, "teamId", teamID)

		viewer := team.NewViewer(conn)
		entity.Attach(viewer)
		s.Metrics.IncViewerConnections()
		go viewer.WritePump()

		go func() {
			defer func() {
				entity.Detach(viewer)
				s.Metrics.DecViewerConnections()
				log.Info("Viewer disconnected", "game", gameName, "teamId", teamID)
			}()
			for {
				var msg clientMessage
				if err := conn.ReadJSON(&msg); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						log.Warn("Viewer read failed", "teamId", teamID, "error", err)
					}
					return
				}
				switch msg.Type {
				case "click":
					if err := entity.RecordClick(msg.Username); err != nil {
						log.Warn("Failed to record click", "username", msg.Username, "error", err)
					}
				case "hello":
					entity.Refresh(viewer)
				default:
					log.Debug("Ignoring unknown message", "type", msg.Type)
				}
			}
		}()
	}
}
