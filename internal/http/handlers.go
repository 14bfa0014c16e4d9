package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/clicky-block/internal/game"
	"github.com/mauv0809/clicky-block/internal/team"
	"github.com/mauv0809/clicky-block/web"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// JoinHandler assigns the player to a team of the current game, stores the
// resolved username and team id in cookies and redirects to the play view.
func (s *Server) JoinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		username := r.PostFormValue("username")
		if username == "" {
			http.Error(w, "Missing username!", http.StatusBadRequest)
			return
		}
		country := callerCountry(r)

		g, err := s.Games.Get(s.Cfg.CurrentGame)
		if err != nil {
			http.Error(w, "Failed to open game", http.StatusInternalServerError)
			log.Error("Failed to open game", "game", s.Cfg.CurrentGame, "error", err)
			return
		}

		assigned, teamID, err := g.AssignPlayer(username, country)
		if err != nil {
			http.Error(w, "Failed to join a team", http.StatusInternalServerError)
			log.Error("Failed to assign player", "username", username, "error", err)
			return
		}

		setSessionCookie(w, "username", assigned)
		setSessionCookie(w, "teamId", teamID)

		playURL := fmt.Sprintf("/play/%s/%s", g.Name(), teamID)
		http.Redirect(w, r, playURL, http.StatusFound)
	}
}

// callerCountry reads the geography tag attached by the edge, if any.
func callerCountry(r *http.Request) string {
	if country := r.Header.Get("CF-IPCountry"); country != "" {
		return country
	}
	if country := r.Header.Get("X-Country"); country != "" {
		return country
	}
	return "unknown"
}

func setSessionCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) JoinPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		servePage(w, "index.html")
	}
}

// PlayPageHandler serves the team play view. Without a resolved-username
// session the player is sent back to the join entry point.
func (s *Server) PlayPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("username"); err != nil {
			log.Info("Missing username cookie, redirecting to join")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		servePage(w, "play.html")
	}
}

func (s *Server) LeaderboardPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		servePage(w, "leaderboard.html")
	}
}

func (s *Server) StaticHandler() http.Handler {
	return http.StripPrefix("/static/", http.FileServerFS(web.FS))
}

func servePage(w http.ResponseWriter, name string) {
	data, err := web.FS.ReadFile(name)
	if err != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := s.Games.Get(r.PathValue("game"))
		if err != nil {
			http.Error(w, "Failed to open game", http.StatusInternalServerError)
			log.Error("Failed to open game", "error", err)
			return
		}
		standings, err := g.Leaderboard()
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard", "error", err)
			return
		}
		writeJSON(w, leaderboardResponse{Results: standings})
	}
}

func (s *Server) PlacementHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := s.Games.Get(r.PathValue("game"))
		if err != nil {
			http.Error(w, "Failed to open game", http.StatusInternalServerError)
			log.Error("Failed to open game", "error", err)
			return
		}
		placement, total, err := g.Placement(r.PathValue("teamId"))
		if errors.Is(err, game.ErrTeamNotFound) {
			http.Error(w, "Unknown team", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get placement", http.StatusInternalServerError)
			log.Error("Failed to get placement", "error", err)
			return
		}
		writeJSON(w, placementResponse{Placement: placement, TotalCount: total})
	}
}

// ClickHandler records one click for the session's username on the target
// team. A click from a username that never joined the roster is a caller
// error, not silently dropped.
func (s *Server) ClickHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
			if cookie, cerr := r.Cookie("username"); cerr == nil {
				req.Username = cookie.Value
			}
		}
		if req.Username == "" {
			http.Error(w, "Missing username!", http.StatusBadRequest)
			return
		}

		entity, err := s.Teams.Team(r.PathValue("teamId"))
		if err != nil {
			http.Error(w, "Failed to reach team", http.StatusInternalServerError)
			log.Error("Failed to reach team", "error", err)
			return
		}

		if err := entity.RecordClick(req.Username); err != nil {
			if errors.Is(err, team.ErrUnknownPlayer) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(clickResponse{Success: false})
				return
			}
			http.Error(w, "Failed to record click", http.StatusInternalServerError)
			log.Error("Failed to record click", "error", err)
			return
		}
		writeJSON(w, clickResponse{Success: true})
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity, err := s.Teams.Team(r.PathValue("teamId"))
		if err != nil {
			http.Error(w, "Failed to reach team", http.StatusInternalServerError)
			log.Error("Failed to reach team", "error", err)
			return
		}
		stats, err := entity.Stats()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get stats", "error", err)
			return
		}
		writeJSON(w, statsResponse{Results: stats})
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
