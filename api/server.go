package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/playrelay/chessroom/game/service"
)

// Server is the HTTP composition root. It mounts the websocket upgrade
// route, the read-only inspection API, the observability endpoints and the
// static page delegation on a single router. All gameplay happens over the
// websocket; nothing here mutates a room.
type Server struct {
	relay     service.RelayService
	ws        http.Handler
	mcp       http.Handler
	staticDir string
	router    *mux.Router
}

// NewServer wires the routes. ws serves the upgrade endpoint; mcp, when
// non-nil, is mounted on /mcp. An empty staticDir falls back to ./static.
func NewServer(relay service.RelayService, ws http.Handler, mcp http.Handler, staticDir string) *Server {
	if staticDir == "" {
		staticDir = "./static"
	}
	s := &Server{
		relay:     relay,
		ws:        ws,
		mcp:       mcp,
		staticDir: staticDir,
		router:    mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Read-only inspection API
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	api.HandleFunc("/rooms/{id}", s.handleGetRoom).Methods("GET")
	api.HandleFunc("/rooms/{id}/moves", s.handleGetMoves).Methods("GET")

	// Observability
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	if s.mcp != nil {
		s.router.Handle("/mcp", s.mcp)
	}

	// WebSocket
	s.router.Handle("/ws", s.ws)

	// Static files
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Inspection Handlers

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.relay.Rooms()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rooms),
		"rooms": rooms,
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["id"]

	state, err := s.relay.RoomState(roomID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetMoves(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["id"]

	moves, err := s.relay.MoveLog(roomID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(moves),
		"moves": moves,
	})
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.relay.Stats()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"rooms":       stats.Rooms,
		"connections": stats.Connections,
		"uptime":      stats.Uptime,
	})
}
