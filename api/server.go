package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tunetrivia/tunetrivia/audio"
	"github.com/tunetrivia/tunetrivia/enrich"
	"github.com/tunetrivia/tunetrivia/game/engine"
	"github.com/tunetrivia/tunetrivia/game/service"
	"github.com/tunetrivia/tunetrivia/game/session"
	"github.com/tunetrivia/tunetrivia/lists"
	"github.com/tunetrivia/tunetrivia/provider"
	"github.com/tunetrivia/tunetrivia/storage"
	"github.com/tunetrivia/tunetrivia/transport/websocket"
	"github.com/tunetrivia/tunetrivia/validate"
)

// Deps carries everything the server needs beyond the game service.
// Lists, Library, and Fetcher may be nil; their endpoints then return
// errors instead of panicking.
type Deps struct {
	Hub           *websocket.Hub
	Lists         *lists.Manager
	Library       *enrich.Library
	Fetcher       *audio.Fetcher
	JWTSecret     []byte
	AdminPassword string
	CORSOrigins   []string
}

// Server represents the REST API server
type Server struct {
	service       service.GameService
	hub           *websocket.Hub
	lists         *lists.Manager
	library       *enrich.Library
	fetcher       *audio.Fetcher
	jwtSecret     []byte
	adminPassword string
	corsOrigins   []string
	router        *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, deps Deps) *Server {
	s := &Server{
		service:       gameService,
		hub:           deps.Hub,
		lists:         deps.Lists,
		library:       deps.Library,
		fetcher:       deps.Fetcher,
		jwtSecret:     deps.JWTSecret,
		adminPassword: deps.AdminPassword,
		corsOrigins:   deps.CORSOrigins,
		router:        mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Game operations
	api.HandleFunc("/game/start", s.handleStartGame).Methods("POST")
	api.HandleFunc("/game/guess", s.handleSubmitGuess).Methods("POST")
	api.HandleFunc("/game/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/game/session/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/game/session/{id}", s.handleEndSession).Methods("DELETE")
	api.HandleFunc("/game/session/{id}/preview", s.handlePreview).Methods("GET")
	api.HandleFunc("/game/stats/{id}", s.handleFinalStats).Methods("GET")

	// Song discovery
	api.HandleFunc("/songs/search", s.handleSearchSongs).Methods("POST")

	// Admin
	api.HandleFunc("/admin/login", s.handleLogin).Methods("POST")
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.requireAuth)
	admin.HandleFunc("/lists", s.handleListLists).Methods("GET")
	admin.HandleFunc("/lists", s.handleCreateList).Methods("POST")
	admin.HandleFunc("/lists/validate", s.handleValidateList).Methods("POST")
	admin.HandleFunc("/lists/{id}", s.handleGetList).Methods("GET")
	admin.HandleFunc("/lists/{id}", s.handleDeleteList).Methods("DELETE")
	admin.HandleFunc("/lists/{id}/songs", s.handleAddSong).Methods("POST")
	admin.HandleFunc("/lists/{id}/songs/{songID}", s.handleRemoveSong).Methods("DELETE")
	admin.HandleFunc("/suggest", s.handleSuggest).Methods("GET")
	admin.HandleFunc("/library", s.handleSaveLibraryEntry).Methods("POST")
	admin.HandleFunc("/library/stats", s.handleLibraryStats).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Operational
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/", s.handleRoot).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.cors(s.router).ServeHTTP(w, r)
}

// cors applies the configured allowed origins and answers preflight
// requests. gorilla/mux has no built-in CORS layer, so this stays
// hand-rolled.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
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

// statusFor maps service errors onto HTTP status codes. Unexpected
// engine states are logged because they indicate a server bug, not a
// bad request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, lists.ErrListNotFound),
		errors.Is(err, lists.ErrSongNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrGameComplete),
		errors.Is(err, engine.ErrInvalidRoundCount),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, provider.ErrUnknownProvider),
		errors.Is(err, provider.ErrUnknownMode),
		errors.Is(err, provider.ErrNoSongsFound):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrInvalidRoundState):
		log.Printf("engine state error: %v", err)
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

// Game Handlers

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req service.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.StartGame(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Guess     string `json:"guess"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	outcome, err := s.service.SubmitGuess(r.Context(), req.SessionID, req.Guess)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSessionInfo(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	final, err := s.service.EndSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Session ended",
		"final_stats": final,
	})
}

func (s *Server) handleFinalStats(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	final, err := s.service.GetFinalStats(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, final)
}

// handlePreview streams the current round's audio clip through the
// server so the browser never sees the provider URL (which can leak
// the song title).
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		respondError(w, http.StatusNotImplemented, "Preview streaming is not configured")
		return
	}
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSessionInfo(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if info.Prompt == nil || info.Prompt.PreviewURL == "" {
		respondError(w, http.StatusNotFound, "No preview for the current round")
		return
	}

	body, contentType, err := s.fetcher.Fetch(r.Context(), info.Prompt.PreviewURL)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	io.Copy(w, body)
}

// Song Discovery Handlers

func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tracks, err := s.service.SearchSongs(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(tracks),
		"tracks": tracks,
	})
}

// Admin Handlers

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	if s.lists == nil {
		respondError(w, http.StatusNotImplemented, "Custom lists are not configured")
		return
	}

	summaries, err := s.lists.Summaries()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(summaries),
		"lists": summaries,
	})
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	if s.lists == nil {
		respondError(w, http.StatusNotImplemented, "Custom lists are not configured")
		return
	}

	var req struct {
		Name           string `json:"name"`
		Description    string `json:"description"`
		TargetAudience string `json:"target_audience"`
		PrimaryDecade  string `json:"primary_decade"`
		PrimaryGenre   string `json:"primary_genre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	list, err := s.lists.CreateList(req.Name, req.Description, req.TargetAudience, req.PrimaryDecade, req.PrimaryGenre)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, list)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	if s.lists == nil {
		respondError(w, http.StatusNotImplemented, "Custom lists are not configured")
		return
	}

	list, err := s.lists.GetList(mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if s.lists == nil {
		respondError(w, http.StatusNotImplemented, "Custom lists are not configured")
		return
	}
	listID := mux.Vars(r)["id"]

	if err := s.lists.DeleteList(listID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "List " + listID + " deleted",
	})
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	if s.lists == nil {
		respondError(w, http.StatusNotImplemented, "Custom lists are not configured")
		return
	}

	var song lists.CustomSong
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if song.Name == "" || song.Artist == "" {
		respondError(w, http.StatusBadRequest, "name and artist are required")
		return
	}
	if song.Difficulty != "" && !validate.Difficulty(song.Difficulty) {
		respondError(w, http.StatusBadRequest, "unknown difficulty "+song.Difficulty)
		return
	}

	list, err := s.lists.AddSong(mux.Vars(r)["id"], song)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, list)
}

func (s *Server) handleRemoveSong(w http.ResponseWriter, r *http.Request) {
	if s.lists == nil {
		respondError(w, http.StatusNotImplemented, "Custom lists are not configured")
		return
	}
	vars := mux.Vars(r)

	list, err := s.lists.RemoveSong(vars["id"], vars["songID"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleValidateList(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	result := validate.ListDocument(data)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  result.Valid,
		"errors": result.Errors,
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	artist := query.Get("artist")
	track := query.Get("track")
	if artist == "" && track == "" {
		respondError(w, http.StatusBadRequest, "artist or track is required")
		return
	}

	var suggestion enrich.Suggestion
	if s.library != nil {
		suggestion = s.library.Suggest(
			query.Get("provider"),
			query.Get("song_id"),
			artist, track,
			query.Get("release_date"),
		)
	} else {
		suggestion = enrich.Enrich(artist, track, enrich.YearFromReleaseDate(query.Get("release_date")))
	}

	respondJSON(w, http.StatusOK, suggestion)
}

func (s *Server) handleSaveLibraryEntry(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		respondError(w, http.StatusNotImplemented, "Metadata library is not configured")
		return
	}

	var entry enrich.SongEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.ID == "" || entry.Provider == "" {
		respondError(w, http.StatusBadRequest, "id and provider are required")
		return
	}

	saved, err := s.library.Save(entry)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleLibraryStats(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		respondError(w, http.StatusNotImplemented, "Metadata library is not configured")
		return
	}

	respondJSON(w, http.StatusOK, s.library.Stats())
}

// WebSocket and Health

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket is not configured", http.StatusNotImplemented)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	if _, err := s.service.GetSessionInfo(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Music Trivia Game API",
		"version": "1.0.0",
		"status":  "running",
	})
}
