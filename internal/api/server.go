package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/evelynxu/marksearch/internal/config"
	"github.com/evelynxu/marksearch/internal/constants"
	interrors "github.com/evelynxu/marksearch/internal/errors"
	"github.com/evelynxu/marksearch/internal/logger"
	"github.com/evelynxu/marksearch/internal/models"
	"github.com/evelynxu/marksearch/internal/search"
)

type APIServer struct {
	cfg    *config.Config
	repo   *models.BookmarkRepository
	engine *search.Engine
	server *http.Server
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewAPIServer(cfg *config.Config, repo *models.BookmarkRepository, engine *search.Engine) *APIServer {
	return &APIServer{
		cfg:    cfg,
		repo:   repo,
		engine: engine,
	}
}

func (s *APIServer) Start(host string, port int) error {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/search", s.handleSearch).Methods("GET")
	api.HandleFunc("/bookmarks", s.handleListBookmarks).Methods("GET")
	api.HandleFunc("/bookmarks", s.handleDeleteBookmark).Methods("DELETE")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")

	router.Use(loggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	logger.Info("API server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.LogRequest(r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]string{
			"status":  "healthy",
			"service": "marksearch",
		},
	})
}

func (s *APIServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter 'q'")
		return
	}

	limit := constants.DefaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results, err := s.engine.Search(r.Context(), query, limit)
	if err != nil {
		logger.Error("Search failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: results})
}

func (s *APIServer) handleListBookmarks(w http.ResponseWriter, _ *http.Request) {
	bookmarks, err := s.repo.GetAll()
	if err != nil {
		logger.Error("Failed to list bookmarks: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: bookmarks})
}

func (s *APIServer) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter 'url'")
		return
	}

	if err := s.repo.Delete(url); err != nil {
		if err == interrors.ErrBookmarkNotFound {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("Failed to delete bookmark: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true})
}

func (s *APIServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	count, err := s.repo.Count()
	if err != nil {
		logger.Error("Failed to count bookmarks: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"bookmarks":         count,
			"embedding_model":   s.cfg.EmbeddingModel,
			"vector_dimensions": s.cfg.VectorDimensions,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Success: false, Error: message})
}
