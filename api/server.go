package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/fundspark/fundspark-backend/auth"
	"github.com/fundspark/fundspark-backend/config"
	"github.com/fundspark/fundspark-backend/database"
	"github.com/fundspark/fundspark-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, settings config.Settings, uploader *services.Uploader) (Server, error) {
	c := config.New()

	address := fmt.Sprintf("0.0.0.0:%s", settings.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	tokens, err := auth.NewTokenManager(settings.SecretKey, settings.Algorithm, settings.AccessTokenLifetime)
	if err != nil {
		return Server{}, err
	}

	router := newRouter(db, tokens, uploader, settings)

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

func newRouter(db database.Database, tokens auth.TokenManager, uploader *services.Uploader, settings config.Settings) *chi.Mux {
	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	allowedOrigins := []string{"https://" + settings.Origin}
	if settings.Origin == "" {
		allowedOrigins = []string{"*"}
	}
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	handlers := initializeHandlers(db, tokens, uploader, settings)
	authMiddleware := newAuthMiddleware(tokens, db.UserRepo())

	setupRoutes(chiRouter, handlers, authMiddleware)

	// Serve stored uploads as static files
	uploadsRoot := http.Dir(filepath.Join(settings.BaseDir, settings.UploadDir))
	chiRouter.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsRoot)))

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
