package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BaGreal2/kino-server/internal/config"
	"github.com/BaGreal2/kino-server/internal/db"
	"github.com/BaGreal2/kino-server/internal/handler"
	"github.com/BaGreal2/kino-server/internal/logger"
	"github.com/BaGreal2/kino-server/internal/middleware"
	"github.com/BaGreal2/kino-server/internal/store"
	"github.com/BaGreal2/kino-server/internal/tmdb"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()
	log.Info("database initialized", zap.String("path", cfg.DBPath))

	users := store.NewUserStore(database)
	watchlist := store.NewWatchlistStore(database)
	catalog := tmdb.NewClient(cfg.TMDBToken)

	cors := func(next http.HandlerFunc) http.HandlerFunc {
		return handler.WithCORS(cfg.AllowedOrigin, next)
	}
	secured := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", cors(handler.RegisterHandler(users, log)))
	mux.HandleFunc("/api/auth/login", cors(handler.LoginHandler(users, cfg.JWTSecret, log)))
	mux.HandleFunc("/api/auth/me", cors(secured(handler.MeHandler(users))))

	watchlistRoutes := cors(secured(handler.WatchlistRouter(watchlist, log)))
	mux.HandleFunc("/api/watchlist", watchlistRoutes)
	mux.HandleFunc("/api/watchlist/", watchlistRoutes)

	mux.HandleFunc("/api/movies/", cors(handler.MoviesRouter(catalog)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
