package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calcapi/internal/handlers"
	"calcapi/internal/logger"
	"calcapi/internal/repository"
	"calcapi/internal/repository/db"
	"calcapi/internal/server"
	"calcapi/internal/service"

	"github.com/spf13/viper"

	_ "calcapi/docs"
)

// @title           calcapi
// @description     Token-authenticated calculation storage.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const defaultTokenTTLMinutes = 30

var errEmptySigningKey = errors.New("auth.signing_key must be set")

func main() {
	// load config.yml
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger with configured level
	log := logger.Get(viper.GetString("log.level"))

	// signing key is the one piece of config the process cannot run without
	tokens, err := tokenConfig()
	if err != nil {
		log.Fatalw("invalid auth config", "err", err)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, tokens)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// tokenConfig builds the immutable signing configuration. An empty key
// aborts startup.
func tokenConfig() (service.TokenConfig, error) {
	key := viper.GetString("auth.signing_key")
	if key == "" {
		return service.TokenConfig{}, errEmptySigningKey
	}
	ttlMinutes := viper.GetInt("auth.token_ttl_minutes")
	if ttlMinutes <= 0 {
		ttlMinutes = defaultTokenTTLMinutes
	}
	return service.TokenConfig{
		SigningKey: key,
		TTL:        time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
