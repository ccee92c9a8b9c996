package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sway-pr/config"
	"sway-pr/internal/handlers"
	"sway-pr/internal/repositories"
	"sway-pr/internal/services"
	"sway-pr/internal/utils"
	"sway-pr/internal/wsnotify"
	"sway-pr/migrations"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on start")
	return cmd
}

// openDatabase connects and, when asked, brings the schema up to date.
func openDatabase(cfg *config.Config, migrate bool) (*sql.DB, error) {
	db, err := config.ConnectDatabase(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := migrations.Up(db, cfg.Database.Driver); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func serve(cfg *config.Config, migrate bool) error {
	db, err := openDatabase(cfg, migrate)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := handlers.Options{
		Hub:     wsnotify.Manager,
		Metrics: services.NewMetrics(),
	}

	if cfg.S3Config.Enabled {
		s3Service, err := services.NewS3Service(cfg.S3Config)
		if err != nil {
			utils.LogError("S3 archive disabled: %v", err)
		} else {
			opts.Archive = s3Service
		}
	}

	if cfg.Session.Store == "redis" {
		redisOpts, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("error connecting to redis: %v", err)
		}
		opts.Sessions = repositories.NewRedisSessionStore(client)
	}

	handler := handlers.NewHTTPHandler(db, cfg, opts)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		utils.LogInfo("Server is running on http://localhost:%d", cfg.Port)
		utils.LogInfo("Swagger UI available at: http://%s/api/swagger-ui/", cfg.SwaggerHost)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("error starting server: %v", err)
		}
		return nil
	case <-stop:
	}

	utils.LogInfo("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		utils.LogError("Error shutting down server: %v", err)
	}

	utils.LogInfo("Server stopped successfully")
	return nil
}
