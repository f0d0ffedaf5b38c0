package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saleedit/api"
	"saleedit/cmd"
	httpin "saleedit/internal/adapters/in/http"
	"saleedit/internal/adapters/out/postgres"
	"saleedit/internal/pkg/logger"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: configs.Env, Level: configs.LogLevel})

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, log)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatal().Err(err).Msg("failed to start jobs")
	}

	err = startWebServer(app.CreateHTTPServer(), api.OpenAPI, configs.HTTPPort, log)
	jobManager.StopAll()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build http server")
	}
}

// startWebServer serves until SIGINT or SIGTERM. Jobs are stopped by the caller.
func startWebServer(s *httpin.Server, doc []byte, port string, log *logger.Logger) error {
	e, err := httpin.NewEcho(s, doc, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		log.Info().Str("addr", addr).Msg("http server started")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	return nil
}
