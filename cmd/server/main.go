// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	evalservice "conduct/internal/evaluation/service"
	evalstore "conduct/internal/evaluation/store/evaluation"
	jwttoken "conduct/internal/jwt_token"
	notesservice "conduct/internal/notes/service"
	notestore "conduct/internal/notes/store/note"
	notifservice "conduct/internal/notification/service"
	notifstore "conduct/internal/notification/store/notification"
	"conduct/internal/platform/config"
	"conduct/internal/platform/httpserver"
	"conduct/internal/platform/logger"
	"conduct/internal/platform/metrics"
	"conduct/internal/platform/postgres"
	platformredis "conduct/internal/platform/redis"
	regservice "conduct/internal/registry/service"
	residentstore "conduct/internal/registry/store/resident"
	userstore "conduct/internal/registry/store/user"
	"conduct/internal/report"
	httptransport "conduct/internal/transport/http"
)

func main() {
	// Missing .env is fine; the environment may be set by the deployment.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	var (
		evaluations evalservice.EvaluationStore
		users       regservice.UserStore
		residents   regservice.ResidentStore
		notes       notesservice.NoteStore
		notifs      notifservice.NotificationStore
	)

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err == nil {
			err = postgres.Apply(ctx, db)
		}
		cancel()
		if err != nil {
			log.Error("postgres setup failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		evaluations = evalstore.NewPostgres(db)
		users = userstore.NewPostgres(db)
		residents = residentstore.NewPostgres(db)
		notes = notestore.NewPostgres(db)
		notifs = notifstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		evaluations = evalstore.NewInMemory()
		users = userstore.NewInMemory()
		residents = residentstore.NewInMemory()
		notes = notestore.NewInMemory()
		notifs = notifstore.NewInMemory()
		log.Warn("no database configured, state is in-memory only")
	}

	if cfg.RedisAddr != "" {
		redisClient, err := platformredis.New(cfg.RedisAddr)
		if err != nil {
			log.Error("redis setup failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		notifs = notifstore.NewCached(notifs, redisClient.Client)
		log.Info("unread counters cached in redis")
	}

	registrySvc := regservice.New(users, residents,
		regservice.WithLogger(log))
	notifSvc := notifservice.New(notifs, registrySvc,
		notifservice.WithLogger(log),
		notifservice.WithMetrics(m),
		notifservice.WithFanoutWidth(cfg.FanoutWidth))
	evalSvc := evalservice.New(evaluations,
		evalservice.WithLogger(log),
		evalservice.WithMetrics(m),
		evalservice.WithBatchWidth(cfg.BatchWidth))
	notesSvc := notesservice.New(notes,
		notesservice.WithLogger(log),
		notesservice.WithMetrics(m),
		notesservice.WithNotifier(notifSvc))
	reports := report.New(evalSvc, registrySvc, report.WithLogger(log))

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "conduct", "conduct")

	router := httptransport.NewRouter(httptransport.Services{
		Evaluations:   evalSvc,
		Notifications: notifSvc,
		Notes:         notesSvc,
		Registry:      registrySvc,
		Reports:       reports,
	}, loc, log, m, jwttoken.NewJWTServiceAdapter(jwtService))

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting conduct server", "addr", cfg.Addr, "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
