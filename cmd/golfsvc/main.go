package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/minigolf-services/configs"
	"github.com/avvvet/minigolf-services/internal/golfsvc/broker"
	svcconfig "github.com/avvvet/minigolf-services/internal/golfsvc/config"
	"github.com/avvvet/minigolf-services/internal/golfsvc/db"
	"github.com/avvvet/minigolf-services/internal/golfsvc/handlers"
	"github.com/avvvet/minigolf-services/internal/golfsvc/hub"
	"github.com/avvvet/minigolf-services/internal/golfsvc/service"
	"github.com/avvvet/minigolf-services/internal/golfsvc/store"
	"github.com/avvvet/minigolf-services/internal/golfsvc/sweep"
	nats "github.com/avvvet/minigolf-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "golf"

func init() {
	config.Logging(SERVICE_NAME + "_service")
	config.LoadEnv(SERVICE_NAME)
	config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {
	cfg := svcconfig.Load()

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx, dbpool); err != nil {
		migrateCancel()
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	migrateCancel()

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// the hub is one process-wide instance, injected everywhere delivery
	// is needed
	h := hub.NewHub()

	// outbox bridge: mutations publish, the subscription feeds the hub
	b := broker.NewBroker(n.Conn, h)
	sub, err := b.Subscribe()
	if err != nil {
		log.Errorf("Error: unable to subscribe to game updates %v", err)
		os.Exit(0)
	}

	gameStore := store.NewGameStore(dbpool)
	playerStore := store.NewPlayerStore(dbpool)
	scoreStore := store.NewScoreStore(dbpool)
	userStore := store.NewUserStore(dbpool)

	gameService := service.NewGameService(gameStore, playerStore, scoreStore, b)
	scoreService := service.NewScoreService(gameStore, playerStore, scoreStore, gameService, cfg.MaxShots)
	playerService := service.NewPlayerService(gameStore, playerStore, gameService, scoreService)
	userService := service.NewUserService(userStore)

	// daily stale game sweep
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	sweep.NewSweeper(gameStore).Start(sweepCtx)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	hn := handlers.NewHandler(gameService, playerService, scoreService, userService, h)
	hn.InitAuth()
	hn.SetRoutes(r)

	// Create server with timeout settings; no WriteTimeout so the live
	// update streams are not cut off between heartbeats
	server := &http.Server{
		Addr:        ":" + os.Getenv("GOLF_SERVICE_PORT"),
		Handler:     r,
		ReadTimeout: 60 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()
	sweepCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
