package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admitd/internal/adapters/httpapi"
	"admitd/internal/adapters/worker"
	"admitd/internal/application"
	"admitd/internal/config"
	"admitd/internal/infrastructure/database"
	"admitd/internal/infrastructure/feed"
	"admitd/internal/infrastructure/i18n"
	"admitd/internal/infrastructure/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := obs.InitTracer("admitd", cfg.OTLPEndpoint, cfg.Environment)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	eventRepo := database.NewEventRepository(pool)
	userRepo := database.NewUserRepository(pool)
	waitlistRepo := database.NewWaitlistRepository(pool)
	notificationRepo := database.NewNotificationRepository(pool)
	outbox := database.NewLedgerOutbox(pool)
	txRunner := database.NewTxRunner(pool)

	publisher, err := feed.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Fatalf("feed publisher: %v", err)
	}
	defer publisher.Close()

	consumer, err := feed.NewConsumer(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Fatalf("feed consumer: %v", err)
	}
	defer consumer.Close()

	ledgerSvc := application.NewLedgerService(userRepo, eventRepo, outbox, txRunner)
	rosterSvc := application.NewRosterService(eventRepo, userRepo, waitlistRepo, outbox, txRunner, ledgerSvc, nil)
	eventSvc := application.NewEventService(eventRepo, txRunner)
	identity := application.NewIdentityResolver(userRepo)
	grouper := application.NewGrouper(notificationRepo, eventRepo, identity)
	notificationSvc := application.NewNotificationService(notificationRepo, eventRepo, grouper, publisher, nil, nil)
	hub := application.NewFeedHub(grouper)

	go func() {
		if err := hub.Run(ctx, consumer); err != nil {
			log.Printf("feed hub stopped: %v", err)
		}
	}()

	reconciler := worker.NewReconciler(outbox, ledgerSvc, cfg.ReconcileInterval, cfg.ReconcileBatchSize)
	go reconciler.Run(ctx)

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	server := httpapi.NewServer(rosterSvc, eventSvc, ledgerSvc, notificationSvc, hub, translator, cfg.RequestTimeout)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("http server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
