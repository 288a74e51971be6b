package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/buyer-intake/internal/infra/database"
	"github.com/xavierca1/buyer-intake/internal/infra/http/handlers"
	"github.com/xavierca1/buyer-intake/internal/infra/http/middleware"
	"github.com/xavierca1/buyer-intake/internal/infra/mail"
	"github.com/xavierca1/buyer-intake/internal/infra/queue"
	"github.com/xavierca1/buyer-intake/internal/infra/worker"
	"github.com/xavierca1/buyer-intake/internal/usecase"
)

func main() {
	godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Error("failed to connect to Postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 1. Repositories
	buyerRepo := database.NewBuyerRepository(db)
	historyRepo := database.NewHistoryRepository(db)

	// 2. Queue + notification worker (optional: the API works without a broker,
	// it just stops emitting lead events)
	var producer usecase.QueueProducerInterface
	var rabbitConn *amqp.Connection
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		rabbitMQ, err := queue.NewRabbitMQ(url)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if mailPort == 0 {
			mailPort = 587
		}
		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), mailPort,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"), os.Getenv("MAIL_NOTIFY_TO"),
		)

		notifier := queue.NewWorker(rabbitMQ.Ch, mailSender, logger)
		go notifier.Start(queue.QueueName)
	} else {
		logger.Warn("RABBITMQ_URL not set, lead notifications disabled")
	}

	// 3. Background housekeeping
	retention := worker.NewHistoryRetentionWorker(historyRepo, logger)
	go retention.Start(context.Background())

	// 4. Use cases
	createUC := usecase.NewCreateBuyerUseCase(buyerRepo, historyRepo, producer)
	updateUC := usecase.NewUpdateBuyerUseCase(buyerRepo, historyRepo)
	listUC := usecase.NewListBuyersUseCase(buyerRepo)
	importUC := usecase.NewImportBuyersUseCase(buyerRepo, producer)
	exportUC := usecase.NewExportBuyersUseCase(buyerRepo)

	// 5. Handlers
	buyerHandler := handlers.NewBuyerHandler(createUC, updateUC, listUC, buyerRepo, historyRepo)
	ioHandler := handlers.NewImportExportHandler(importUC, exportUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	r.Route("/buyers", func(r chi.Router) {
		r.Get("/", buyerHandler.List)
		r.Post("/", buyerHandler.Create)
		r.Post("/import", ioHandler.Import)
		r.Get("/export", ioHandler.Export)
		r.Get("/{id}", buyerHandler.Get)
		r.Patch("/{id}", buyerHandler.Update)
		r.Delete("/{id}", buyerHandler.Delete)
	})
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("buyer intake API listening", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
