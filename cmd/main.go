package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"table-orders/internal/client"
	"table-orders/internal/config"
	"table-orders/internal/database"
	"table-orders/internal/logger"
	"table-orders/internal/messaging"
	"table-orders/internal/services/dashboard"
	"table-orders/internal/services/kiosk"
	"table-orders/internal/services/menu"
	"table-orders/internal/services/notification"
	"table-orders/internal/services/order"
)

func main() {
	var (
		mode     = flag.String("mode", "", "Service mode (api-server, table-kiosk, kitchen-dashboard, notification-subscriber)")
		port     = flag.Int("port", 3000, "HTTP port (api-server mode)")
		prefetch = flag.Int("prefetch", 1, "RabbitMQ prefetch count (notification-subscriber mode)")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Optional .env file for local overrides like DB_PASSWORD.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "api-server":
		if err := runAPIServer(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "API server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "table-kiosk":
		if err := runTableKiosk(ctx, cfg); err != nil {
			log.Error("service_failed", "Table kiosk failed", requestID, err, nil)
			os.Exit(1)
		}
	case "kitchen-dashboard":
		if err := runKitchenDashboard(ctx, cfg); err != nil {
			log.Error("service_failed", "Kitchen dashboard failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runAPIServer runs the HTTP API backing the kiosks and the dashboard.
func runAPIServer(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	menuService := menu.NewService(db, log)
	orderService := order.NewService(db, menuService, publisher, log)
	handler := order.NewHandler(orderService, menuService, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("API server listening on port %d", port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runTableKiosk runs the customer-facing ordering loop against the API.
func runTableKiosk(ctx context.Context, cfg *config.Config) error {
	api := client.New(cfg.Server.BaseURL)
	k := kiosk.New(api, os.Stdin, os.Stdout)
	return k.Run(ctx)
}

// runKitchenDashboard runs the crew-facing board against the API.
func runKitchenDashboard(ctx context.Context, cfg *config.Config) error {
	api := client.New(cfg.Server.BaseURL)
	view := dashboard.NewConsoleView(os.Stdout)

	s := dashboard.New(api, view,
		time.Duration(cfg.Dashboard.RefreshIntervalMS)*time.Millisecond,
		time.Duration(cfg.Dashboard.SearchDebounceMS)*time.Millisecond)

	repl := dashboard.NewREPL(s, view, os.Stdin, os.Stdout)
	return repl.Run(ctx)
}

// runNotificationSubscriber consumes order events and prints them.
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)
	defer subscriber.Close()

	return subscriber.Start(ctx)
}
