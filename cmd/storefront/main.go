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

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/Amansahu83/clothstore-web/internal/cart"
	"github.com/Amansahu83/clothstore-web/internal/checkout"
	"github.com/Amansahu83/clothstore-web/internal/config"
	h "github.com/Amansahu83/clothstore-web/internal/http"
	"github.com/Amansahu83/clothstore-web/internal/kvstore"
	"github.com/Amansahu83/clothstore-web/internal/notify"
	"github.com/Amansahu83/clothstore-web/internal/session"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open state store: %v", err)
	}
	defer cleanup()

	bus := session.NewBroadcaster()
	sessions := session.NewManager(store, bus)
	api := backend.NewClient(cfg.BackendURL, sessions, cfg.BackendTimeout)
	cartManager := cart.NewManager(store)
	checkoutService := checkout.NewService(cartManager, api)
	poller := notify.NewPoller(store, api, sessions, cfg.PollInterval)

	// The poller's timer lives exactly as long as the process context;
	// cancelling ctx is what stops it.
	authCh, unsubscribe := bus.Subscribe()
	defer unsubscribe()
	go poller.Run(ctx, authCh)

	router := h.NewRouter(h.RouterConfig{
		Auth:           h.NewAuthHandler(api, sessions),
		Cart:           h.NewCartHandler(cartManager),
		Products:       h.NewProductsHandler(api),
		Orders:         h.NewOrdersHandler(api, checkoutService),
		Payments:       h.NewPaymentsHandler(api),
		Notifications:  h.NewNotificationsHandler(poller),
		Sessions:       sessions,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront gateway starting on :%s (backend %s)", cfg.HTTPPort, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	cancel() // stop the poller

	log.Println("server exited")
}

func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func(), error) {
	noop := func() {}

	switch cfg.StateBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, err
		}
		log.Printf("state store: redis at %s (namespace %s)", cfg.RedisAddr, cfg.StateNamespace)
		return kvstore.NewRedisStore(client, cfg.StateNamespace), func() { client.Close() }, nil
	case "memory":
		log.Printf("state store: in-memory (state is lost on restart)")
		return kvstore.NewMemoryStore(), noop, nil
	case "none":
		log.Printf("state store: disabled")
		return kvstore.Noop{}, noop, nil
	default:
		fileStore, err := kvstore.OpenFileStore(cfg.StateFile)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("state store: file at %s", cfg.StateFile)
		return fileStore, noop, nil
	}
}
