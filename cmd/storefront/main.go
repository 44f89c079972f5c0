package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/bus"
	"storefront/internal/config"
	"storefront/internal/httpserver"
	"storefront/internal/notify"
	"storefront/internal/repository/collection"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	sessionsvc "storefront/internal/service/session"
	statussvc "storefront/internal/service/status"
	wishlistsvc "storefront/internal/service/wishlist"
	"storefront/internal/shopapi"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	store, err := collection.NewFile(cfg.DataDir, logger)
	if err != nil {
		logger.Fatalf("init data dir: %v", err)
	}
	events := bus.New()
	notices := notify.NewCenter()
	shop := shopapi.New(cfg.ShopAPIURL, logger)

	cartService := cartsvc.New(store, events, notices, logger)
	wishlistService := wishlistsvc.New(store, events, notices, logger)
	statusService := statussvc.New(store)
	sessionService := sessionsvc.New(shop)
	checkoutService := checkoutsvc.New(cartService, shop, notices, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Shop:           shop,
		Sessions:       sessionService,
		Cart:           cartService,
		Wishlist:       wishlistService,
		Status:         statusService,
		Checkout:       checkoutService,
		Notices:        notices,
		Bus:            events,
		ImageURLHost:   cfg.ImageURLHost,
		AllowedOrigins: cfg.AllowedOrigins,
		CookieSecure:   cfg.CookieSecure,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
