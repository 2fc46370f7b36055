package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/mealbook/internal/database"
	"github.com/dukerupert/mealbook/internal/logging"
	"github.com/dukerupert/mealbook/internal/registry"
	"github.com/dukerupert/mealbook/internal/server"
	"github.com/dukerupert/mealbook/internal/store"
)

func main() {
	port := os.Getenv("MEALBOOK_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("MEALBOOK_DB_PATH")
	if dbPath == "" {
		dbPath = "mealbook.db"
	}

	logger := logging.Setup(os.Getenv("MEALBOOK_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	reg := registry.New(store.NewKVStore(db), nil, logger.With("component", "registry"))
	if err := reg.Load(); err != nil {
		logger.Error("failed to load member registry", "error", err)
		os.Exit(1)
	}

	srv := server.New(reg, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Mealbook running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
