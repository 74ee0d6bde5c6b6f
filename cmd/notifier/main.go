package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contact-service/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := app.NewWorker(ctx)
	if err != nil {
		log.Fatal("Failed to initialize notifier:", err)
	}

	runErr := worker.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := worker.Close(shutdownCtx); err != nil {
		log.Println("Notifier close error:", err)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal("Notifier stopped:", runErr)
	}
	log.Println("Notifier exited gracefully")
}
