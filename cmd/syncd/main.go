// cmd/syncd/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/agrimart-client/internal/app"
	"github.com/your-org/agrimart-client/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Build the application context
	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	log.Println("✅ Local store connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run periodic cart reconciliation until interrupted
	go runSyncLoop(ctx, application)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")
	cancel()

	// Give the in-flight pass a moment to finish its remote calls
	time.Sleep(time.Second)
	log.Println("✅ Sync agent stopped")
}

// runSyncLoop runs one reconciliation pass per interval. Failures are
// reported and the loop keeps going; the local cart stays usable
// regardless.
func runSyncLoop(ctx context.Context, application *app.App) {
	ticker := time.NewTicker(application.Config.Sync.Interval)
	defer ticker.Stop()

	for {
		result, err := application.Cart.Sync(ctx)
		if err != nil {
			application.Log.WithError(err).Error("Cart sync pass failed")
		} else if len(result.Issues) > 0 {
			application.Log.WithField("issues", result.Issues).Warn("Cart sync pass completed with issues")
		} else if result.Synced {
			application.Log.WithField("items", len(result.LocalItems)).Debug("Cart sync pass completed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
