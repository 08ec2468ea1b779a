// Command ratingsync reconciles a chess club's roster ratings with
// the official FIDE rating lists.
//
// Usage:
//
//	ratingsync run                 # one-shot: scrape, reconcile, write JSON
//	ratingsync run --out club.json
//	ratingsync serve               # run + REST/WebSocket API + daily refresh
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fortuna/ratingsync/internal/api/rest"
	"github.com/fortuna/ratingsync/internal/api/websocket"
	"github.com/fortuna/ratingsync/internal/cache"
	"github.com/fortuna/ratingsync/internal/config"
	"github.com/fortuna/ratingsync/internal/fide"
	"github.com/fortuna/ratingsync/internal/pipeline"
	"github.com/fortuna/ratingsync/internal/publisher"
	"github.com/fortuna/ratingsync/internal/ratingviewer"
)

const (
	serviceName    = "ratingsync"
	serviceVersion = "1.0.0"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Chess club rating reconciliation against FIDE lists",
	}

	root.AddCommand(runCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape, reconcile and write the report once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if out != "" {
				cfg.OutputFile = out
			}

			log.Printf("Starting %s v%s", serviceName, serviceVersion)

			svc, cleanup, err := buildService(cfg, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}

			if err := result.Report.WriteFile(cfg.OutputFile); err != nil {
				return err
			}

			log.Printf("Done! Saved data to %s", cfg.OutputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output JSON path (default from OUTPUT_FILE)")
	return cmd
}

// --------------------------------------------------------------------------
// serve command
// --------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run once, then serve the report over HTTP with daily refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			log.Printf("Starting %s v%s (serve mode)", serviceName, serviceVersion)

			wsServer := websocket.NewServer()
			svc, cleanup, err := buildService(cfg, wsServer.BroadcastEvent)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			restServer := rest.NewServer(cfg.RESTPort, svc)
			go func() {
				log.Printf("Starting REST API server on port %s", cfg.RESTPort)
				if err := restServer.Start(); err != nil {
					log.Printf("REST server error: %v", err)
				}
			}()

			go func() {
				if err := wsServer.Start(cfg.WSPort); err != nil {
					log.Printf("WebSocket server error: %v", err)
				}
			}()

			log.Printf("✓ REST API: http://0.0.0.0:%s", cfg.RESTPort)
			log.Printf("✓ WebSocket: ws://0.0.0.0:%s/ws/progress", cfg.WSPort)

			// Initial run in the background so the API is available
			// immediately.
			go func() {
				result, err := svc.Run(ctx)
				if err != nil {
					log.Printf("❌ Initial run failed: %v", err)
					return
				}
				if err := result.Report.WriteFile(cfg.OutputFile); err != nil {
					log.Printf("⚠️  Failed to write report file: %v", err)
				}
			}()

			if cfg.EnableDailyRefresh {
				go svc.RunDaily(ctx, cfg.RefreshHour)
			}

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan

			log.Println("Shutting down gracefully...")
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := restServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("REST API server shutdown error: %v", err)
			}
			if err := wsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("WebSocket server shutdown error: %v", err)
			}

			log.Printf("%s stopped", serviceName)
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// wiring
// --------------------------------------------------------------------------

// buildService assembles the pipeline: scraper, list client, optional
// Redis cache/publisher, and the event handler.
func buildService(cfg config.Config, onEvent func(pipeline.Event)) (*pipeline.Service, func(), error) {
	scraper, err := ratingviewer.NewClient()
	if err != nil {
		return nil, nil, err
	}

	var snapshots *cache.SnapshotCache
	var streams *publisher.RedisPublisher
	if cfg.RedisURL != "" {
		snapshots, err = cache.NewSnapshotCache(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v (snapshot caching disabled)", err)
		} else {
			log.Println("✓ Connected to Redis")
			streams = publisher.NewRedisPublisher(snapshots.Client())
		}
	}

	runner := pipeline.NewRunner(pipeline.Config{
		ClubURL:  cfg.ClubURL,
		ClubName: cfg.ClubName,
		BaseURL:  cfg.BaseURL,
	}, scraper, fide.NewClient(), snapshots)

	runner.OnEvent = func(ev pipeline.Event) {
		if onEvent != nil {
			onEvent(ev)
		}
		if streams != nil && ev.Type == "player" {
			if err := streams.PublishPlayerUpdate(context.Background(), ev); err != nil {
				log.Printf("⚠️  Failed to publish event: %v", err)
			}
		}
	}

	cleanup := func() {
		scraper.Close()
		if snapshots != nil {
			snapshots.Close()
		}
	}

	return pipeline.NewService(runner), cleanup, nil
}
