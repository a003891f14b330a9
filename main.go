package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"searchagent/agent"
	"searchagent/api"
	"searchagent/archive"
	"searchagent/cache"
	"searchagent/config"
	"searchagent/stream"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	ag := agent.New(cfg)
	defer ag.Close()

	if cfg.CacheEnabled {
		c, err := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.CacheTTL)
		if err != nil {
			log.Printf("Warning: cache disabled: %v", err)
		} else {
			ag.Cache = c
		}
	}

	if cfg.ArchiveBucket != "" {
		ar, err := archive.New(context.Background(), cfg.ArchiveBucket, cfg.ArchivePrefix, os.Getenv("AWS_REGION"))
		if err != nil {
			log.Printf("Warning: archive disabled: %v", err)
		} else {
			ag.Archive = ar
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := stream.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Printf("Warning: news stream disabled: %v", err)
		} else {
			ag.Stream = pub
		}
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := api.NewRouter(ag)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/search")
	log.Println("  POST /api/scrape")
	log.Println("  POST /api/analyze")
	log.Println("  POST /api/news")
	log.Println("  POST /api/query/analysis")

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Shut down cleanly so the Chrome process does not outlive the server.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
