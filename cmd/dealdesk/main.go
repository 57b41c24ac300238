package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lsta-labs/dealdesk/internal/api"
	"github.com/lsta-labs/dealdesk/internal/config"
	"github.com/lsta-labs/dealdesk/internal/db"
	"github.com/lsta-labs/dealdesk/internal/negotiation"
	"github.com/lsta-labs/dealdesk/internal/proposal"
	"github.com/lsta-labs/dealdesk/internal/resolve"
	"github.com/lsta-labs/dealdesk/internal/snapshot"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database when configured; otherwise the session lives in
	// memory only and no snapshots are written.
	var persister *snapshot.Persister
	if cfg.DatabaseURL != "" {
		database, err := db.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(context.Background()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		persister = snapshot.NewPersister(database)
	}

	// Restore the previous session if one was persisted, else seed the demo deal
	svc := buildService(persister)

	// Proposal service client, only wired when a credential is present
	var proposer resolve.Proposer
	if cfg.OpenAIAPIKey != "" {
		proposer = proposal.NewClient(cfg.OpenAIAPIKey)
	}
	orchestrator := resolve.NewOrchestrator(proposer, cfg.LiveMode)

	apiServer := api.New(cfg, svc, orchestrator, persister)

	go func() {
		if err := apiServer.Start(); err != nil {
			log.Printf("API server error: %v", err)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
}

func buildService(persister *snapshot.Persister) *negotiation.Service {
	if persister != nil {
		sess, err := persister.Load(context.Background())
		if err == nil {
			log.Println("Restored session from snapshot")
			return negotiation.NewServiceFromSnapshot(sess.Deal, sess.Negotiations, sess.Activities)
		}
		if !errors.Is(err, db.ErrNoSnapshot) {
			log.Printf("Failed to load snapshot, seeding fresh session: %v", err)
		}
	}
	deal, negotiations := negotiation.SeedSession()
	return negotiation.NewService(deal, negotiations)
}
