// Package main seeds a reader's collection with the demo library so the
// analytics dashboard has something to show.
//
// Usage:
//
//	go run ./cmd/seed -user reader-1
//	go run ./cmd/seed -user reader-1 -rebase=false  # keep the original dates
//
// Paths come from the same environment variables and .env file as the
// server. The tool writes the collection to both tiers and prints an access
// token for the user.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/auth"
	"github.com/pagetrail/pagetrail-server/internal/config"
	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/pagetrail/pagetrail-server/internal/logger"
	"github.com/pagetrail/pagetrail-server/internal/store"
	"github.com/pagetrail/pagetrail-server/internal/store/sqlite"
)

var (
	userID = flag.String("user", "reader-1", "Owner ID to seed")
	email  = flag.String("email", "", "Email embedded in the printed token")
	rebase = flag.Bool("rebase", true, "Shift reading history so the latest demo day is today")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	books := demoLibrary()
	if *rebase {
		books = rebaseHistory(books, time.Now())
	}

	ctx := context.Background()

	if err := seedLocal(ctx, cfg, *userID, books, log); err != nil {
		log.Fatal("failed to seed local cache", "error", err)
	}
	if err := seedRemote(ctx, cfg, *userID, books, log); err != nil {
		log.Fatal("failed to seed remote store", "error", err)
	}

	key, err := auth.LoadOrGenerateKey(cfg.Auth.KeyPath)
	if err != nil {
		log.Fatal("failed to load auth key", "error", err)
	}
	tokens, err := auth.NewTokenService(key, cfg.Auth.AccessTokenDuration)
	if err != nil {
		log.Fatal("failed to create token service", "error", err)
	}
	token, expiresAt, err := tokens.GenerateAccessToken(*userID, *email)
	if err != nil {
		log.Fatal("failed to issue token", "error", err)
	}

	fmt.Printf("\nSeeded %d books for %s\n", len(books), *userID)
	fmt.Printf("Token (expires %s):\n%s\n", expiresAt.Format(time.RFC3339), token)
}

func seedLocal(ctx context.Context, cfg *config.Config, ownerID string, books []domain.Book, log *logger.Logger) error {
	cache, err := store.New(cfg.Data.CachePath, log.Component("cache"))
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := cache.SaveBooks(ctx, ownerID, books); err != nil {
		return err
	}
	log.Info("local cache seeded", "path", cfg.Data.CachePath, "owner_id", ownerID, "books", len(books))
	return nil
}

func seedRemote(ctx context.Context, cfg *config.Config, ownerID string, books []domain.Book, log *logger.Logger) error {
	remote, err := sqlite.Open(cfg.Data.RemoteDBPath, log.Component("remote"))
	if err != nil {
		return err
	}
	defer remote.Close()

	if err := remote.ReplaceBooks(ctx, ownerID, books); err != nil {
		return err
	}

	count, err := remote.CountBooks(ctx, ownerID)
	if err != nil {
		return err
	}
	log.Info("remote store seeded", "path", cfg.Data.RemoteDBPath, "owner_id", ownerID, "books", count)
	return nil
}
