// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed prepares a development database: it applies migrations,
// creates the master account, the starter genres and a demo catalog.
//
// Every step is idempotent. Running it twice leaves the data unchanged.
//
//	go run ./cmd/seed -fake 40
//	go run ./cmd/seed -reset   # drop everything first
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/core/genre"
	"github.com/taibuivan/directorscut/internal/core/movie"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/config"
	"github.com/taibuivan/directorscut/internal/platform/migration"
	pgstore "github.com/taibuivan/directorscut/internal/platform/postgres"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/users/auth"
	"github.com/taibuivan/directorscut/pkg/slug"
	"github.com/taibuivan/directorscut/pkg/uuid"
)

// seedConfig holds the master credentials. It is read on top of [config.Config].
type seedConfig struct {
	MasterEmail    string `env:"SEED_MASTER_EMAIL"    envDefault:"master@directorscut.local"`
	MasterPassword string `env:"SEED_MASTER_PASSWORD,required"`
	MasterName     string `env:"SEED_MASTER_NAME"     envDefault:"Director"`
}

var (
	done    = color.New(color.FgGreen).SprintFunc()
	skipped = color.New(color.FgYellow).SprintFunc()
	failed  = color.New(color.FgRed, color.Bold).SprintFunc()
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func main() {
	fake := flag.Int("fake", 0, "number of generated movies added on top of the demo catalog")
	reset := flag.Bool("reset", false, "roll back every migration before seeding")
	flag.Parse()

	if err := run(*fake, *reset); err != nil {
		fmt.Fprintln(os.Stderr, failed("seed failed:"), err)
		os.Exit(1)
	}
}

func run(fake int, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var seed seedConfig
	if err := env.Parse(&seed); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println(heading("→ migrations"))
	if reset {
		if err := migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, quiet); err != nil {
			return err
		}
		fmt.Println(skipped("  all tables dropped"))
	}
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, quiet); err != nil {
		return err
	}
	fmt.Println(done("  schema up to date"))

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, quiet)
	if err != nil {
		return err
	}
	defer pool.Close()

	fmt.Println(heading("→ master account"))
	masterID, err := seedMaster(ctx, pool, seed)
	if err != nil {
		return err
	}

	fmt.Println(heading("→ genres"))
	if err := seedGenres(ctx, genre.NewPostgresRepository(pool)); err != nil {
		return err
	}

	fmt.Println(heading("→ movies"))
	return seedMovies(ctx, movie.NewPostgresRepository(pool), masterID, fake)
}

func seedMaster(ctx context.Context, pool *pgxpool.Pool, seed seedConfig) (string, error) {
	users := auth.NewUserRepository(pool)

	existing, err := users.FindByEmail(ctx, seed.MasterEmail)
	if err == nil {
		fmt.Println(skipped("  exists:"), existing.Email, "("+string(existing.Role)+")")
		return existing.ID, nil
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return "", err
	}

	hash, err := sec.HashPassword(seed.MasterPassword)
	if err != nil {
		return "", err
	}

	master := &auth.User{
		ID:           uuid.New(),
		Email:        seed.MasterEmail,
		PasswordHash: hash,
		FirstName:    seed.MasterName,
		Role:         sec.RoleMaster,
		IsVerified:   true,
	}
	if err := users.Create(ctx, master); err != nil {
		return "", err
	}

	fmt.Println(done("  created:"), master.Email)
	return master.ID, nil
}

func seedGenres(ctx context.Context, genres genre.Repository) error {
	for _, name := range starterGenres {
		_, err := genres.Create(ctx, name, slug.From(name))
		switch {
		case err == nil:
			fmt.Println(done("  +"), name)
		case apperr.HasCode(err, apperr.CodeDuplicateGenre):
			fmt.Println(skipped("  ="), name)
		default:
			return err
		}
	}
	return nil
}

func seedMovies(ctx context.Context, movies movie.Repository, masterID string, fake int) error {
	existing, err := movies.ListAll(ctx)
	if err != nil {
		return err
	}

	writes := generatedMovies(fake, masterID)
	if len(existing) == 0 {
		writes = append(demoMovies(masterID), writes...)
	} else {
		fmt.Println(skipped("  catalog not empty, demo movies skipped"), fmt.Sprintf("(%d movies)", len(existing)))
	}

	for _, write := range writes {
		created, err := movies.Create(ctx, write)
		if err != nil {
			return fmt.Errorf("seed movie %q: %w", write.Title, err)
		}
		fmt.Println(done("  +"), created.Title, fmt.Sprintf("(%d, %s)", created.Year, catalog.FormatDuration(created.Duration.Minutes())))
	}

	fmt.Println(done(fmt.Sprintf("  %d movies added", len(writes))))
	return nil
}
