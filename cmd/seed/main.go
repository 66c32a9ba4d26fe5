// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

// Command seed loads CSV fixtures into the database.
//
// # Fixture Contract
//
// The seed directory holds seven positional-column CSV files with a header
// row: category.csv, genre.csv, titles.csv, genre_title.csv, users.csv,
// review.csv, comments.csv. Rows reference each other by their CSV id
// column; the loader maps those ids to freshly generated UUIDs and inserts
// everything in dependency order inside a single transaction.
//
// Slug- and username-keyed rows are upserted so existing terms and accounts
// survive a re-run; titles and their content are plain inserts, so the loader
// is meant for an empty catalogue.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritika-app/kritika/internal/platform/config"
	"github.com/kritika-app/kritika/internal/platform/migration"
	pgstore "github.com/kritika-app/kritika/internal/platform/postgres"
	"github.com/kritika-app/kritika/pkg/uuid"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "kritika-seed"))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	// The schema must exist before fixtures can land.
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	must(log, run(ctx, pool, cfg.SeedPath, log), "load fixtures")

	log.Info("seed_completed", slog.String("dir", cfg.SeedPath))
}

// run loads all fixture files inside one transaction so a malformed file
// leaves the database untouched.
func run(ctx context.Context, pool *pgxpool.Pool, dir string, log *slog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed_begin_failed: %w", err)
	}
	defer tx.Rollback(ctx)

	loader := &loader{tx: tx, dir: dir, log: log}

	// Dependency order: referenced tables first.
	steps := []func(context.Context) error{
		loader.categories,
		loader.genres,
		loader.users,
		loader.titles,
		loader.titleGenres,
		loader.reviews,
		loader.comments,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// loader carries the transaction plus the CSV-id to UUID mappings that stitch
// the fixture files together.
type loader struct {
	tx  pgx.Tx
	dir string
	log *slog.Logger

	categoryIDs map[string]string
	genreIDs    map[string]string
	userIDs     map[string]string
	titleIDs    map[string]string
	reviewIDs   map[string]string
}

// forEachRow streams the records of one fixture file, skipping the header.
func (l *loader) forEachRow(name string, fn func(record []string) error) error {
	file, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return fmt.Errorf("seed_open_failed: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("seed_read_failed (%s): %w", name, err)
		}

		rows++
		if rows == 1 {
			continue // header
		}

		if err := fn(record); err != nil {
			return fmt.Errorf("seed_row_failed (%s row %d): %w", name, rows, err)
		}
	}

	l.log.Info("fixture_loaded", slog.String("file", name), slog.Int("rows", rows-1))
	return nil
}

// upsertTerm inserts a category or genre keyed by slug, returning the
// canonical row id even when the slug already existed.
func (l *loader) upsertTerm(ctx context.Context, table, name, slug string) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, table)

	var id string
	err := l.tx.QueryRow(ctx, query, uuid.New(), name, slug).Scan(&id)
	return id, err
}

// categories loads category.csv: id,name,slug.
func (l *loader) categories(ctx context.Context) error {
	l.categoryIDs = map[string]string{}
	return l.forEachRow("category.csv", func(record []string) error {
		id, err := l.upsertTerm(ctx, "catalog.category", record[1], record[2])
		if err != nil {
			return err
		}
		l.categoryIDs[record[0]] = id
		return nil
	})
}

// genres loads genre.csv: id,name,slug.
func (l *loader) genres(ctx context.Context) error {
	l.genreIDs = map[string]string{}
	return l.forEachRow("genre.csv", func(record []string) error {
		id, err := l.upsertTerm(ctx, "catalog.genre", record[1], record[2])
		if err != nil {
			return err
		}
		l.genreIDs[record[0]] = id
		return nil
	})
}

// users loads users.csv: id,username,email,role,bio,first_name,last_name.
func (l *loader) users(ctx context.Context) error {
	l.userIDs = map[string]string{}
	return l.forEachRow("users.csv", func(record []string) error {
		const query = `
			INSERT INTO users.account (id, username, email, role, bio, firstname, lastname)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
			RETURNING id`

		var id string
		err := l.tx.QueryRow(ctx, query,
			uuid.New(), record[1], record[2], record[3],
			field(record, 4), field(record, 5), field(record, 6),
		).Scan(&id)
		if err != nil {
			return err
		}
		l.userIDs[record[0]] = id
		return nil
	})
}

// titles loads titles.csv: id,name,year,category.
func (l *loader) titles(ctx context.Context) error {
	l.titleIDs = map[string]string{}
	return l.forEachRow("titles.csv", func(record []string) error {
		year, err := strconv.Atoi(record[2])
		if err != nil {
			return fmt.Errorf("invalid year %q: %w", record[2], err)
		}

		categoryID, ok := l.categoryIDs[record[3]]
		if !ok {
			return fmt.Errorf("unknown category reference %q", record[3])
		}

		id := uuid.New()
		const query = `
			INSERT INTO catalog.title (id, name, year, categoryid)
			VALUES ($1, $2, $3, $4)`
		if _, err := l.tx.Exec(ctx, query, id, record[1], year, categoryID); err != nil {
			return err
		}

		l.titleIDs[record[0]] = id
		return nil
	})
}

// titleGenres loads genre_title.csv: id,title_id,genre_id.
func (l *loader) titleGenres(ctx context.Context) error {
	return l.forEachRow("genre_title.csv", func(record []string) error {
		titleID, ok := l.titleIDs[record[1]]
		if !ok {
			return fmt.Errorf("unknown title reference %q", record[1])
		}
		genreID, ok := l.genreIDs[record[2]]
		if !ok {
			return fmt.Errorf("unknown genre reference %q", record[2])
		}

		const query = `
			INSERT INTO catalog.titlegenre (titleid, genreid)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`
		_, err := l.tx.Exec(ctx, query, titleID, genreID)
		return err
	})
}

// reviews loads review.csv: id,title_id,text,author,score,pub_date.
func (l *loader) reviews(ctx context.Context) error {
	l.reviewIDs = map[string]string{}
	return l.forEachRow("review.csv", func(record []string) error {
		titleID, ok := l.titleIDs[record[1]]
		if !ok {
			return fmt.Errorf("unknown title reference %q", record[1])
		}
		authorID, ok := l.userIDs[record[3]]
		if !ok {
			return fmt.Errorf("unknown author reference %q", record[3])
		}

		score, err := strconv.Atoi(record[4])
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", record[4], err)
		}

		// Upsert on the (title, author) natural key so a re-run maps the CSV
		// id to the already-stored review instead of a dangling UUID.
		const query = `
			INSERT INTO catalog.review (id, titleid, authorid, text, score, createdat)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (titleid, authorid) DO UPDATE SET text = EXCLUDED.text, score = EXCLUDED.score
			RETURNING id`

		var id string
		if err := l.tx.QueryRow(ctx, query, uuid.New(), titleID, authorID, record[2], score, timestamp(record, 5)).Scan(&id); err != nil {
			return err
		}

		l.reviewIDs[record[0]] = id
		return nil
	})
}

// comments loads comments.csv: id,review_id,text,author,pub_date.
func (l *loader) comments(ctx context.Context) error {
	return l.forEachRow("comments.csv", func(record []string) error {
		reviewID, ok := l.reviewIDs[record[1]]
		if !ok {
			return fmt.Errorf("unknown review reference %q", record[1])
		}
		authorID, ok := l.userIDs[record[3]]
		if !ok {
			return fmt.Errorf("unknown author reference %q", record[3])
		}

		const query = `
			INSERT INTO catalog.comment (id, reviewid, authorid, text, createdat)
			VALUES ($1, $2, $3, $4, $5)`
		_, err := l.tx.Exec(ctx, query, uuid.New(), reviewID, authorID, record[2], timestamp(record, 4))
		return err
	})
}

// field returns the record column or "" when the fixture row is short.
func field(record []string, index int) string {
	if index < len(record) {
		return record[index]
	}
	return ""
}

// timestamp parses an RFC 3339 column, falling back to now.
func timestamp(record []string, index int) time.Time {
	if t, err := time.Parse(time.RFC3339, field(record, index)); err == nil {
		return t
	}
	return time.Now()
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
