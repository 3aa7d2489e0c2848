// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/facsearch"
	"github.com/poiesic/facsearch/ai"
	"github.com/poiesic/facsearch/ai/openai"
	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/index"
	"github.com/poiesic/facsearch/ingestion"
	"github.com/poiesic/facsearch/server"
	"github.com/poiesic/facsearch/storage/badger"
)

func main() {
	// Optional .env file for local development; absence is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "facsearch",
		Usage: "Hybrid semantic search over faculty profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load faculty records from a CSV file into the database",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the faculty CSV file",
						Required: true,
					},
				},
			},
			{
				Name:   "build",
				Usage:  "Build the embedding snapshot without serving",
				Action: buildCommand,
				Flags:  corpusFlags(),
			},
			{
				Name:   "serve",
				Usage:  "Build the search index and serve the HTTP API",
				Action: serveCommand,
				Flags:  append(corpusFlags(), serveFlags()...),
			},
			{
				Name:      "search",
				Usage:     "Run a single query against the faculty corpus",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(corpusFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results to return",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "semantic-only",
						Usage: "Disable the keyword overlap component of scoring",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print intermediate search stages to stderr",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Build the search index and print corpus statistics",
				Action: statsCommand,
				Flags:  corpusFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// corpusFlags are shared by every command that builds a search engine.
func corpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
		},
		&cli.StringFlag{
			Name:  "csv",
			Usage: "Path to a faculty CSV file (alternative to --db)",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Path to the embedding snapshot file",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding vector dimension",
			Value: 384,
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "Address for the HTTP server to listen on",
			Value: ":8080",
		},
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	records, err := ingestion.ReadCSVFile(c.String("csv"))
	if err != nil {
		return fmt.Errorf("failed to read CSV: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewFacultyRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	added := 0
	for _, record := range records {
		if _, err := repo.AddFacultyRecords(ctx, record); err != nil {
			slog.Warn("skipping record", "name", record.Name, "error", err)
			continue
		}
		added++
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d of %d records (%d total in store)\n", added, len(records), total)
	return nil
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := engine.Stats()
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d documents (model %s, fromCache=%v)\n",
		stats.Documents, stats.Model, stats.FromCache)
	return nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(engine)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx, c.String("addr"))
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	var results []*core.SearchResult
	if c.Bool("explain") {
		results, err = engine.SearchWithMonitor(ctx, query, c.Int("top-k"), !c.Bool("semantic-only"), &explainMonitor{})
	} else {
		results, err = engine.Search(ctx, query, c.Int("top-k"), !c.Bool("semantic-only"))
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits for %q\n", len(results), query)
	for _, hit := range results {
		fmt.Printf("%d: %s [final=%0.3f semantic=%0.3f keyword=%0.3f boost=%0.1f]\n",
			hit.Score.Rank, hit.Faculty.Name,
			hit.Score.Final, hit.Score.Semantic, hit.Score.Keyword, hit.Score.Boost)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := engine.Stats()
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// buildEngine loads the corpus, creates the embedder, and builds a ready
// search engine. The returned cleanup closes any resources the corpus
// load left open and is safe to call exactly once.
func buildEngine(ctx context.Context, c *cli.Context) (*facsearch.Engine, func(), error) {
	cleanup := func() {}

	records, repoCleanup, err := loadRecords(ctx, c)
	if err != nil {
		return nil, cleanup, err
	}
	cleanup = repoCleanup

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
	)
	if err := aiConfig.Validate(); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to create embedder: %w", err)
	}

	opts := []facsearch.EngineOption{}
	if cachePath := c.String("cache"); cachePath != "" {
		opts = append(opts, facsearch.WithCachePath(cachePath))
	}

	engine, err := facsearch.NewEngine(embedder, aiConfig.EmbeddingModel, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to create engine: %w", err)
	}

	if err := engine.Build(ctx, records); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to build index: %w", err)
	}

	return engine, cleanup, nil
}

// loadRecords reads the faculty corpus from either a CSV file or the
// database. Exactly one of --csv and --db must be provided.
func loadRecords(ctx context.Context, c *cli.Context) ([]*core.FacultyRecord, func(), error) {
	csvPath := c.String("csv")
	dbPath := c.String("db")

	switch {
	case csvPath != "" && dbPath != "":
		return nil, func() {}, fmt.Errorf("--csv and --db are mutually exclusive")
	case csvPath != "":
		records, err := ingestion.ReadCSVFile(csvPath)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to read CSV: %w", err)
		}
		return records, func() {}, nil
	case dbPath != "":
		backend, err := badger.OpenBackend(dbPath, false)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to open database: %w", err)
		}
		repo, err := badger.NewFacultyRepository(backend)
		if err != nil {
			backend.Close()
			return nil, func() {}, fmt.Errorf("failed to create repository: %w", err)
		}
		records, err := repo.ListFacultyRecords(ctx)
		if err != nil {
			backend.Close()
			return nil, func() {}, fmt.Errorf("failed to list records: %w", err)
		}
		return records, func() { backend.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("either --csv or --db is required")
	}
}

// explainMonitor prints each search stage to stderr.
type explainMonitor struct{}

func (m *explainMonitor) Start(query string) {
	fmt.Fprintf(os.Stderr, "query: %q\n", query)
}

func (m *explainMonitor) AfterQueryExpansion(expanded string) {
	fmt.Fprintf(os.Stderr, "expanded: %q\n", expanded)
}

func (m *explainMonitor) AfterCandidateRetrieval(matches []index.Match) {
	fmt.Fprintf(os.Stderr, "candidates: %d\n", len(matches))
	for _, match := range matches {
		fmt.Fprintf(os.Stderr, "  %s [composite=%0.3f]\n", match.Name, match.Score)
	}
}

func (m *explainMonitor) Scored(result *core.SearchResult) {
	fmt.Fprintf(os.Stderr, "scored: %s [semantic=%0.3f keyword=%0.3f boost=%0.1f final=%0.3f]\n",
		result.Faculty.Name, result.Score.Semantic, result.Score.Keyword,
		result.Score.Boost, result.Score.Final)
}

func (m *explainMonitor) Finish(results []*core.SearchResult) {
	fmt.Fprintf(os.Stderr, "returned: %d\n", len(results))
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
