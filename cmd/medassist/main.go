package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/artifacts"
	"github.com/medassist-ai/medassist/internal/config"
	"github.com/medassist-ai/medassist/internal/db"
	dbRedis "github.com/medassist-ai/medassist/internal/db/redis"
	"github.com/medassist-ai/medassist/internal/domain"
	logpkg "github.com/medassist-ai/medassist/internal/logger"
	"github.com/medassist-ai/medassist/internal/metrics"
	"github.com/medassist-ai/medassist/internal/repository/embcache"
	"github.com/medassist-ai/medassist/internal/service"
	openaiTransport "github.com/medassist-ai/medassist/internal/transport/openai"
	healthuc "github.com/medassist-ai/medassist/internal/usecase/health"
	qauc "github.com/medassist-ai/medassist/internal/usecase/qa"
	recommenduc "github.com/medassist-ai/medassist/internal/usecase/recommend"
	"github.com/medassist-ai/medassist/internal/version"
)

func main() {
	os.Exit(run())
}

// run keeps deferred cleanup ahead of os.Exit.
func run() int {
	// .env is a developer convenience; absence is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		return 2
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	metrics.Register()

	svc, cleanup := buildService(cfg, logger)
	defer cleanup()
	defer svc.Shutdown()

	ctx := context.Background()

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "qa":
		return runQA(ctx, svc, args)
	case "recommend":
		return runRecommend(ctx, svc, args)
	case "health":
		printJSON(svc.Health(ctx))
		return 0
	case "serve":
		runServe(cfg, svc, logger)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `medassist — medical QA and drug recommendation assistant

Usage:
  medassist qa "<question>"
  medassist recommend "<symptom1,symptom2,...>" ["additional info"]
  medassist health
  medassist serve`)
}

func runQA(ctx context.Context, svc *service.Service, args []string) int {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(os.Stderr, `usage: medassist qa "<question>"`)
		return 2
	}
	printJSON(svc.Answer(ctx, args[0]))
	return 0
}

func runRecommend(ctx context.Context, svc *service.Service, args []string) int {
	var symptoms []string
	if len(args) > 0 {
		for _, s := range strings.Split(args[0], ",") {
			if t := strings.TrimSpace(s); t != "" {
				symptoms = append(symptoms, t)
			}
		}
	}
	if len(symptoms) == 0 {
		fmt.Fprintln(os.Stderr, `usage: medassist recommend "<symptom1,symptom2,...>" ["additional info"]`)
		return 2
	}

	note := ""
	if len(args) > 1 {
		note = args[1]
	}

	printJSON(svc.Recommend(ctx, symptoms, note))
	return 0
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "failed to encode output:", err)
		os.Exit(1)
	}
}

// buildService is the composition root: artifacts, providers, cache,
// pipelines, facade. Missing pieces degrade capabilities instead of
// failing startup.
func buildService(cfg config.Config, logger *zap.Logger) (*service.Service, func()) {
	logger.Info("Starting medassist",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
	)

	store := artifacts.Load(cfg.Artifacts.QADir, cfg.Artifacts.KGDir, cfg.Artifacts.DrugsCSV, logger)

	cleanup := func() {}
	var cacheStore db.Store
	if cfg.CacheConfigured() {
		rs, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Warn("Failed to connect embedding cache, continuing without it", zap.Error(err))
		} else {
			cacheStore = rs
			cleanup = rs.Close
		}
	}

	var embedder domain.Embedder
	if cfg.EmbeddingConfigured() {
		base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
		embedder = base
		if cacheStore != nil {
			ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
			embedder = embcache.New(base, cacheStore, ttl, metrics.EmbeddingCacheTotal, logger)
		}
	}

	var generator domain.Generator
	if cfg.GenerationConfigured() {
		generator = openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:  cfg.Generation.APIKey,
			BaseURL: cfg.Generation.BaseURL,
			Model:   cfg.Generation.Model,
			Logger:  logger,
		})
	} else {
		logger.Warn("Generation credential missing, QA answers degrade to retrieval-only stubs")
	}

	// Keep nil interfaces nil: a typed nil *index.Flat wrapped in the
	// Retriever interface would report the pipeline as ready.
	var retriever qauc.Retriever
	var docs []string
	if store.QA.Index != nil {
		retriever = store.QA.Index
		docs = store.QA.Documents
	}
	qaSvc := qauc.New(embedder, retriever, docs, generator, logger)

	var entities []artifacts.Entity
	var graph *domain.Graph
	if store.KG != nil {
		entities = store.KG.Entities
		graph = store.KG.Graph
	}
	recSvc := recommenduc.New(entities, graph, store.Drugs, logger)

	var pinger healthuc.CachePinger
	if cacheStore != nil {
		pinger = cacheStore
	}
	healthSvc := healthuc.New(qaSvc, recSvc, pinger, version.Version, logger)

	return service.New(qaSvc, recSvc, healthSvc, logger), cleanup
}
