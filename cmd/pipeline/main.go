package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/dedup"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/embed"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/ingest"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/config"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting knowledge graph pipeline...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Pick an embedding provider, then a graph backend sized to its vectors
	provider := embed.Build(ctx, cfg)
	store := graph.Connect(ctx, cfg, provider.Dimensions())
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("Failed to close graph backend", zap.Error(err))
		}
	}()

	articles, err := loadBatch(cfg)
	if err != nil {
		log.Fatal("Failed to load article batch", zap.Error(err))
	}

	detector := dedup.NewDetector(store, cfg.DuplicateThreshold, cfg.SimilarityLimit)
	pipeline := ingest.NewPipeline(store, provider, detector)

	ingested := pipeline.IngestAll(ctx, articles)
	log.Info("Ingestion finished", zap.Int("ingested", ingested))

	opts := ingest.DefaultReportOptions()
	opts.DigestDays = cfg.DigestDays
	opts.EntityDays = cfg.EntityDays
	if err := pipeline.WriteReport(ctx, os.Stdout, opts); err != nil {
		log.Fatal("Failed to render report", zap.Error(err))
	}
}

// loadBatch reads the configured YAML seed file, or falls back to the
// built-in synthetic batch.
func loadBatch(cfg *config.Config) ([]graph.Article, error) {
	if cfg.SeedFile != "" {
		return ingest.LoadArticles(cfg.SeedFile)
	}
	return ingest.SyntheticArticles(time.Now().UTC()), nil
}
