package ingest

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/dedup"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/embed"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
	apperrors "github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/errors"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// Pipeline sequences ingestion over a batch: normalize, embed, upsert, attach
// relations, detect duplicates — one article at a time, in input order. It is
// the only component that calls across the store, the provider, and the
// detector.
type Pipeline struct {
	store    graph.Store
	provider embed.Provider
	detector *dedup.Detector
	logger   *zap.Logger
}

// NewPipeline wires the pipeline from its collaborators.
func NewPipeline(store graph.Store, provider embed.Provider, detector *dedup.Detector) *Pipeline {
	return &Pipeline{
		store:    store,
		provider: provider,
		detector: detector,
		logger:   logger.Named("ingest"),
	}
}

// IngestAll processes articles in order. A failing article is logged and
// skipped; the rest of the batch continues. Returns the number of articles
// ingested successfully.
func (p *Pipeline) IngestAll(ctx context.Context, articles []graph.Article) int {
	runID := uuid.New().String()
	log := p.logger.With(zap.String("run_id", runID))
	log.Info("Ingesting articles", zap.Int("count", len(articles)))

	ingested := 0
	for _, article := range articles {
		if _, err := p.IngestOne(ctx, article); err != nil {
			skipped := apperrors.NewArticleSkipped(article.MessageID, err)
			log.Warn("Article ingestion failed, skipping",
				zap.String("telegram_message_id", article.MessageID),
				zap.Error(skipped),
			)
			continue
		}
		ingested++
	}

	log.Info("Batch complete",
		zap.Int("ingested", ingested),
		zap.Int("skipped", len(articles)-ingested),
	)
	return ingested
}

// IngestOne runs the full per-article sequence and returns any near-duplicate
// matches found. Any failure aborts this article before later steps run, so
// the store never holds an article with half-attached relations from a
// partially failed pass.
func (p *Pipeline) IngestOne(ctx context.Context, article graph.Article) ([]graph.SimilarityMatch, error) {
	embedding, err := p.provider.Embed(ctx, EmbeddingInput(article))
	if err != nil {
		return nil, err
	}

	if err := p.store.UpsertArticle(ctx, article, embedding); err != nil {
		return nil, err
	}
	if err := p.store.AttachTopics(ctx, article); err != nil {
		return nil, err
	}
	if err := p.store.AttachEntities(ctx, article); err != nil {
		return nil, err
	}
	if err := p.store.AttachProjects(ctx, article); err != nil {
		return nil, err
	}

	return p.detector.Detect(ctx, article, embedding)
}
