package dedup

import (
	"context"

	"go.uber.org/zap"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// Detector flags near-duplicate articles. The policy lives here: flag prior
// articles scoring at or above the threshold, cap the result count, exclude
// the article itself, and record a scored edge per match. Detection is
// stateless across calls — an article is only ever compared against articles
// ingested before it.
type Detector struct {
	store     graph.Store
	threshold float64
	limit     int
	logger    *zap.Logger
}

// NewDetector creates a detector. The threshold is caller-supplied
// configuration, not a constant: the batch pipeline runs a loose 0.4 while
// the seeding script uses a strict 0.88.
func NewDetector(store graph.Store, threshold float64, limit int) *Detector {
	if limit < 1 {
		limit = 5
	}
	return &Detector{
		store:     store,
		threshold: threshold,
		limit:     limit,
		logger:    logger.Named("dedup"),
	}
}

// Detect finds prior near-duplicates of the article and materializes one
// similarity edge per match. No matches means no side effect and no error.
func (d *Detector) Detect(ctx context.Context, article graph.Article, embedding []float64) ([]graph.SimilarityMatch, error) {
	matches, err := d.store.FindSimilarArticles(ctx, embedding, article.MessageID, d.limit, d.threshold)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	if err := d.store.CreateSimilarityLinks(ctx, article.MessageID, matches); err != nil {
		return nil, err
	}

	for _, match := range matches {
		d.logger.Info("Potential duplicate",
			zap.String("source_id", article.MessageID),
			zap.String("target_id", match.MessageID),
			zap.String("target_title", match.Title),
			zap.Float64("score", match.Score),
		)
	}
	return matches, nil
}
