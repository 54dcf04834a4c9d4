package embed

import (
	"context"

	"go.uber.org/zap"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/config"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// Provider maps text to a fixed-length vector. The store's vector index is
// parameterized by Dimensions at schema-setup time.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimensions() int
}

// Build probes the remote embedding provider once and falls back to the
// deterministic hash embedder when the probe fails. The transition is logged
// so operators can tell the pipeline runs with local embeddings.
func Build(ctx context.Context, cfg *config.Config) Provider {
	log := logger.Named("embed")

	provider, err := NewOpenAIProvider(ctx, cfg.EmbeddingURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel)
	if err == nil {
		log.Info("Using remote embeddings",
			zap.String("model", cfg.EmbeddingModel),
			zap.Int("dimensions", provider.Dimensions()),
		)
		return provider
	}

	log.Warn("Remote embeddings unavailable, using deterministic hash embeddings",
		zap.String("model", cfg.EmbeddingModel),
		zap.Error(err),
	)
	return NewHashProvider(defaultHashDimensions)
}
