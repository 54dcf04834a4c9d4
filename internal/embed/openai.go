package embed

import (
	"context"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/errors"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// dimensionProbe is embedded once at construction to discover the vector
// length when the provider does not publish it statically.
const dimensionProbe = "dimension probe"

// OpenAIProvider requests embeddings from any OpenAI-compatible endpoint
// (LiteLLM, OpenAI itself, or a local proxy).
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
	logger     *zap.Logger
}

// NewOpenAIProvider builds the client and probes the model once. A failed
// probe means the provider is unusable and the caller should fall back.
func NewOpenAIProvider(ctx context.Context, baseURL, apiKey, model string) (*OpenAIProvider, error) {
	// Proxies like LiteLLM accept any key; keep the client happy without one
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL + "/v1"
	}

	p := &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger.Named("embed.openai"),
	}

	probe, err := p.Embed(ctx, dimensionProbe)
	if err != nil {
		return nil, err
	}
	p.dimensions = len(probe)
	return p, nil
}

// Embed returns the embedding vector for one text.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.model),
		Input: []string{text},
	})
	if err != nil {
		p.logger.Warn("Embedding request failed",
			zap.String("model", p.model),
			zap.Error(err),
		)
		return nil, apperrors.NewEmbeddingUnavailable(p.model, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, apperrors.ErrEmbeddingEmpty
	}

	vector := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float64(v)
	}
	return vector, nil
}

// Dimensions returns the probed vector length.
func (p *OpenAIProvider) Dimensions() int {
	return p.dimensions
}
