package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/config"
	apperrors "github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/errors"
)

// fakeEmbeddingsServer answers the OpenAI embeddings endpoint with a fixed
// vector per request.
func fakeEmbeddingsServer(t *testing.T, vector []float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 1)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": vector},
			},
		})
	}))
}

func TestOpenAIProvider_ProbesDimensions(t *testing.T) {
	server := fakeEmbeddingsServer(t, []float32{0.25, -0.5, 0.75})
	defer server.Close()

	provider, err := NewOpenAIProvider(context.Background(), server.URL, "", "text-embedding-004")
	require.NoError(t, err)
	assert.Equal(t, 3, provider.Dimensions())

	vector, err := provider.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, -0.5, 0.75}, vector)
}

func TestOpenAIProvider_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": []}`))
	}))
	defer server.Close()

	_, err := NewOpenAIProvider(context.Background(), server.URL, "", "text-embedding-004")
	require.ErrorIs(t, err, apperrors.ErrEmbeddingEmpty)
}

func TestOpenAIProvider_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewOpenAIProvider(context.Background(), server.URL, "", "text-embedding-004")
	require.Error(t, err)

	var unavailable *apperrors.ErrEmbeddingUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "text-embedding-004", unavailable.Model)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestBuild_FallsBackToHashProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // probe must fail

	cfg := &config.Config{
		EmbeddingURL:   server.URL,
		EmbeddingModel: "text-embedding-004",
	}
	provider := Build(context.Background(), cfg)

	_, ok := provider.(*HashProvider)
	require.True(t, ok, "an unreachable endpoint must yield the hash fallback")
	assert.Equal(t, defaultHashDimensions, provider.Dimensions())
}

func TestBuild_PrefersRemoteProvider(t *testing.T) {
	server := fakeEmbeddingsServer(t, []float32{1, 0, 0, 0})
	defer server.Close()

	cfg := &config.Config{
		EmbeddingURL:   server.URL,
		EmbeddingModel: "text-embedding-004",
	}
	provider := Build(context.Background(), cfg)

	_, ok := provider.(*OpenAIProvider)
	require.True(t, ok)
	assert.Equal(t, 4, provider.Dimensions())
}
