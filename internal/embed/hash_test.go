package embed

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashProvider_Deterministic(t *testing.T) {
	ctx := context.Background()
	first := NewHashProvider(64)
	second := NewHashProvider(64)

	a, err := first.Embed(ctx, "OpenAI releases Sora 2 with synchronized audio")
	require.NoError(t, err)
	b, err := second.Embed(ctx, "OpenAI releases Sora 2 with synchronized audio")
	require.NoError(t, err)

	assert.Equal(t, a, b, "independent providers must embed the same text identically")
	assert.Len(t, a, 64)
}

func TestHashProvider_Dimensions(t *testing.T) {
	assert.Equal(t, 128, NewHashProvider(128).Dimensions())
	assert.Equal(t, defaultHashDimensions, NewHashProvider(0).Dimensions())
	assert.Equal(t, defaultHashDimensions, NewHashProvider(-5).Dimensions())
}

func TestHashProvider_SharedTokensScoreHigher(t *testing.T) {
	ctx := context.Background()
	provider := NewHashProvider(256)

	base, err := provider.Embed(ctx, "WAN 2.5 preview with native audio and image editing")
	require.NoError(t, err)
	near, err := provider.Embed(ctx, "WAN 2.5 preview adds native audio plus image editing")
	require.NoError(t, err)
	far, err := provider.Embed(ctx, "quarterly tax filing deadline reminder")
	require.NoError(t, err)

	nearScore := cosine(base, near)
	farScore := cosine(base, far)
	assert.Greater(t, nearScore, farScore,
		"texts sharing most tokens must score above unrelated ones")
	assert.Greater(t, nearScore, 0.5)
}

func TestHashProvider_EmptyTextIsNonZero(t *testing.T) {
	ctx := context.Background()
	provider := NewHashProvider(32)

	vector, err := provider.Embed(ctx, "")
	require.NoError(t, err)
	require.Len(t, vector, 32)

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	assert.Greater(t, norm, 0.0, "empty text must still embed to a usable vector")

	blank, err := provider.Embed(ctx, "   \n\t ")
	require.NoError(t, err)
	assert.Equal(t, vector, blank, "whitespace-only text uses the same sentinel")
}

func TestHashProvider_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	provider := NewHashProvider(32)

	lower, err := provider.Embed(ctx, "sora launch")
	require.NoError(t, err)
	upper, err := provider.Embed(ctx, "SORA Launch")
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
