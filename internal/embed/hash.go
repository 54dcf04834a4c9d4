package embed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"regexp"
	"strings"
)

// defaultHashDimensions is the vector length of the fallback embedder.
const defaultHashDimensions = 256

var tokenPattern = regexp.MustCompile(`\w+`)

// HashProvider is a deterministic local embedder: each token maps to a fixed
// pseudo-random vector seeded from its SHA-256 digest, and a text embeds as
// the mean of its token vectors. Similar texts share tokens and therefore
// score high under cosine similarity, which is enough to exercise duplicate
// detection without a remote provider.
type HashProvider struct {
	dimensions int
	tokenCache map[string][]float64
}

// NewHashProvider creates a hash embedder with the given dimension.
func NewHashProvider(dimensions int) *HashProvider {
	if dimensions <= 0 {
		dimensions = defaultHashDimensions
	}
	return &HashProvider{
		dimensions: dimensions,
		tokenCache: make(map[string][]float64),
	}
}

// Embed returns the mean of the token vectors. Empty text embeds as the
// vector of a sentinel token so the result is never zero-length.
func (p *HashProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		tokens = []string{"empty"}
	}

	vector := make([]float64, p.dimensions)
	for _, token := range tokens {
		tv := p.tokenVector(token)
		for i, v := range tv {
			vector[i] += v
		}
	}
	for i := range vector {
		vector[i] /= float64(len(tokens))
	}
	return vector, nil
}

// Dimensions returns the configured vector length.
func (p *HashProvider) Dimensions() int {
	return p.dimensions
}

func (p *HashProvider) tokenVector(token string) []float64 {
	if cached, ok := p.tokenCache[token]; ok {
		return cached
	}
	digest := sha256.Sum256([]byte(token))
	seed := int64(binary.BigEndian.Uint64(digest[:8]))
	rng := rand.New(rand.NewSource(seed))

	vector := make([]float64, p.dimensions)
	for i := range vector {
		vector[i] = rng.Float64()*2 - 1
	}
	p.tokenCache[token] = vector
	return vector
}
