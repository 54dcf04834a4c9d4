package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/config"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// Store is the knowledge graph contract. Three backends realize it — the bolt
// driver, the Neo4j Query API over HTTP, and the in-process fallback — and all
// three must answer the same operation sequence with the same result sets.
type Store interface {
	// EnsureSchema idempotently creates the article uniqueness constraint and
	// the cosine vector index. Safe to call on every startup.
	EnsureSchema(ctx context.Context) error

	// UpsertArticle creates or fully replaces the article's scalar fields and
	// embedding, keyed by message id.
	UpsertArticle(ctx context.Context, article Article, embedding []float64) error

	// AttachTopics merges topic nodes by name and relates the article to them.
	// No-op when the article has no topics.
	AttachTopics(ctx context.Context, article Article) error

	// AttachEntities merges entity nodes by name; the type tag is
	// last-write-wins. No-op when the article has no entities.
	AttachEntities(ctx context.Context, article Article) error

	// AttachProjects merges project nodes by name, relates the article to them
	// and each project to its topics. No-op when the article has no projects.
	AttachProjects(ctx context.Context, article Article) error

	// FindSimilarArticles returns up to limit prior articles whose stored
	// embedding scores >= minScore against the query embedding, excluding
	// excludeID, ordered by score descending with message id as tie-break.
	FindSimilarArticles(ctx context.Context, embedding []float64, excludeID string, limit int, minScore float64) ([]SimilarityMatch, error)

	// CreateSimilarityLinks materializes one scored SIMILAR_TO edge per match.
	// Re-invocation updates score and last-checked instead of duplicating.
	CreateSimilarityLinks(ctx context.Context, sourceID string, matches []SimilarityMatch) error

	// WeeklyDigest lists articles published within the window with their
	// topics, ordered by day descending then title ascending.
	WeeklyDigest(ctx context.Context, days int) ([]DigestEntry, error)

	// ArticlesByEntity lists articles mentioning the entity within the window,
	// ordered by publication time descending.
	ArticlesByEntity(ctx context.Context, entityName string, days int) ([]EntityArticle, error)

	// ProjectsByTopic lists projects linked to the topic, joined through the
	// articles featuring them, ordered by publication time descending.
	ProjectsByTopic(ctx context.Context, topic string) ([]ProjectHighlight, error)

	// NewsByTopic lists articles whose topics contain the substring marker,
	// with the matching topic names collected, ordered by day descending.
	NewsByTopic(ctx context.Context, marker string) ([]TopicHighlight, error)

	// Close releases the backend's underlying connection or session pool.
	Close(ctx context.Context) error
}

// Connect picks a backend by probing the fallback chain: bolt driver, then the
// Query API endpoint, then the in-process store. Every fallback transition is
// logged so operators can tell when the pipeline runs in degraded mode.
func Connect(ctx context.Context, cfg *config.Config, embeddingDim int) Store {
	log := logger.Named("graph")

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err == nil {
		if err = driver.VerifyConnectivity(ctx); err == nil {
			store, schemaErr := NewBoltStore(ctx, driver, cfg.Neo4jDatabase, embeddingDim)
			if schemaErr == nil {
				log.Info("Connected to Neo4j over bolt", zap.String("uri", cfg.Neo4jURI))
				return store
			}
			err = schemaErr
		}
		_ = driver.Close(ctx)
	}
	log.Warn("Bolt driver unavailable, trying Query API",
		zap.String("uri", cfg.Neo4jURI),
		zap.Error(err),
	)

	store, err := NewQueryAPIStore(ctx, cfg.QueryAPIURL, cfg.Neo4jUser, cfg.Neo4jPassword, embeddingDim)
	if err == nil {
		log.Info("Connected to Neo4j Query API", zap.String("url", cfg.QueryAPIURL))
		return store
	}
	log.Warn("Query API unavailable, using in-memory backend",
		zap.String("url", cfg.QueryAPIURL),
		zap.Error(err),
	)

	return NewMemoryStore(embeddingDim)
}
