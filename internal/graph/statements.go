package graph

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/errors"
)

// vectorIndexName is the Neo4j vector index over Article.embedding.
const vectorIndexName = "article_embedding_idx"

// ============================================================================
// Statement Catalog
// ============================================================================
// The bolt and Query API backends execute these exact statements through the
// shared cypherRunner seam, so both answer every operation identically.

const stmtArticleConstraint = `
	CREATE CONSTRAINT article_telegram_unique IF NOT EXISTS
	FOR (a:Article) REQUIRE a.telegram_message_id IS UNIQUE
`

const stmtUpsertArticle = `
	MERGE (a:Article {telegram_message_id: $telegram_message_id})
	SET a.title = $title,
	    a.body = $body,
	    a.telegram_url = $telegram_url,
	    a.source_channel = $source_channel,
	    a.published_at = datetime($published_at),
	    a.embedding = $embedding,
	    a.status = 'ingested'
`

const stmtAttachTopics = `
	MATCH (a:Article {telegram_message_id: $telegram_message_id})
	FOREACH (topicName IN $topics |
	    MERGE (t:Topic {name: topicName})
	    ON CREATE SET t.created_at = datetime()
	    MERGE (a)-[:ABOUT]->(t)
	)
`

const stmtAttachEntities = `
	MATCH (a:Article {telegram_message_id: $telegram_message_id})
	FOREACH (entity IN $entities |
	    MERGE (e:Entity {name: entity.name})
	    ON CREATE SET e.created_at = datetime()
	    SET e.type = entity.type
	    MERGE (a)-[:MENTIONS]->(e)
	)
`

const stmtAttachProjects = `
	MATCH (a:Article {telegram_message_id: $telegram_message_id})
	FOREACH (project IN $projects |
	    MERGE (p:Project {name: project.name})
	    ON CREATE SET p.description = project.description, p.created_at = datetime()
	    SET p.description = coalesce(project.description, p.description)
	    MERGE (a)-[:FEATURES]->(p)
	    FOREACH (topicName IN project.topics |
	        MERGE (t:Topic {name: topicName})
	        MERGE (p)-[:ABOUT]->(t)
	    )
	)
`

const stmtFindSimilar = `
	CALL db.index.vector.queryNodes($index_name, $limit, $embedding)
	YIELD node, score
	WHERE node.telegram_message_id <> $telegram_message_id AND score >= $min_score
	RETURN node.telegram_message_id AS telegram_message_id,
	       node.title AS title,
	       node.telegram_url AS telegram_url,
	       score
	ORDER BY score DESC, telegram_message_id ASC
`

const stmtCreateSimilarityLinks = `
	UNWIND $matches AS match
	MATCH (source:Article {telegram_message_id: $source_id})
	MATCH (target:Article {telegram_message_id: match.telegram_message_id})
	WHERE source <> target
	MERGE (source)-[r:SIMILAR_TO]->(target)
	SET r.score = match.score,
	    r.last_checked = datetime()
`

const stmtWeeklyDigest = `
	MATCH (a:Article)
	WHERE a.published_at >= datetime() - duration({days: $days})
	OPTIONAL MATCH (a)-[:ABOUT]->(t:Topic)
	WITH a, collect(DISTINCT t.name) AS topics
	RETURN toString(date(a.published_at)) AS day,
	       a.title AS title,
	       a.telegram_url AS telegram_url,
	       topics
	ORDER BY day DESC, title ASC
`

const stmtArticlesByEntity = `
	MATCH (a:Article)-[:MENTIONS]->(e:Entity {name: $entity})
	WHERE a.published_at >= datetime() - duration({days: $days})
	RETURN a.title AS title,
	       a.telegram_url AS telegram_url,
	       toString(date(a.published_at)) AS day
	ORDER BY a.published_at DESC
`

const stmtProjectsByTopic = `
	MATCH (a:Article)-[:FEATURES]->(p:Project)-[:ABOUT]->(t:Topic {name: $topic})
	RETURN p.name AS project,
	       a.title AS title,
	       a.telegram_url AS telegram_url,
	       toString(date(a.published_at)) AS day
	ORDER BY a.published_at DESC
`

const stmtNewsByTopic = `
	MATCH (a:Article)-[:ABOUT]->(t:Topic)
	WHERE t.name CONTAINS $marker
	WITH a, collect(DISTINCT t.name) AS topics
	RETURN a.title AS title,
	       a.telegram_url AS telegram_url,
	       toString(date(a.published_at)) AS day,
	       topics
	ORDER BY day DESC, title ASC
`

// vectorIndexStatement interpolates the dimension because index DDL cannot be
// parameterized.
func vectorIndexStatement(dim int) string {
	return fmt.Sprintf(`
	CREATE VECTOR INDEX %s IF NOT EXISTS
	FOR (a:Article) ON (a.embedding)
	OPTIONS {indexConfig: {
	    `+"`vector.dimensions`"+`: %d,
	    `+"`vector.similarity_function`"+`: 'cosine'
	}}`, vectorIndexName, dim)
}

// ============================================================================
// Cypher-backed Store
// ============================================================================

// cypherRunner executes one parameterized statement and returns row maps.
// The bolt and Query API backends each provide one.
type cypherRunner interface {
	Run(ctx context.Context, statement string, params map[string]any) ([]map[string]any, error)
	Close(ctx context.Context) error
}

// cypherStore implements Store on top of any cypherRunner.
type cypherStore struct {
	runner cypherRunner
	dim    int
}

func newCypherStore(ctx context.Context, runner cypherRunner, dim int) (*cypherStore, error) {
	s := &cypherStore{runner: runner, dim: dim}
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *cypherStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.runner.Run(ctx, stmtArticleConstraint, nil); err != nil {
		return err
	}
	_, err := s.runner.Run(ctx, vectorIndexStatement(s.dim), nil)
	return err
}

func (s *cypherStore) UpsertArticle(ctx context.Context, article Article, embedding []float64) error {
	if len(embedding) != s.dim {
		return apperrors.NewSchemaViolation(s.dim, len(embedding))
	}
	_, err := s.runner.Run(ctx, stmtUpsertArticle, map[string]any{
		"telegram_message_id": article.MessageID,
		"title":               article.Title,
		"body":                article.Body,
		"telegram_url":        article.URL,
		"source_channel":      article.SourceChannel,
		"published_at":        article.PublishedAt.UTC().Format(time.RFC3339),
		"embedding":           embedding,
	})
	return err
}

func (s *cypherStore) AttachTopics(ctx context.Context, article Article) error {
	if len(article.Topics) == 0 {
		return nil
	}
	_, err := s.runner.Run(ctx, stmtAttachTopics, map[string]any{
		"telegram_message_id": article.MessageID,
		"topics":              article.Topics,
	})
	return err
}

func (s *cypherStore) AttachEntities(ctx context.Context, article Article) error {
	if len(article.Entities) == 0 {
		return nil
	}
	entities := make([]map[string]any, 0, len(article.Entities))
	for _, e := range article.Entities {
		entities = append(entities, map[string]any{"name": e.Name, "type": e.Type})
	}
	_, err := s.runner.Run(ctx, stmtAttachEntities, map[string]any{
		"telegram_message_id": article.MessageID,
		"entities":            entities,
	})
	return err
}

func (s *cypherStore) AttachProjects(ctx context.Context, article Article) error {
	if len(article.Projects) == 0 {
		return nil
	}
	projects := make([]map[string]any, 0, len(article.Projects))
	for _, p := range article.Projects {
		// nil description keeps coalesce() from erasing a stored one
		var description any
		if p.Description != "" {
			description = p.Description
		}
		projects = append(projects, map[string]any{
			"name":        p.Name,
			"description": description,
			"topics":      p.Topics,
		})
	}
	_, err := s.runner.Run(ctx, stmtAttachProjects, map[string]any{
		"telegram_message_id": article.MessageID,
		"projects":            projects,
	})
	return err
}

func (s *cypherStore) FindSimilarArticles(ctx context.Context, embedding []float64, excludeID string, limit int, minScore float64) ([]SimilarityMatch, error) {
	rows, err := s.runner.Run(ctx, stmtFindSimilar, map[string]any{
		"index_name":          vectorIndexName,
		"limit":               limit,
		"embedding":           embedding,
		"telegram_message_id": excludeID,
		"min_score":           minScore,
	})
	if err != nil {
		return nil, err
	}
	matches := make([]SimilarityMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, SimilarityMatch{
			MessageID: getString(row, "telegram_message_id"),
			Title:     getString(row, "title"),
			URL:       getString(row, "telegram_url"),
			Score:     getFloat64(row, "score"),
		})
	}
	return matches, nil
}

func (s *cypherStore) CreateSimilarityLinks(ctx context.Context, sourceID string, matches []SimilarityMatch) error {
	if len(matches) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, map[string]any{
			"telegram_message_id": m.MessageID,
			"score":               m.Score,
		})
	}
	_, err := s.runner.Run(ctx, stmtCreateSimilarityLinks, map[string]any{
		"source_id": sourceID,
		"matches":   rows,
	})
	return err
}

func (s *cypherStore) WeeklyDigest(ctx context.Context, days int) ([]DigestEntry, error) {
	rows, err := s.runner.Run(ctx, stmtWeeklyDigest, map[string]any{"days": days})
	if err != nil {
		return nil, err
	}
	entries := make([]DigestEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, DigestEntry{
			Day:    getString(row, "day"),
			Title:  getString(row, "title"),
			URL:    getString(row, "telegram_url"),
			Topics: getStringSlice(row, "topics"),
		})
	}
	return entries, nil
}

func (s *cypherStore) ArticlesByEntity(ctx context.Context, entityName string, days int) ([]EntityArticle, error) {
	rows, err := s.runner.Run(ctx, stmtArticlesByEntity, map[string]any{
		"entity": entityName,
		"days":   days,
	})
	if err != nil {
		return nil, err
	}
	articles := make([]EntityArticle, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, EntityArticle{
			Day:   getString(row, "day"),
			Title: getString(row, "title"),
			URL:   getString(row, "telegram_url"),
		})
	}
	return articles, nil
}

func (s *cypherStore) ProjectsByTopic(ctx context.Context, topic string) ([]ProjectHighlight, error) {
	rows, err := s.runner.Run(ctx, stmtProjectsByTopic, map[string]any{"topic": topic})
	if err != nil {
		return nil, err
	}
	highlights := make([]ProjectHighlight, 0, len(rows))
	for _, row := range rows {
		highlights = append(highlights, ProjectHighlight{
			Project: getString(row, "project"),
			Title:   getString(row, "title"),
			URL:     getString(row, "telegram_url"),
			Day:     getString(row, "day"),
		})
	}
	return highlights, nil
}

func (s *cypherStore) NewsByTopic(ctx context.Context, marker string) ([]TopicHighlight, error) {
	rows, err := s.runner.Run(ctx, stmtNewsByTopic, map[string]any{"marker": marker})
	if err != nil {
		return nil, err
	}
	highlights := make([]TopicHighlight, 0, len(rows))
	for _, row := range rows {
		highlights = append(highlights, TopicHighlight{
			Title:  getString(row, "title"),
			URL:    getString(row, "telegram_url"),
			Day:    getString(row, "day"),
			Topics: getStringSlice(row, "topics"),
		})
	}
	return highlights, nil
}

func (s *cypherStore) Close(ctx context.Context) error {
	return s.runner.Close(ctx)
}
