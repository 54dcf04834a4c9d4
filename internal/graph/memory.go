package graph

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	apperrors "github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/errors"
)

const dayFormat = "2006-01-02"

// MemoryStore is the in-process fallback backend. It keeps every index in
// owned maps and computes similarity with a linear cosine scan, which is fine
// at prototype scale. It has no internal locking and must not be shared
// across goroutines.
type MemoryStore struct {
	dim      int
	articles map[string]*memoryArticle
	entities map[string]*memoryEntity
	projects map[string]*memoryProject
	edges    map[string]memoryEdge
	now      func() time.Time
}

type memoryArticle struct {
	article   Article
	embedding []float64
	topics    []string // attached, deduplicated, insertion order
}

type memoryEntity struct {
	entityType string
	articles   map[string]struct{}
}

type memoryProject struct {
	description string
	topics      []string
	articles    map[string]struct{}
}

type memoryEdge struct {
	source      string
	target      string
	score       float64
	lastChecked time.Time
}

// NewMemoryStore creates an empty in-process store for the given embedding
// dimension.
func NewMemoryStore(embeddingDim int) *MemoryStore {
	return &MemoryStore{
		dim:      embeddingDim,
		articles: make(map[string]*memoryArticle),
		entities: make(map[string]*memoryEntity),
		projects: make(map[string]*memoryProject),
		edges:    make(map[string]memoryEdge),
		now:      time.Now,
	}
}

// EnsureSchema is a no-op: uniqueness is enforced by map keys and similarity
// is computed directly.
func (s *MemoryStore) EnsureSchema(ctx context.Context) error {
	return nil
}

// UpsertArticle replaces the article's fields and embedding by message id.
// Existing topic, entity, and project attachments survive, matching the graph
// backends where MERGE + SET never removes relations.
func (s *MemoryStore) UpsertArticle(ctx context.Context, article Article, embedding []float64) error {
	if len(embedding) != s.dim {
		return apperrors.NewSchemaViolation(s.dim, len(embedding))
	}
	stored, ok := s.articles[article.MessageID]
	if !ok {
		stored = &memoryArticle{}
		s.articles[article.MessageID] = stored
	}
	stored.article = article
	stored.embedding = append([]float64(nil), embedding...)
	return nil
}

// AttachTopics merges the article's topic names into the shared topic set.
// Unknown article ids write nothing, as a Cypher MATCH would.
func (s *MemoryStore) AttachTopics(ctx context.Context, article Article) error {
	if len(article.Topics) == 0 {
		return nil
	}
	stored, ok := s.articles[article.MessageID]
	if !ok {
		return nil
	}
	for _, topic := range article.Topics {
		stored.topics = appendUnique(stored.topics, topic)
	}
	return nil
}

// AttachEntities merges entities by name. The type tag is last-write-wins.
func (s *MemoryStore) AttachEntities(ctx context.Context, article Article) error {
	if len(article.Entities) == 0 {
		return nil
	}
	if _, ok := s.articles[article.MessageID]; !ok {
		return nil
	}
	for _, ref := range article.Entities {
		entity, ok := s.entities[ref.Name]
		if !ok {
			entity = &memoryEntity{articles: make(map[string]struct{})}
			s.entities[ref.Name] = entity
		}
		entity.entityType = ref.Type
		entity.articles[article.MessageID] = struct{}{}
	}
	return nil
}

// AttachProjects merges projects by name, coalescing descriptions so a later
// empty one never erases a stored one, and unions project topics.
func (s *MemoryStore) AttachProjects(ctx context.Context, article Article) error {
	if len(article.Projects) == 0 {
		return nil
	}
	if _, ok := s.articles[article.MessageID]; !ok {
		return nil
	}
	for _, ref := range article.Projects {
		project, ok := s.projects[ref.Name]
		if !ok {
			project = &memoryProject{articles: make(map[string]struct{})}
			s.projects[ref.Name] = project
		}
		if ref.Description != "" {
			project.description = ref.Description
		}
		for _, topic := range ref.Topics {
			project.topics = appendUnique(project.topics, topic)
		}
		project.articles[article.MessageID] = struct{}{}
	}
	return nil
}

// FindSimilarArticles scans every stored embedding, keeps scores >= minScore,
// excludes excludeID even at score 1.0, and orders by score descending with
// message id ascending as the tie-break.
func (s *MemoryStore) FindSimilarArticles(ctx context.Context, embedding []float64, excludeID string, limit int, minScore float64) ([]SimilarityMatch, error) {
	matches := make([]SimilarityMatch, 0)
	for id, stored := range s.articles {
		if id == excludeID {
			continue
		}
		score := cosineSimilarity(embedding, stored.embedding)
		if score >= minScore {
			matches = append(matches, SimilarityMatch{
				MessageID: id,
				Title:     stored.article.Title,
				URL:       stored.article.URL,
				Score:     score,
			})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].MessageID < matches[j].MessageID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// CreateSimilarityLinks upserts one directed edge per match, keyed by the
// source/target pair so re-running detection updates score and timestamp
// instead of duplicating. Self-links are skipped.
func (s *MemoryStore) CreateSimilarityLinks(ctx context.Context, sourceID string, matches []SimilarityMatch) error {
	if len(matches) == 0 {
		return nil
	}
	if _, ok := s.articles[sourceID]; !ok {
		return nil
	}
	checked := s.now().UTC()
	for _, match := range matches {
		if match.MessageID == sourceID {
			continue
		}
		if _, ok := s.articles[match.MessageID]; !ok {
			continue
		}
		key := sourceID + "\x00" + match.MessageID
		s.edges[key] = memoryEdge{
			source:      sourceID,
			target:      match.MessageID,
			score:       match.Score,
			lastChecked: checked,
		}
	}
	return nil
}

// SimilarityEdgeCount reports the number of materialized similarity edges.
func (s *MemoryStore) SimilarityEdgeCount() int {
	return len(s.edges)
}

// SimilarityEdge returns the stored score for a source/target pair, if any.
func (s *MemoryStore) SimilarityEdge(sourceID, targetID string) (float64, bool) {
	edge, ok := s.edges[sourceID+"\x00"+targetID]
	if !ok {
		return 0, false
	}
	return edge.score, true
}

// WeeklyDigest lists articles inside the window with their attached topics,
// day descending then title ascending.
func (s *MemoryStore) WeeklyDigest(ctx context.Context, days int) ([]DigestEntry, error) {
	cutoff := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	entries := make([]DigestEntry, 0)
	for _, stored := range s.articles {
		if stored.article.PublishedAt.Before(cutoff) {
			continue
		}
		entries = append(entries, DigestEntry{
			Day:    stored.article.PublishedAt.UTC().Format(dayFormat),
			Title:  stored.article.Title,
			URL:    stored.article.URL,
			Topics: append([]string(nil), stored.topics...),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day > entries[j].Day
		}
		return entries[i].Title < entries[j].Title
	})
	return entries, nil
}

// ArticlesByEntity lists articles mentioning the entity inside the window,
// publication time descending.
func (s *MemoryStore) ArticlesByEntity(ctx context.Context, entityName string, days int) ([]EntityArticle, error) {
	entity, ok := s.entities[entityName]
	if !ok {
		return []EntityArticle{}, nil
	}
	cutoff := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	type datedRow struct {
		row       EntityArticle
		published time.Time
		id        string
	}
	rows := make([]datedRow, 0, len(entity.articles))
	for id := range entity.articles {
		stored, ok := s.articles[id]
		if !ok || stored.article.PublishedAt.Before(cutoff) {
			continue
		}
		rows = append(rows, datedRow{
			row: EntityArticle{
				Day:   stored.article.PublishedAt.UTC().Format(dayFormat),
				Title: stored.article.Title,
				URL:   stored.article.URL,
			},
			published: stored.article.PublishedAt,
			id:        id,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].published.Equal(rows[j].published) {
			return rows[i].published.After(rows[j].published)
		}
		return rows[i].id < rows[j].id
	})
	result := make([]EntityArticle, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.row)
	}
	return result, nil
}

// ProjectsByTopic lists projects linked to the topic through their featuring
// articles, publication time descending.
func (s *MemoryStore) ProjectsByTopic(ctx context.Context, topic string) ([]ProjectHighlight, error) {
	type datedRow struct {
		row       ProjectHighlight
		published time.Time
		id        string
	}
	rows := make([]datedRow, 0)
	for name, project := range s.projects {
		if !containsString(project.topics, topic) {
			continue
		}
		for id := range project.articles {
			stored, ok := s.articles[id]
			if !ok {
				continue
			}
			rows = append(rows, datedRow{
				row: ProjectHighlight{
					Project: name,
					Title:   stored.article.Title,
					URL:     stored.article.URL,
					Day:     stored.article.PublishedAt.UTC().Format(dayFormat),
				},
				published: stored.article.PublishedAt,
				id:        id,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].published.Equal(rows[j].published) {
			return rows[i].published.After(rows[j].published)
		}
		if rows[i].row.Project != rows[j].row.Project {
			return rows[i].row.Project < rows[j].row.Project
		}
		return rows[i].id < rows[j].id
	})
	result := make([]ProjectHighlight, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.row)
	}
	return result, nil
}

// NewsByTopic lists articles with at least one attached topic containing the
// marker substring, collecting the matching names, day descending then title
// ascending.
func (s *MemoryStore) NewsByTopic(ctx context.Context, marker string) ([]TopicHighlight, error) {
	entries := make([]TopicHighlight, 0)
	for _, stored := range s.articles {
		matched := make([]string, 0)
		for _, topic := range stored.topics {
			if strings.Contains(topic, marker) {
				matched = append(matched, topic)
			}
		}
		if len(matched) == 0 {
			continue
		}
		entries = append(entries, TopicHighlight{
			Title:  stored.article.Title,
			URL:    stored.article.URL,
			Day:    stored.article.PublishedAt.UTC().Format(dayFormat),
			Topics: matched,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day > entries[j].Day
		}
		return entries[i].Title < entries[j].Title
	})
	return entries, nil
}

// Close is a no-op: the store owns no external resources.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// cosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either has zero magnitude.
func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

