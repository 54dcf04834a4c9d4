package graph

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// These tests require a running Neo4j 5.x instance with the vector index
// procedures available. Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD to point at
// it; run with -short to skip.
func TestBoltStore_IngestAndQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	logger.Init("test")

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Skipf("Neo4j not reachable: %v", err)
	}

	store, err := NewBoltStore(ctx, driver, "neo4j", 3)
	if err != nil {
		t.Fatalf("NewBoltStore failed: %v", err)
	}
	defer store.Close(ctx)

	suffix := time.Now().Format("20060102150405")
	firstID := "it-" + suffix + "-1"
	secondID := "it-" + suffix + "-2"
	entityName := "ItEntity-" + suffix

	defer func() {
		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)
		_, _ = session.Run(ctx,
			"MATCH (a:Article) WHERE a.telegram_message_id STARTS WITH $prefix DETACH DELETE a",
			map[string]any{"prefix": "it-" + suffix})
		_, _ = session.Run(ctx,
			"MATCH (e:Entity {name: $name}) DETACH DELETE e",
			map[string]any{"name": entityName})
	}()

	first := Article{
		MessageID:     firstID,
		Title:         "Integration first",
		Body:          "first body",
		URL:           "https://t.me/content_lab/" + firstID,
		PublishedAt:   time.Now().UTC().Add(-time.Hour),
		SourceChannel: "content_lab",
		Entities:      []EntityRef{{Name: entityName, Type: "Org"}},
	}
	second := first
	second.MessageID = secondID
	second.Title = "Integration second"
	second.URL = "https://t.me/content_lab/" + secondID

	if err := store.UpsertArticle(ctx, first, []float64{1, 0, 0}); err != nil {
		t.Fatalf("UpsertArticle failed: %v", err)
	}
	if err := store.AttachEntities(ctx, first); err != nil {
		t.Fatalf("AttachEntities failed: %v", err)
	}
	if err := store.UpsertArticle(ctx, second, []float64{1, 0.05, 0}); err != nil {
		t.Fatalf("UpsertArticle failed: %v", err)
	}

	// the vector index populates asynchronously
	var matches []SimilarityMatch
	for attempt := 0; attempt < 10; attempt++ {
		matches, err = store.FindSimilarArticles(ctx, []float64{1, 0, 0}, firstID, 5, 0.9)
		if err != nil {
			t.Fatalf("FindSimilarArticles failed: %v", err)
		}
		if containsMatch(matches, secondID) {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if !containsMatch(matches, secondID) {
		t.Fatalf("Expected %s among matches, got %v", secondID, matches)
	}

	if err := store.CreateSimilarityLinks(ctx, firstID, matches); err != nil {
		t.Fatalf("CreateSimilarityLinks failed: %v", err)
	}

	articles, err := store.ArticlesByEntity(ctx, entityName, 7)
	if err != nil {
		t.Fatalf("ArticlesByEntity failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Integration first" {
		t.Errorf("Expected the first article for entity %s, got %v", entityName, articles)
	}
}

func containsMatch(matches []SimilarityMatch, id string) bool {
	for _, m := range matches {
		if m.MessageID == id {
			return true
		}
	}
	return false
}

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		uri = "bolt://localhost:7687"
	}
	user := os.Getenv("NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}
	password := os.Getenv("NEO4J_PASSWORD")
	if password == "" {
		password = "password"
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify connectivity: %w", err)
	}
	return driver, nil
}
