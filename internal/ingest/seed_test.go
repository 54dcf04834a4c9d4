package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadArticles(t *testing.T) {
	path := writeSeedFile(t, `
articles:
  - messageId: "1719"
    title: "WAN 2.5 preview"
    body: "Alibaba previews WAN 2.5 with native audio."
    url: "https://t.me/dubovykai/1719"
    publishedAt: 2025-09-24T10:00:00Z
    sourceChannel: dubovykai
    topics:
      - "WAN 2.5"
      - "Video Generation"
    entities:
      - name: Alibaba
        type: Org
    projects:
      - name: WAN Watch
        description: Tracking WAN releases
        topics:
          - "Video Generation"
  - messageId: "1720"
    title: "WAN 2.5 recap"
`)

	articles, err := LoadArticles(path)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "1719", first.MessageID)
	assert.Equal(t, "WAN 2.5 preview", first.Title)
	assert.Equal(t, time.Date(2025, 9, 24, 10, 0, 0, 0, time.UTC), first.PublishedAt)
	assert.Equal(t, []string{"WAN 2.5", "Video Generation"}, first.Topics)
	assert.Equal(t, []graph.EntityRef{{Name: "Alibaba", Type: "Org"}}, first.Entities)
	require.Len(t, first.Projects, 1)
	assert.Equal(t, graph.ProjectRef{
		Name:        "WAN Watch",
		Description: "Tracking WAN releases",
		Topics:      []string{"Video Generation"},
	}, first.Projects[0])

	second := articles[1]
	assert.Equal(t, "1720", second.MessageID)
	assert.Empty(t, second.Topics)
}

func TestLoadArticles_MissingMessageID(t *testing.T) {
	path := writeSeedFile(t, `
articles:
  - title: "No id here"
`)
	_, err := LoadArticles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no messageId")
}

func TestLoadArticles_FileMissing(t *testing.T) {
	_, err := LoadArticles(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadArticles_MalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "articles: [not: closed")
	_, err := LoadArticles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse seed file")
}
