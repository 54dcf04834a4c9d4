package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
)

// maxChunkChars bounds the size of each embedding input chunk.
const maxChunkChars = 2000

// NormalizeBody strips markup from an article body and collapses whitespace
// so the embedding input carries only prose. Telegram exports are usually
// plain text, but forwarded web content arrives with HTML.
func NormalizeBody(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.Join(strings.Fields(body), " ")
	}
	doc.Find("script, style, noscript, iframe, svg").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ChunkText splits text into rune-safe chunks of at most maxChars characters.
func ChunkText(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxChars <= 0 {
		maxChars = maxChunkChars
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxChars-1)/maxChars)
	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// EmbeddingInput builds the text handed to the embedding provider: the title
// followed by the normalized, chunked body.
func EmbeddingInput(article graph.Article) string {
	parts := []string{article.Title}
	parts = append(parts, ChunkText(NormalizeBody(article.Body), maxChunkChars)...)
	return strings.Join(parts, "\n\n")
}
