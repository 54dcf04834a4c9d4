package graph

import "time"

// ============================================================================
// Knowledge Graph Types
// ============================================================================

// Article is a single ingested text document with a stable external identity.
// The Telegram message id is globally unique and survives re-ingestion.
type Article struct {
	MessageID     string       `json:"telegram_message_id"`
	Title         string       `json:"title"`
	Body          string       `json:"body"`
	URL           string       `json:"telegram_url"`
	PublishedAt   time.Time    `json:"published_at"`
	SourceChannel string       `json:"source_channel"`
	Topics        []string     `json:"topics,omitempty"`
	Entities      []EntityRef  `json:"entities,omitempty"`
	Projects      []ProjectRef `json:"projects,omitempty"`
}

// EntityRef is a named entity mentioned by an article. Identity is the name;
// the type tag is overwritten to match the latest attachment.
type EntityRef struct {
	Name string `json:"name"`
	Type string `json:"type"` // e.g. Org, Person, Product
}

// ProjectRef is a project featured by an article. A later attachment with an
// empty description never erases a known one.
type ProjectRef struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Topics      []string `json:"topics,omitempty"`
}

// SimilarityMatch is one prior article returned by a similarity search.
type SimilarityMatch struct {
	MessageID string  `json:"telegram_message_id"`
	Title     string  `json:"title"`
	URL       string  `json:"telegram_url"`
	Score     float64 `json:"score"`
}

// DigestEntry is one row of the weekly digest. Day is a YYYY-MM-DD string in
// every backend so result sets compare directly.
type DigestEntry struct {
	Day    string   `json:"day"`
	Title  string   `json:"title"`
	URL    string   `json:"telegram_url"`
	Topics []string `json:"topics"`
}

// EntityArticle is one row of the entity-filtered article feed.
type EntityArticle struct {
	Day   string `json:"day"`
	Title string `json:"title"`
	URL   string `json:"telegram_url"`
}

// ProjectHighlight is one row of the topic-filtered project feed.
type ProjectHighlight struct {
	Project string `json:"project"`
	Title   string `json:"title"`
	URL     string `json:"telegram_url"`
	Day     string `json:"day"`
}

// TopicHighlight is one row of the topic-substring feed, with the matching
// topic names collected per article.
type TopicHighlight struct {
	Title  string   `json:"title"`
	URL    string   `json:"telegram_url"`
	Day    string   `json:"day"`
	Topics []string `json:"topics"`
}
