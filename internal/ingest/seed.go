package ingest

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
)

// seedFile is the YAML shape of an article batch.
type seedFile struct {
	Articles []seedArticle `yaml:"articles"`
}

type seedArticle struct {
	MessageID     string        `yaml:"messageId"`
	Title         string        `yaml:"title"`
	Body          string        `yaml:"body"`
	URL           string        `yaml:"url"`
	PublishedAt   time.Time     `yaml:"publishedAt"`
	SourceChannel string        `yaml:"sourceChannel"`
	Topics        []string      `yaml:"topics"`
	Entities      []seedEntity  `yaml:"entities"`
	Projects      []seedProject `yaml:"projects"`
}

type seedEntity struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type seedProject struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Topics      []string `yaml:"topics"`
}

// LoadArticles reads an article batch from a YAML file.
func LoadArticles(path string) ([]graph.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	articles := make([]graph.Article, 0, len(file.Articles))
	for i, seed := range file.Articles {
		if seed.MessageID == "" {
			return nil, fmt.Errorf("seed file %s: article %d has no messageId", path, i)
		}
		article := graph.Article{
			MessageID:     seed.MessageID,
			Title:         seed.Title,
			Body:          seed.Body,
			URL:           seed.URL,
			PublishedAt:   seed.PublishedAt,
			SourceChannel: seed.SourceChannel,
			Topics:        seed.Topics,
		}
		for _, e := range seed.Entities {
			article.Entities = append(article.Entities, graph.EntityRef{Name: e.Name, Type: e.Type})
		}
		for _, p := range seed.Projects {
			article.Projects = append(article.Projects, graph.ProjectRef{
				Name:        p.Name,
				Description: p.Description,
				Topics:      p.Topics,
			})
		}
		articles = append(articles, article)
	}
	return articles, nil
}
