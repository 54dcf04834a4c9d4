package ingest

import (
	"time"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
)

// SyntheticArticles returns the built-in editorial batch used when no seed
// file is configured. It includes a near-duplicate pair (tg-1001/tg-1005), a
// shared "OpenAI" entity across several articles, VLM-tagged projects, and an
// article outside the weekly digest window.
func SyntheticArticles(now time.Time) []graph.Article {
	return []graph.Article{
		{
			MessageID: "tg-1001",
			Title:     "OpenAI ships Sora safety bundle",
			Body: "OpenAI dropped a Sora safety update focused on watermarking," +
				" improved classifiers, and new policy guardrails. Editors" +
				" received internal tooling to review generated clips before" +
				" they are published and the team highlighted upcoming video" +
				" filters.",
			URL:           "https://t.me/content_lab/1001",
			PublishedAt:   now.Add(-24 * time.Hour),
			SourceChannel: "content_lab",
			Topics:        []string{"OpenAI", "Generative Video", "Policy"},
			Entities: []graph.EntityRef{
				{Name: "OpenAI", Type: "Org"},
				{Name: "Sora", Type: "Project"},
			},
			Projects: []graph.ProjectRef{
				{
					Name:        "Sora Safety Belt",
					Description: "New moderation layer for Sora videos",
					Topics:      []string{"Vision-Language Models", "Generative Video"},
				},
			},
		},
		{
			MessageID: "tg-1002",
			Title:     "LensForge open-sources its VLM agent toolkit",
			Body: "LensForge unveiled Vision Relay, a toolkit that chains VLMs" +
				" with retrieval agents. The repo ships with Neo4j adapters," +
				" telemetry hooks, and scripted evaluations for enterprise" +
				" copilots.",
			URL:           "https://t.me/content_lab/1002",
			PublishedAt:   now.Add(-48 * time.Hour),
			SourceChannel: "content_lab",
			Topics:        []string{"Vision-Language Models", "Developer Tools"},
			Entities: []graph.EntityRef{
				{Name: "LensForge", Type: "Org"},
			},
			Projects: []graph.ProjectRef{
				{
					Name:        "Vision Relay",
					Description: "Open VLM agent stack",
					Topics:      []string{"Vision-Language Models", "Agent Tooling"},
				},
			},
		},
		{
			MessageID: "tg-1003",
			Title:     "Image editing model roundup",
			Body: "Runway, Ideogram, and Adobe all quietly shipped image editing" +
				" improvements. Firefly added inpainting that keeps lighting" +
				" consistent, Ideogram rolled out typography aware edits, and" +
				" Runway's Gen-2 received a portrait refiner.",
			URL:           "https://t.me/content_lab/1003",
			PublishedAt:   now.Add(-72 * time.Hour),
			SourceChannel: "content_lab",
			Topics:        []string{"Image Editing Models", "Generative AI"},
			Entities: []graph.EntityRef{
				{Name: "Adobe", Type: "Org"},
				{Name: "Runway", Type: "Org"},
				{Name: "Ideogram", Type: "Org"},
			},
		},
		{
			MessageID: "tg-1004",
			Title:     "OpenAI partners with NewsDeck",
			Body: "NewsDeck tapped OpenAI to power newsroom copilots that browse" +
				" archives, propose headlines, and anchor references back to" +
				" Neo4j topic graphs. The pilot covers investigative teams" +
				" in NYC and London.",
			URL:           "https://t.me/content_lab/1004",
			PublishedAt:   now.Add(-96 * time.Hour),
			SourceChannel: "content_lab",
			Topics:        []string{"OpenAI", "News Automation"},
			Entities: []graph.EntityRef{
				{Name: "OpenAI", Type: "Org"},
				{Name: "NewsDeck", Type: "Org"},
			},
		},
		{
			MessageID: "tg-1005",
			Title:     "OpenAI ships Sora safety bundle (editor recap)",
			Body: "Editors circulated a recap of the new Sora safety bundle." +
				" It reiterates the watermarking roadmap, classifiers, and" +
				" pre-publish review loop, almost identical to the launch" +
				" post but framed for team onboarding.",
			URL:           "https://t.me/content_lab/1005",
			PublishedAt:   now.Add(-26 * time.Hour),
			SourceChannel: "content_lab",
			Topics:        []string{"OpenAI", "Generative Video"},
			Entities: []graph.EntityRef{
				{Name: "OpenAI", Type: "Org"},
				{Name: "Sora", Type: "Project"},
			},
			Projects: []graph.ProjectRef{
				{
					// Description intentionally empty: the stored one from
					// tg-1001 must survive the coalesce.
					Name:   "Sora Safety Belt",
					Topics: []string{"Vision-Language Models", "Generative Video"},
				},
			},
		},
		{
			MessageID: "tg-0990",
			Title:     "Meta's multimodal lab notes",
			Body: "Meta Reality Labs described a six-month effort on perception" +
				" fused transformers. While adjacent to VLM work, it's mostly" +
				" background context and predates this week's focus.",
			URL:           "https://t.me/content_lab/990",
			PublishedAt:   now.Add(-12 * 24 * time.Hour),
			SourceChannel: "content_lab",
			Topics:        []string{"Vision-Language Models", "Research"},
			Entities: []graph.EntityRef{
				{Name: "Meta", Type: "Org"},
			},
		},
	}
}
