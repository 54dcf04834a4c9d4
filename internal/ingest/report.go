package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ReportOptions parameterizes the fixed query catalog the report renders.
type ReportOptions struct {
	DigestDays   int
	EntityName   string
	EntityDays   int
	ProjectTopic string
	TopicMarker  string
}

// DefaultReportOptions reproduces the editorial scenario: a weekly digest,
// recent OpenAI coverage, VLM projects, and image-editing model updates.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		DigestDays:   7,
		EntityName:   "OpenAI",
		EntityDays:   14,
		ProjectTopic: "Vision-Language Models",
		TopicMarker:  "Image Edit",
	}
}

// WriteReport runs the query catalog and renders a human-readable report.
// Field names per section (title, url, day, topics, project, score) are
// stable for downstream consumers even though the layout is informal.
func (p *Pipeline) WriteReport(ctx context.Context, w io.Writer, opts ReportOptions) error {
	if err := p.writeDigest(ctx, w, opts); err != nil {
		return err
	}
	if err := p.writeEntityFeed(ctx, w, opts); err != nil {
		return err
	}
	if err := p.writeProjectFeed(ctx, w, opts); err != nil {
		return err
	}
	return p.writeTopicFeed(ctx, w, opts)
}

func (p *Pipeline) writeDigest(ctx context.Context, w io.Writer, opts ReportOptions) error {
	digest, err := p.store.WeeklyDigest(ctx, opts.DigestDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nWeekly digest (last %d days):\n", opts.DigestDays)
	lastDay := ""
	for _, entry := range digest {
		if entry.Day != lastDay {
			fmt.Fprintf(w, "  %s:\n", entry.Day)
			lastDay = entry.Day
		}
		topics := strings.Join(entry.Topics, ", ")
		if topics == "" {
			topics = "No topic tags"
		}
		fmt.Fprintf(w, "    - %s [%s] -> %s\n", entry.Title, topics, entry.URL)
	}
	return nil
}

func (p *Pipeline) writeEntityFeed(ctx context.Context, w io.Writer, opts ReportOptions) error {
	articles, err := p.store.ArticlesByEntity(ctx, opts.EntityName, opts.EntityDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRecent %s news:\n", opts.EntityName)
	if len(articles) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	for _, item := range articles {
		fmt.Fprintf(w, "  - %s: %s -> %s\n", item.Day, item.Title, item.URL)
	}
	return nil
}

func (p *Pipeline) writeProjectFeed(ctx context.Context, w io.Writer, opts ReportOptions) error {
	entries, err := p.store.ProjectsByTopic(ctx, opts.ProjectTopic)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nProjects tagged %q:\n", opts.ProjectTopic)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	for _, item := range entries {
		fmt.Fprintf(w, "  - %s: %s via %s -> %s\n", item.Day, item.Project, item.Title, item.URL)
	}
	return nil
}

func (p *Pipeline) writeTopicFeed(ctx context.Context, w io.Writer, opts ReportOptions) error {
	entries, err := p.store.NewsByTopic(ctx, opts.TopicMarker)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nUpdates on %q topics:\n", opts.TopicMarker)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	for _, item := range entries {
		topics := strings.Join(item.Topics, ", ")
		if topics == "" {
			topics = "No topic tags"
		}
		fmt.Fprintf(w, "  - %s: %s [%s] -> %s\n", item.Day, item.Title, topics, item.URL)
	}
	return nil
}
