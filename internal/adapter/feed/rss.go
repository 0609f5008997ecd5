package feed

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
	"newsrag/internal/domain"
	"newsrag/internal/port"
)

// RSSFetcher pulls articles from RSS/Atom feeds. A feed that fails to parse
// is skipped with a warning rather than failing the whole fetch.
type RSSFetcher struct {
	parser   *gofeed.Parser
	warnings []string
}

func NewRSSFetcher(timeout time.Duration) *RSSFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &RSSFetcher{parser: parser}
}

// FetchAll pulls every configured feed and returns the articles deduplicated
// by ID. Feeds are visited in source-name order so runs are reproducible.
func (f *RSSFetcher) FetchAll(feeds map[string]string, progress port.Progress) ([]domain.Article, error) {
	f.warnings = nil

	names := make([]string, 0, len(feeds))
	for name := range feeds {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []domain.Article
	for i, name := range names {
		progress.Report(float64(i+1)/float64(len(names)), fmt.Sprintf("Fetching %s...", name))

		articles, err := f.FetchFeed(name, feeds[name])
		if err != nil {
			f.warnings = append(f.warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		all = append(all, articles...)
	}

	seen := make(map[string]struct{}, len(all))
	unique := make([]domain.Article, 0, len(all))
	for _, a := range all {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		unique = append(unique, a)
	}

	return unique, nil
}

// FetchFeed pulls a single feed.
func (f *RSSFetcher) FetchFeed(sourceName, feedURL string) ([]domain.Article, error) {
	parsed, err := f.parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		articles = append(articles, articleFromItem(sourceName, item))
	}
	return articles, nil
}

// Warnings returns per-feed failures from the last FetchAll.
func (f *RSSFetcher) Warnings() []string {
	return f.warnings
}

// articleFromItem maps one feed entry onto the article contract. Content
// falls back to description, then summary; the summary is capped so oversized
// entries do not bloat metadata.
func articleFromItem(sourceName string, item *gofeed.Item) domain.Article {
	content := item.Content
	if content == "" {
		content = item.Description
	}

	summary := item.Description
	if summary == "" && len(content) > 0 {
		summary = content
		if len(summary) > 500 {
			summary = summary[:500]
		}
	}
	if content == "" {
		content = summary
	}

	var publishedAt *time.Time
	if item.PublishedParsed != nil {
		publishedAt = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = item.UpdatedParsed
	}

	return domain.Article{
		ID:          domain.ArticleID(item.Link),
		Title:       item.Title,
		Content:     content,
		Summary:     summary,
		Source:      sourceName,
		URL:         item.Link,
		PublishedAt: publishedAt,
	}
}
