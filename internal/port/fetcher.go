package port

import "newsrag/internal/domain"

// Fetcher retrieves raw articles from configured news feeds.
type Fetcher interface {
	// FetchAll pulls every feed and returns the deduplicated articles.
	// Per-feed progress goes to the sink.
	FetchAll(feeds map[string]string, progress Progress) ([]domain.Article, error)
}
