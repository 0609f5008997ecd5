package usecase

import (
	"errors"
	"fmt"
	"strings"

	"newsrag/internal/domain"
	"newsrag/internal/port"
)

// contextDelimiter separates articles in the assembled context string.
const contextDelimiter = "\n---\n"

// AnswerUseCase is the retrieval pipeline: embed the query, search the
// collection, assemble a deduplicated context, and hand it to the generator.
// Generator failures degrade to returning the raw retrieved context; only
// index and embedding failures propagate as errors.
type AnswerUseCase struct {
	collection port.Collection
	llm        port.LLM
}

func NewAnswerUseCase(collection port.Collection, llm port.LLM) *AnswerUseCase {
	return &AnswerUseCase{
		collection: collection,
		llm:        llm,
	}
}

// Answer retrieves the top-k chunks for the query and generates a summary.
// The returned Answer always carries a status and a human-readable summary.
func (u *AnswerUseCase) Answer(query string, k int) (domain.Answer, error) {
	count, err := u.collection.Count()
	if err != nil {
		return domain.Answer{}, err
	}
	if count == 0 {
		return domain.Answer{
			Status:  domain.StatusNoData,
			Summary: "No news articles have been indexed yet. Fetch and index some articles first.",
		}, nil
	}

	results, err := u.collection.Query(query, k)
	if err != nil {
		return domain.Answer{}, err
	}
	if len(results) == 0 {
		return domain.Answer{
			Status:  domain.StatusNoResults,
			Summary: "No relevant articles found for your query. Try a different search term.",
		}, nil
	}

	context := FormatContext(results)
	sources := ExtractSources(results)

	available, status := u.llm.Available()
	if !available {
		return domain.Answer{
			Status:  domain.StatusLLMUnavailable,
			Summary: fmt.Sprintf("LLM not available: %s\n\nRetrieved articles:\n\n%s", status, context),
			Sources: sources,
			Context: context,
		}, nil
	}

	summary, err := u.llm.Generate(context, query)
	if err != nil {
		if errors.Is(err, domain.ErrGeneratorUnavailable) {
			return domain.Answer{
				Status:  domain.StatusLLMUnavailable,
				Summary: fmt.Sprintf("LLM not available: %v\n\nRetrieved articles:\n\n%s", err, context),
				Sources: sources,
				Context: context,
			}, nil
		}
		return domain.Answer{
			Status:  domain.StatusGenerationError,
			Summary: fmt.Sprintf("Error generating summary: %v\n\nRetrieved context:\n\n%s", err, context),
			Sources: sources,
			Context: context,
		}, nil
	}

	return domain.Answer{
		Status:  domain.StatusSuccess,
		Summary: summary,
		Sources: sources,
		Context: context,
	}, nil
}

// FormatContext assembles retrieved chunks into the context string handed to
// the generator. Entries whose title was already emitted are suppressed, the
// first (highest-relevance) occurrence wins. Known limitation: distinct
// articles sharing a title collapse into one entry.
func FormatContext(results []domain.ScoredChunk) string {
	if len(results) == 0 {
		return "No relevant articles found."
	}

	var parts []string
	seenTitles := make(map[string]struct{})

	for _, r := range results {
		title := r.Metadata.Title
		if title == "" {
			title = "Untitled"
		}
		if _, seen := seenTitles[title]; seen {
			continue
		}
		seenTitles[title] = struct{}{}

		source := r.Metadata.Source
		if source == "" {
			source = "Unknown"
		}

		parts = append(parts, fmt.Sprintf(
			"[Article %d]\nTitle: %s\nSource: %s\nDate: %s\nContent: %s\n",
			len(parts)+1, title, source, r.Metadata.PublishedAt, r.Text,
		))
	}

	return strings.Join(parts, contextDelimiter)
}

// ExtractSources returns one attribution entry per distinct article URL, in
// relevance order.
func ExtractSources(results []domain.ScoredChunk) []domain.SourceRef {
	seenURLs := make(map[string]struct{})
	var sources []domain.SourceRef

	for _, r := range results {
		url := r.Metadata.URL
		if url == "" {
			continue
		}
		if _, seen := seenURLs[url]; seen {
			continue
		}
		seenURLs[url] = struct{}{}

		title := r.Metadata.Title
		if title == "" {
			title = "Untitled"
		}
		source := r.Metadata.Source
		if source == "" {
			source = "Unknown"
		}

		sources = append(sources, domain.SourceRef{
			Title:  title,
			Source: source,
			URL:    url,
			Date:   r.Metadata.PublishedAt,
		})
	}

	return sources
}
