package usecase

import (
	"fmt"
	"strings"
	"time"

	"newsrag/internal/domain"
	"newsrag/internal/port"
)

// DocumentBuilder turns raw articles into chunk records ready for indexing.
// It is a pure transformation: no network, no index access.
type DocumentBuilder struct {
	chunker port.Chunker
}

func NewDocumentBuilder(chunker port.Chunker) *DocumentBuilder {
	return &DocumentBuilder{chunker: chunker}
}

// Build converts articles into chunks. Each chunk gets a deterministic ID of
// the form <articleID>_<chunkIndex>, so rebuilding the same article with the
// same chunker configuration yields byte-identical IDs.
func (b *DocumentBuilder) Build(articles []domain.Article) []domain.Chunk {
	var chunks []domain.Chunk

	for _, article := range articles {
		articleID := article.ID
		if articleID == "" {
			articleID = domain.ArticleID(article.URL)
		}

		text := combinedText(article)
		if text == "" {
			continue
		}

		publishedAt := ""
		if article.PublishedAt != nil {
			publishedAt = article.PublishedAt.Format(time.RFC3339)
		}

		for i, piece := range b.chunker.Split(text) {
			chunks = append(chunks, domain.Chunk{
				ID:   fmt.Sprintf("%s_%d", articleID, i),
				Text: piece,
				Metadata: domain.ChunkMetadata{
					ArticleID:   articleID,
					Title:       article.Title,
					Source:      article.Source,
					URL:         article.URL,
					PublishedAt: publishedAt,
					ChunkIndex:  i,
				},
			})
		}
	}

	return chunks
}

// combinedText joins title and body for better retrieval context. The body
// falls back to the summary when empty.
func combinedText(article domain.Article) string {
	body := article.Content
	if strings.TrimSpace(body) == "" {
		body = article.Summary
	}

	if strings.TrimSpace(article.Title) == "" {
		return strings.TrimSpace(body)
	}
	if strings.TrimSpace(body) == "" {
		return strings.TrimSpace(article.Title)
	}
	return fmt.Sprintf("Title: %s\n\n%s", article.Title, body)
}
