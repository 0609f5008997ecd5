package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article is a raw news article as produced by a feed fetcher.
type Article struct {
	ID          string
	Title       string
	Content     string
	Summary     string
	Source      string
	URL         string
	PublishedAt *time.Time
}

// ArticleID derives a stable identifier from an article URL. The same URL
// always maps to the same ID across runs and processes, which is what makes
// dedup work without a lookup table.
func ArticleID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:8])
}

// Chunk is one indexed piece of an article. Vector is filled lazily by the
// collection on upsert when absent.
type Chunk struct {
	ID       string
	Text     string
	Vector   []float32
	Metadata ChunkMetadata
}

// ChunkMetadata carries the article attributes persisted next to each chunk.
// PublishedAt is an RFC 3339 string, empty when the feed gave no date.
type ChunkMetadata struct {
	ArticleID   string `json:"article_id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	ChunkIndex  int    `json:"chunk_index"`
}

// ScoredChunk is a retrieval hit: chunk text plus metadata and similarity.
type ScoredChunk struct {
	Text     string
	Metadata ChunkMetadata
	Score    float64
}

// SourceRef identifies one article for attribution in an answer.
type SourceRef struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
	Date   string `json:"date"`
}

// AnswerStatus classifies the outcome of an answer request.
type AnswerStatus string

const (
	StatusSuccess         AnswerStatus = "success"
	StatusLLMUnavailable  AnswerStatus = "llm_unavailable"
	StatusNoData          AnswerStatus = "no_data"
	StatusNoResults       AnswerStatus = "no_results"
	StatusGenerationError AnswerStatus = "generation_error"
)

// Answer is the structured result of the retrieval pipeline. Summary is
// always human-readable; on degraded outcomes it carries the retrieved
// context instead of a generated text.
type Answer struct {
	Status  AnswerStatus `json:"status"`
	Summary string       `json:"summary"`
	Sources []SourceRef  `json:"sources,omitempty"`
	Context string       `json:"context,omitempty"`
}
