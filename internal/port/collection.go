package port

import "newsrag/internal/domain"

// Collection is a named persistent vector index over article chunks.
type Collection interface {
	// Upsert writes chunks that are not yet present, embedding any chunk
	// whose vector is absent. Chunk IDs already in the collection are
	// skipped, not overwritten. Returns the number actually inserted.
	Upsert(chunks []domain.Chunk) (int, error)

	// Query embeds the query text and returns the k nearest entries by
	// vector similarity, highest first. An empty or missing collection
	// yields an empty result, not an error.
	Query(text string, k int) ([]domain.ScoredChunk, error)

	// ListIDs returns every chunk ID currently in the collection.
	ListIDs() (map[string]struct{}, error)

	// Count returns the number of entries in the collection.
	Count() (int, error)

	// Clear deletes the entire collection. The next operation recreates a
	// fresh, empty one.
	Clear() error
}
