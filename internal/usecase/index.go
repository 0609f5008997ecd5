package usecase

import (
	"fmt"

	"newsrag/internal/domain"
	"newsrag/internal/port"
)

// IndexUseCase feeds raw articles through the document builder into the
// vector collection, skipping chunks that are already indexed. It holds no
// state of its own; the collection owns all persistence.
type IndexUseCase struct {
	builder    *DocumentBuilder
	collection port.Collection
}

func NewIndexUseCase(builder *DocumentBuilder, collection port.Collection) *IndexUseCase {
	return &IndexUseCase{
		builder:    builder,
		collection: collection,
	}
}

// IndexArticles indexes the given articles and returns the number of chunks
// newly inserted. Calling it twice with the same input returns 0 the second
// time. Progress milestones go to the sink; pass port.NopProgress{} when no
// reporting is wanted.
func (u *IndexUseCase) IndexArticles(articles []domain.Article, progress port.Progress) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	progress.Report(0.3, "Converting articles to chunks...")
	candidates := u.builder.Build(articles)
	if len(candidates) == 0 {
		return 0, nil
	}

	progress.Report(0.6, "Checking for duplicates...")
	existing, err := u.collection.ListIDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list indexed chunks: %w", err)
	}

	fresh := make([]domain.Chunk, 0, len(candidates))
	for _, chunk := range candidates {
		if _, ok := existing[chunk.ID]; ok {
			continue
		}
		fresh = append(fresh, chunk)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	progress.Report(0.8, fmt.Sprintf("Indexing %d new chunks...", len(fresh)))
	inserted, err := u.collection.Upsert(fresh)
	if err != nil {
		return 0, fmt.Errorf("failed to index chunks: %w", err)
	}

	return inserted, nil
}
