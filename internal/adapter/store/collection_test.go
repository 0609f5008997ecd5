package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"newsrag/internal/adapter/embedding"
	"newsrag/internal/domain"
)

func newTestCollection(t *testing.T) *Collection {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "news.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return NewCollection(db, "news_articles", embedding.NewMockEmbedder(16))
}

func testChunk(id, text string) domain.Chunk {
	return domain.Chunk{
		ID:   id,
		Text: text,
		Metadata: domain.ChunkMetadata{
			ArticleID: id[:len(id)-2],
			Title:     "Title " + id,
			Source:    "Test Source",
			URL:       "https://example.com/" + id,
		},
	}
}

func TestUpsertInsertsAndCounts(t *testing.T) {
	c := newTestCollection(t)

	inserted, err := c.Upsert([]domain.Chunk{
		testChunk("a1_0", "breaking news about elections"),
		testChunk("a2_0", "sports results from the weekend"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 2 {
		t.Errorf("expected 2 inserted, got %d", inserted)
	}

	count, err := c.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestUpsertSkipsExisting(t *testing.T) {
	c := newTestCollection(t)

	chunks := []domain.Chunk{testChunk("a1_0", "first version of the text")}
	if _, err := c.Upsert(chunks); err != nil {
		t.Fatal(err)
	}

	inserted, err := c.Upsert([]domain.Chunk{testChunk("a1_0", "a different text, same id")})
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 0 {
		t.Errorf("expected 0 inserted for duplicate id, got %d", inserted)
	}

	// The original entry must survive untouched.
	results, err := c.Query("first version", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Text != "first version of the text" {
		t.Errorf("duplicate upsert overwrote the entry: %+v", results)
	}
}

func TestQueryEmptyCollection(t *testing.T) {
	c := newTestCollection(t)

	results, err := c.Query("anything", 5)
	if err != nil {
		t.Fatalf("query on empty collection should not fail: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestQueryCapsAtAvailable(t *testing.T) {
	c := newTestCollection(t)

	var chunks []domain.Chunk
	for i := 0; i < 3; i++ {
		chunks = append(chunks, testChunk(fmt.Sprintf("a%d_0", i), fmt.Sprintf("article body %d", i)))
	}
	if _, err := c.Upsert(chunks); err != nil {
		t.Fatal(err)
	}

	results, err := c.Query("article body", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results for k=5 over 3 entries, got %d", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not ordered by descending score: %f after %f", results[i].Score, results[i-1].Score)
		}
	}
}

func TestQueryRanksBySimilarity(t *testing.T) {
	c := newTestCollection(t)

	_, err := c.Upsert([]domain.Chunk{
		testChunk("a1_0", "the central bank raised interest rates again"),
		testChunk("a2_0", "zebra migration patterns in the serengeti"),
	})
	if err != nil {
		t.Fatal(err)
	}

	results, err := c.Query("the central bank raised interest rates again", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Metadata.ArticleID != "a1" {
		t.Errorf("expected exact-match chunk first, got %s", results[0].Metadata.ArticleID)
	}
}

func TestClearResetsCollection(t *testing.T) {
	c := newTestCollection(t)

	if _, err := c.Upsert([]domain.Chunk{testChunk("a1_0", "some text")}); err != nil {
		t.Fatal(err)
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}

	count, err := c.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected count 0 after clear, got %d", count)
	}

	// The collection must come back fresh on the next write.
	inserted, err := c.Upsert([]domain.Chunk{testChunk("a1_0", "some text")})
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 1 {
		t.Errorf("expected re-insert after clear, got %d", inserted)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "news.db")
	embedder := embedding.NewMockEmbedder(16)

	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCollection(db, "news_articles", embedder)
	if _, err := c.Upsert([]domain.Chunk{testChunk("a1_0", "persisted text")}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	reopened := NewCollection(db, "news_articles", embedder)
	count, err := reopened.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry after reopen, got %d", count)
	}

	ids, err := reopened.ListIDs()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ids["a1_0"]; !ok {
		t.Error("expected a1_0 in reopened collection")
	}
}

func TestListIDs(t *testing.T) {
	c := newTestCollection(t)

	if _, err := c.Upsert([]domain.Chunk{
		testChunk("a1_0", "one"),
		testChunk("a1_1", "two"),
	}); err != nil {
		t.Fatal(err)
	}

	ids, err := c.ListIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	for _, want := range []string{"a1_0", "a1_1"} {
		if _, ok := ids[want]; !ok {
			t.Errorf("missing id %s", want)
		}
	}
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "news.db"))
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}
