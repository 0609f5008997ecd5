package store

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.etcd.io/bbolt"
	"newsrag/internal/domain"
	"newsrag/internal/port"
)

// Collection is a named, persistent vector index backed by a bbolt bucket.
// Entries are immutable once written: upsert skips IDs that already exist and
// only a full Clear removes data. A full in-memory mirror of the bucket makes
// brute-force similarity search cheap at news-corpus scale; can be replaced
// with HNSW for larger indexes.
//
// Writers (Upsert, Clear) serialize on the mutex; Query takes the read lock,
// so a query concurrent with a write sees either the old or the new state.
type Collection struct {
	db       *bbolt.DB
	name     string
	embedder port.Embedder

	mu      sync.RWMutex
	entries map[string]*entry
	loaded  bool
}

type entry struct {
	seq      uint64
	vector   []float32
	text     string
	metadata domain.ChunkMetadata
}

type storedEntry struct {
	Seq      uint64               `json:"seq"`
	Vector   []float32            `json:"v"`
	Text     string               `json:"t"`
	Metadata domain.ChunkMetadata `json:"m"`
}

// Open opens (or creates) the bbolt database at path.
func Open(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database %s: %v", domain.ErrIndexUnavailable, path, err)
	}
	return db, nil
}

// NewCollection binds a named collection in db to an embedder. The bucket is
// created lazily on first write; existing entries are mirrored into memory on
// first use.
func NewCollection(db *bbolt.DB, name string, embedder port.Embedder) *Collection {
	return &Collection{
		db:       db,
		name:     name,
		embedder: embedder,
		entries:  make(map[string]*entry),
	}
}

// load mirrors the bucket into memory. Callers hold the write lock.
func (c *Collection) load() error {
	if c.loaded {
		return nil
	}

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.name))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var stored storedEntry
			if err := json.Unmarshal(v, &stored); err != nil {
				return nil // skip corrupted entries
			}
			c.entries[string(k)] = &entry{
				seq:      stored.Seq,
				vector:   stored.Vector,
				text:     stored.Text,
				metadata: stored.Metadata,
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("%w: failed to read collection %s: %v", domain.ErrIndexUnavailable, c.name, err)
	}

	c.loaded = true
	return nil
}

// Upsert writes the chunks whose IDs are not yet present, embedding any chunk
// without a vector in a single batch. Returns the number of chunks actually
// inserted. Existing IDs are skipped rather than overwritten so re-indexing
// never re-embeds.
func (c *Collection) Upsert(chunks []domain.Chunk) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return 0, err
	}

	fresh := make([]domain.Chunk, 0, len(chunks))
	for _, ch := range chunks {
		if _, exists := c.entries[ch.ID]; exists {
			continue
		}
		fresh = append(fresh, ch)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	// Embed everything still missing a vector in one batch.
	var pendingTexts []string
	var pendingIdx []int
	for i, ch := range fresh {
		if ch.Vector == nil {
			pendingTexts = append(pendingTexts, ch.Text)
			pendingIdx = append(pendingIdx, i)
		}
	}
	if len(pendingTexts) > 0 {
		vectors, err := c.embedder.Embed(pendingTexts)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunks: %w", err)
		}
		for j, i := range pendingIdx {
			fresh[i].Vector = vectors[j]
		}
	}

	err := c.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(c.name))
		if err != nil {
			return err
		}
		for i := range fresh {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			stored := storedEntry{
				Seq:      seq,
				Vector:   fresh[i].Vector,
				Text:     fresh[i].Text,
				Metadata: fresh[i].Metadata,
			}
			data, err := json.Marshal(stored)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(fresh[i].ID), data); err != nil {
				return err
			}
			c.entries[fresh[i].ID] = &entry{
				seq:      seq,
				vector:   fresh[i].Vector,
				text:     fresh[i].Text,
				metadata: fresh[i].Metadata,
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to write collection %s: %v", domain.ErrIndexUnavailable, c.name, err)
	}

	return len(fresh), nil
}

// Query embeds the query text and returns the k nearest entries, highest
// similarity first. Ties resolve by insertion order. An empty or missing
// collection yields an empty result.
func (c *Collection) Query(text string, k int) ([]domain.ScoredChunk, error) {
	c.mu.Lock()
	if err := c.load(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	if k <= 0 {
		return nil, nil
	}

	vectors, err := c.embedder.Embed([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	queryVec := vectors[0]

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.entries) == 0 {
		return nil, nil
	}

	type scored struct {
		id    string
		seq   uint64
		score float64
	}
	scores := make([]scored, 0, len(c.entries))
	for id, e := range c.entries {
		scores = append(scores, scored{
			id:    id,
			seq:   e.seq,
			score: cosineSimilarity(queryVec, e.vector),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].seq < scores[j].seq
	})

	if k > len(scores) {
		k = len(scores)
	}

	results := make([]domain.ScoredChunk, k)
	for i := 0; i < k; i++ {
		e := c.entries[scores[i].id]
		results[i] = domain.ScoredChunk{
			Text:     e.text,
			Metadata: e.metadata,
			Score:    scores[i].score,
		}
	}
	return results, nil
}

// ListIDs returns the set of chunk IDs currently stored, as one bulk read.
func (c *Collection) ListIDs() (map[string]struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(c.entries))
	for id := range c.entries {
		ids[id] = struct{}{}
	}
	return ids, nil
}

// Count returns the number of entries in the collection.
func (c *Collection) Count() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return 0, err
	}
	return len(c.entries), nil
}

// Clear deletes the whole collection and invalidates the in-memory mirror.
// The next operation recreates a fresh, empty collection.
func (c *Collection) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(c.name)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(c.name))
	})
	if err != nil {
		return fmt.Errorf("%w: failed to clear collection %s: %v", domain.ErrIndexUnavailable, c.name, err)
	}

	c.entries = make(map[string]*entry)
	c.loaded = false
	return nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
