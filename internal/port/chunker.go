package port

// Chunker splits text into bounded, overlapping pieces.
type Chunker interface {
	Split(text string) []string
}
