package domain

import "errors"

var (
	// ErrModelUnavailable means the embedding backend cannot be reached or
	// cannot load the configured model. Fatal for the operation; there is no
	// degraded mode without embeddings.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrIndexUnavailable means the backing storage cannot be opened or
	// written. Fatal for the operation, the caller may retry later.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrGeneratorUnavailable means the text generator service is not
	// reachable. The retrieval pipeline degrades to returning raw context.
	ErrGeneratorUnavailable = errors.New("generator unavailable")

	// ErrGeneration means the generator was reachable but the call failed.
	ErrGeneration = errors.New("generation failed")
)
