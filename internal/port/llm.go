package port

// LLM represents a language model for summary generation.
type LLM interface {
	// Generate produces a summary for the query grounded in the retrieved
	// context. Failures are domain.ErrGeneratorUnavailable when the service
	// cannot be reached and domain.ErrGeneration otherwise.
	Generate(context, query string) (string, error)

	// Available probes the service before a generate call. The message
	// explains the state either way.
	Available() (bool, string)

	// ModelName returns the name of the model.
	ModelName() string
}
