package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"newsrag/internal/domain"
)

// summaryPrompt frames the generator as a news analyst working only from the
// retrieved articles.
const summaryPrompt = `You are a helpful news analyst assistant. Your task is to provide accurate,
well-structured summaries based on the news articles provided in the context.

CONTEXT (Retrieved News Articles):
%s

USER QUESTION: %s

INSTRUCTIONS:
1. Analyze the provided news articles carefully
2. Synthesize information from multiple sources when available
3. Provide a clear, concise summary that answers the user's question
4. Mention the sources of information when relevant
5. If the context doesn't contain enough information, acknowledge this limitation
6. Use bullet points for key facts when appropriate

SUMMARY:`

// OllamaLLM generates summaries through a local Ollama server.
type OllamaLLM struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaLLM(baseURL, model string) *OllamaLLM {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &OllamaLLM{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 300 * time.Second,
		},
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate produces a summary for the query grounded in the retrieved
// context.
func (l *OllamaLLM) Generate(context, query string) (string, error) {
	reqBody := generateRequest{
		Model:  l.model,
		Prompt: fmt.Sprintf(summaryPrompt, context, query),
		Stream: false,
		// Low temperature keeps the summary factual.
		Options: map[string]any{"temperature": 0.3},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := l.client.Post(l.baseURL+"/api/generate", "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: server returned status %d", domain.ErrGeneration, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", domain.ErrGeneration, err)
	}

	return genResp.Response, nil
}

// Available probes the server and checks the configured model is pulled.
func (l *OllamaLLM) Available() (bool, string) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(l.baseURL + "/api/tags")
	if err != nil {
		return false, "Ollama is not running. Start it with: ollama serve"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "Ollama server is not responding correctly"
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, fmt.Sprintf("Error checking Ollama: %v", err)
	}

	required := baseModelName(l.model)
	for _, m := range tags.Models {
		if baseModelName(m.Name) == required {
			return true, fmt.Sprintf("Ollama ready with model: %s", l.model)
		}
	}
	return false, fmt.Sprintf("Model %q not found. Run: ollama pull %s", l.model, l.model)
}

func (l *OllamaLLM) ModelName() string {
	return l.model
}

// baseModelName strips a tag suffix such as ":latest".
func baseModelName(name string) string {
	if i := strings.Index(name, ":"); i >= 0 {
		return name[:i]
	}
	return name
}
