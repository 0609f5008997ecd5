package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsrag/internal/domain"
)

func TestGenerateSendsPromptAndReturnsResponse(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(generateResponse{Response: "generated summary", Done: true})
	}))
	defer srv.Close()

	l := NewOllamaLLM(srv.URL, "llama3.2")
	summary, err := l.Generate("[Article 1]\nTitle: T\nContent: body", "what happened?")
	if err != nil {
		t.Fatal(err)
	}
	if summary != "generated summary" {
		t.Errorf("unexpected summary %q", summary)
	}
	if !strings.Contains(gotPrompt, "[Article 1]") || !strings.Contains(gotPrompt, "what happened?") {
		t.Error("prompt should embed both context and query")
	}
}

func TestGenerateUnreachable(t *testing.T) {
	l := NewOllamaLLM("http://127.0.0.1:1", "llama3.2")

	_, err := l.Generate("context", "query")
	if !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Errorf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := NewOllamaLLM(srv.URL, "llama3.2")
	_, err := l.Generate("context", "query")
	if !errors.Is(err, domain.ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestAvailableModelPresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"all-minilm:latest"}]}`))
	}))
	defer srv.Close()

	l := NewOllamaLLM(srv.URL, "llama3.2")
	available, status := l.Available()
	if !available {
		t.Errorf("expected available, got: %s", status)
	}
}

func TestAvailableModelMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"mistral:latest"}]}`))
	}))
	defer srv.Close()

	l := NewOllamaLLM(srv.URL, "llama3.2")
	available, status := l.Available()
	if available {
		t.Error("expected unavailable for missing model")
	}
	if !strings.Contains(status, "ollama pull") {
		t.Errorf("status should suggest pulling the model: %s", status)
	}
}

func TestAvailableServerDown(t *testing.T) {
	l := NewOllamaLLM("http://127.0.0.1:1", "llama3.2")

	available, status := l.Available()
	if available {
		t.Error("expected unavailable when server is down")
	}
	if !strings.Contains(status, "not running") {
		t.Errorf("unexpected status: %s", status)
	}
}
