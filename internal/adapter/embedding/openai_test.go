package embedding

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsrag/internal/domain"
)

func TestNormalizeUnitLength(t *testing.T) {
	v := Normalize([]float32{3, 4})

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("expected unit length, got squared norm %f", sum)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})
	for i, x := range v {
		if x != 0 {
			t.Errorf("zero vector changed at %d: %f", i, x)
		}
	}
}

func TestMockEmbedderDeterministic(t *testing.T) {
	e := NewMockEmbedder(16)

	first, err := e.Embed([]string{"climate summit coverage"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Embed([]string{"climate summit coverage"})
	if err != nil {
		t.Fatal(err)
	}

	for i := range first[0] {
		if first[0][i] != second[0][i] {
			t.Fatalf("embedding differs at component %d", i)
		}
	}
}

func TestMockEmbedderNormalized(t *testing.T) {
	e := NewMockEmbedder(8)

	vecs, err := e.Embed([]string{"short", "a much longer piece of text about the news"})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vecs {
		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		if math.Abs(sum-1.0) > 1e-5 {
			t.Errorf("vector %d not unit length: squared norm %f", i, sum)
		}
	}
}

func TestOpenAIEmbedderNormalizesResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		resp := embeddingResponse{
			Data: []embeddingData{{Embedding: []float32{3, 0, 4}, Index: 0}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder("all-minilm", srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	vecs, err := e.Embed([]string{"hello"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(vecs))
	}

	var sum float64
	for _, x := range vecs[0] {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("response vector not normalized: squared norm %f", sum)
	}
}

func TestOpenAIEmbedderUnreachable(t *testing.T) {
	e, err := NewOllamaEmbedder("all-minilm", "http://127.0.0.1:1/v1")
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Embed([]string{"hello"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}
