package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCohereEmbed(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embed" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotBody = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{0.1, 0.2}, {0.3, 0.4}},
		})
	}))
	defer server.Close()

	svc := NewCohereService(server.URL, "secret-key", "embed-english-v3.0")
	vectors, err := svc.Embed(context.Background(), []string{"one", "two"}, "search_document")
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer secret-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["model"] != "embed-english-v3.0" || gotBody["input_type"] != "search_document" {
		t.Errorf("request body = %v", gotBody)
	}
	if len(vectors) != 2 || len(vectors[0]) != 2 {
		t.Fatalf("vectors = %v", vectors)
	}
	if vectors[1][0] != 0.3 {
		t.Errorf("vectors[1] = %v", vectors[1])
	}
}

func TestCohereEmbedCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{0.1}},
		})
	}))
	defer server.Close()

	svc := NewCohereService(server.URL, "k", "")
	if _, err := svc.Embed(context.Background(), []string{"one", "two"}, "search_document"); err == nil {
		t.Fatal("expected error on count mismatch")
	}
}

func TestCohereEmbedAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "invalid api token"})
	}))
	defer server.Close()

	svc := NewCohereService(server.URL, "", "")
	if _, err := svc.Embed(context.Background(), []string{"one"}, "search_document"); err == nil {
		t.Fatal("expected error on 401")
	}
}
