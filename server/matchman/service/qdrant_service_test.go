package service

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func newQdrantForTest(t *testing.T, handler http.HandlerFunc) *QdrantService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewQdrantService(server.URL, "memory", &fakeEmbedder{})
}

func TestQdrantEnsureCollectionCreatesWhenMissing(t *testing.T) {
	var createdPayload map[string]any
	svc := newQdrantForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/memory" {
			t.Errorf("path = %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			createdPayload = decodeBody(t, r)
			w.WriteHeader(http.StatusOK)
		}
	})

	if err := svc.EnsureCollection(context.Background()); err != nil {
		t.Fatal(err)
	}
	vectors, _ := createdPayload["vectors"].(map[string]any)
	if vectors["distance"] != "Cosine" {
		t.Errorf("create payload = %v", createdPayload)
	}
}

func TestQdrantAdd(t *testing.T) {
	var gotBody map[string]any
	svc := newQdrantForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/memory/points" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotBody = decodeBody(t, r)
		w.WriteHeader(http.StatusOK)
	})

	if err := svc.Add(context.Background(), "hello", "u1"); err != nil {
		t.Fatal(err)
	}

	points, _ := gotBody["points"].([]any)
	if len(points) != 1 {
		t.Fatalf("points = %v", gotBody["points"])
	}
	point, _ := points[0].(map[string]any)
	pointID, _ := point["id"].(string)
	if _, err := uuid.Parse(pointID); err != nil {
		t.Errorf("point id %q is not a uuid", pointID)
	}
	payload, _ := point["payload"].(map[string]any)
	if payload["user_id"] != "u1" || payload["text"] != "hello" {
		t.Errorf("payload = %v", payload)
	}
	messageID, _ := payload["message_id"].(string)
	if !strings.HasPrefix(messageID, "user_message_u1_") {
		t.Errorf("message_id = %q", messageID)
	}
}

func TestQdrantSearchFilters(t *testing.T) {
	var gotBody map[string]any
	svc := newQdrantForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/memory/points/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotBody = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{{
				"score": 0.9,
				"payload": map[string]any{
					"message_id": "user_message_bob_x",
					"user_id":    "bob",
					"text":       "hi there",
				},
			}},
		})
	})

	matches, err := svc.SearchByUser(context.Background(), "probe", "u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	filter, _ := gotBody["filter"].(map[string]any)
	if _, ok := filter["must"]; !ok {
		t.Errorf("filter = %v, want must clause", filter)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %v", matches)
	}
	if math.Abs(matches[0].Distance-0.1) > 1e-9 {
		t.Errorf("distance = %v, want 0.1", matches[0].Distance)
	}
	if matches[0].UserID != "bob" || matches[0].Text != "hi there" {
		t.Errorf("match = %+v", matches[0])
	}

	if _, err := svc.SearchExcludingUser(context.Background(), "probe", "u1", 10); err != nil {
		t.Fatal(err)
	}
	filter, _ = gotBody["filter"].(map[string]any)
	if _, ok := filter["must_not"]; !ok {
		t.Errorf("filter = %v, want must_not clause", filter)
	}
}

func TestQdrantGetByUser(t *testing.T) {
	svc := newQdrantForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/memory/points/scroll" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"points": []map[string]any{
					{"payload": map[string]any{"message_id": "m1", "text": "first"}},
					{"payload": map[string]any{"message_id": "m2", "text": "second"}},
				},
			},
		})
	})

	messages, err := svc.GetByUser(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %v", messages)
	}
	if messages[1].ID != "m2" || messages[1].Text != "second" || messages[1].UserID != "u1" {
		t.Errorf("second message = %+v", messages[1])
	}
}
