package jobs

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const recommendBody = `{"recommendations":[
 {"job":{"id":"j-2","title":"Go Developer","company":"Acme","requirements":["Go","SQL"]},"score":"0.91","reason":"Strong Go background","index":0},
 {"job":{"id":"j-1","title":"SRE","company":"Initech"},"score":0.5,"reason":"On-call experience","index":1}
]}`

func TestClientRecommendKeepsOrder(t *testing.T) {
	var gotBody map[string]string
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(recommendBody))
	}))
	defer srv.Close()

	client := NewClient(nil, srv.URL+"/")
	jobs, err := client.Recommend(context.Background(), "user-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != RecommendPath {
		t.Fatalf("expected path %s, got %s", RecommendPath, gotPath)
	}
	if gotBody["user_id"] != "user-7" {
		t.Fatalf("expected user_id to be forwarded, got %v", gotBody)
	}
	if ids := strings.Join(jobs.IDs(), ","); ids != "j-2,j-1" {
		t.Fatalf("expected provider order, got %s", ids)
	}

	first := jobs.Items[0]
	if !first.Recommended || first.MatchScore != 0.91 || first.RecommendationReason != "Strong Go background" {
		t.Fatalf("unexpected annotation: %+v", first)
	}
	if len(first.Requirements) != 2 {
		t.Fatalf("expected requirements to be decoded, got %v", first.Requirements)
	}
	if first.Synthetic {
		t.Fatalf("live jobs must not be synthetic")
	}
}

func TestClientMatchCVGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != MatchCVPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(recommendBody))
		_ = gz.Close()
	}))
	defer srv.Close()

	jobs, err := NewClient(nil, srv.URL).MatchCV(context.Background(), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}
}

func TestClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(nil, srv.URL).Recommend(context.Background(), "u")
	if err == nil || !strings.Contains(err.Error(), "bad status") {
		t.Fatalf("expected bad status error, got %v", err)
	}
}

func TestClientNotConfigured(t *testing.T) {
	_, err := NewClient(nil, "  ").Recommend(context.Background(), "u")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClientMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"recommendations":`))
	}))
	defer srv.Close()

	if _, err := NewClient(nil, srv.URL).Recommend(context.Background(), "u"); err == nil {
		t.Fatalf("expected decode error")
	}
}
