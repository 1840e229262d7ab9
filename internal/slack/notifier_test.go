package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifierPostsReplaceFlag(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	if err := n.Notify(context.Background(), "🔍 Analyzing *octocat/demo*...", true); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if got["text"] != "🔍 Analyzing *octocat/demo*..." {
		t.Errorf("text = %v", got["text"])
	}
	if got["replace_original"] != true {
		t.Errorf("replace_original = %v", got["replace_original"])
	}
}

func TestNotifierSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	if err := n.Notify(context.Background(), "hello", false); err == nil {
		t.Errorf("want an error for a non-2xx response")
	}
}
