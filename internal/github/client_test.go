package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL("test-token", srv.URL)
}

func TestListUserRepos(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/repos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sort") != "updated" || q.Get("per_page") != "30" {
			t.Errorf("query = %v", q)
		}
		if q.Get("affiliation") != "owner,collaborator,organization_member" {
			t.Errorf("affiliation = %q", q.Get("affiliation"))
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("auth header = %q", got)
		}
		fmt.Fprint(w, `[{"full_name":"octocat/demo","private":false},{"full_name":"org/secret","private":true}]`)
	})

	repos, err := c.ListUserRepos(context.Background())
	if err != nil {
		t.Fatalf("ListUserRepos: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("repos = %+v", repos)
	}
	if repos[0].FullName != "octocat/demo" || repos[0].Private {
		t.Errorf("repos[0] = %+v", repos[0])
	}
	if !repos[1].Private {
		t.Errorf("repos[1] should be private")
	}
}

func TestRateLimitExhaustion(t *testing.T) {
	const reset = 1700000000
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprint(reset))
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.ListUserRepos(context.Background())
	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want RateLimitedError", err)
	}
	if !rl.Reset.Equal(time.Unix(reset, 0)) {
		t.Errorf("reset = %v, want %v", rl.Reset, time.Unix(reset, 0))
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header map[string]string
		check  func(error) bool
	}{
		{
			name:   "401 is an auth error",
			status: http.StatusUnauthorized,
			check:  func(err error) bool { var e *AuthError; return errors.As(err, &e) },
		},
		{
			name:   "403 with quota left is an auth error",
			status: http.StatusForbidden,
			header: map[string]string{"X-RateLimit-Remaining": "42"},
			check:  func(err error) bool { var e *AuthError; return errors.As(err, &e) },
		},
		{
			name:   "404 is not-found",
			status: http.StatusNotFound,
			check:  func(err error) bool { var e *NotFoundError; return errors.As(err, &e) },
		},
		{
			name:   "500 is upstream",
			status: http.StatusInternalServerError,
			check:  func(err error) bool { var e *UpstreamError; return errors.As(err, &e) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			})
			_, err := c.ListCommits(context.Background(), "octocat/demo", CommitQuery{PerPage: 10})
			if err == nil || !tt.check(err) {
				t.Errorf("err = %v, wrong type", err)
			}
		})
	}
}

func TestListCommitsPagination(t *testing.T) {
	pages := map[string]int{"1": 2, "2": 2, "3": 1} // third page is short
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		if q.Get("author") != "octocat" {
			t.Errorf("author = %q", q.Get("author"))
		}
		n := pages[q.Get("page")]
		items := make([]string, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, fmt.Sprintf(
				`{"sha":"p%s-%d","url":"u","commit":{"message":"msg","author":{"date":"2025-06-01T12:00:00Z"}}}`,
				q.Get("page"), i))
		}
		fmt.Fprint(w, "["+strings.Join(items, ",")+"]")
	})

	commits, err := c.ListCommits(context.Background(), "octocat/demo", CommitQuery{
		Author:   "octocat",
		PerPage:  2,
		MaxPages: 5,
	})
	if err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	if len(commits) != 5 {
		t.Errorf("commits = %d, want 5", len(commits))
	}
	if calls != 3 {
		t.Errorf("calls = %d, want pagination to stop at the short page", calls)
	}
	if commits[0].Message != "msg" || commits[0].AuthoredAt.IsZero() {
		t.Errorf("commits[0] = %+v", commits[0])
	}
}

func TestCommitFiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/demo/commits/abc123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"files":[{"filename":"main.go"},{"filename":"docs/readme.md"}]}`)
	})

	paths, err := c.CommitFiles(context.Background(), "octocat/demo", "abc123")
	if err != nil {
		t.Fatalf("CommitFiles: %v", err)
	}
	if len(paths) != 2 || paths[0] != "main.go" {
		t.Errorf("paths = %v", paths)
	}
}

func TestGetReadme(t *testing.T) {
	t.Run("decodes base64 with embedded newlines", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("# Hello World"))
		wrapped := encoded[:8] + "\n" + encoded[8:]
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"content":%q,"encoding":"base64"}`, wrapped)
		})

		got, err := c.GetReadme(context.Background(), "octocat/demo")
		if err != nil {
			t.Fatalf("GetReadme: %v", err)
		}
		if got != "# Hello World" {
			t.Errorf("readme = %q", got)
		}
	})

	t.Run("missing README is empty, not an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		got, err := c.GetReadme(context.Background(), "octocat/demo")
		if err != nil {
			t.Fatalf("404 must not be an error, got %v", err)
		}
		if got != "" {
			t.Errorf("readme = %q, want empty", got)
		}
	})

	t.Run("5xx is still an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.GetReadme(context.Background(), "octocat/demo")
		var ue *UpstreamError
		if !errors.As(err, &ue) {
			t.Errorf("err = %v, want UpstreamError", err)
		}
	})
}

func TestDecodeContent(t *testing.T) {
	t.Run("malformed base64 degrades to empty", func(t *testing.T) {
		if got := decodeContent("!!!not-base64!!!", "base64"); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("invalid UTF-8 sequences are dropped", func(t *testing.T) {
		raw := append([]byte("héllo"), 0xff, 0xfe)
		encoded := base64.StdEncoding.EncodeToString(raw)
		got := decodeContent(encoded, "base64")
		if got != "héllo" {
			t.Errorf("got %q, want héllo", got)
		}
	})

	t.Run("unknown encoding passes text through", func(t *testing.T) {
		if got := decodeContent("plain text", "utf-8"); got != "plain text" {
			t.Errorf("got %q", got)
		}
	})
}
