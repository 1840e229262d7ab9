package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// GetReadme returns the repository's README decoded to plain text. A missing
// README is not an error: it comes back as the empty string so one
// README-less repository never fails a pipeline run.
func (c *Client) GetReadme(ctx context.Context, fullName string) (string, error) {
	return c.fetchContent(ctx, fmt.Sprintf("%s/repos/%s/readme", c.baseURL, fullName))
}

// GetContent returns the decoded content of one file. Like GetReadme, an
// absent path yields ("", nil) rather than an error.
func (c *Client) GetContent(ctx context.Context, fullName, path string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, fullName, escapePath(path))
	return c.fetchContent(ctx, u)
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func (c *Client) fetchContent(ctx context.Context, u string) (string, error) {
	var body struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := c.get(ctx, u, &body); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return "", nil
		}
		return "", err
	}
	return decodeContent(body.Content, body.Encoding), nil
}

// decodeContent turns the transport encoding into plain UTF-8 text.
// GitHub serves file contents base64-encoded with embedded newlines.
// Decoding is best-effort: a malformed payload degrades to empty text and
// invalid UTF-8 sequences are dropped, never failing the pipeline over one
// bad file.
func decodeContent(content, encoding string) string {
	if encoding != "" && encoding != "base64" {
		return strings.ToValidUTF8(content, "")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(string(raw), "")
}
