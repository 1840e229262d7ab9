// Package slack talks back to Slack through webhook response URLs: plain
// progress notifications and the repo-selection block payload.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier posts status updates to one webhook response_url. Slack keeps a
// response_url valid for 30 minutes, which comfortably covers a pipeline run.
type Notifier struct {
	http        *http.Client
	responseURL string
}

// NewNotifier builds a Notifier bound to the given response_url.
func NewNotifier(responseURL string) *Notifier {
	return &Notifier{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		responseURL: responseURL,
	}
}

// Notify sends a text update. replace sets Slack's replace_original flag so
// the update supersedes the previously posted message.
func (n *Notifier) Notify(ctx context.Context, text string, replace bool) error {
	return n.Post(ctx, map[string]any{
		"text":             text,
		"replace_original": replace,
	})
}

// Post sends an arbitrary JSON payload (block kit messages included) to the
// response_url. Slack's reply body carries nothing we consume.
func (n *Notifier) Post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("slack: marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.responseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("slack: posting to response_url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack: response_url returned status %d", resp.StatusCode)
	}
	return nil
}
