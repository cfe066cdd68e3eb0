// Package todoist creates outreach tasks through the Todoist REST API.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.todoist.com/api/v1/tasks"

type Client struct {
	HTTP    *http.Client
	BaseURL string
	token   string
}

func NewClient(token string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 20 * time.Second},
		BaseURL: defaultBaseURL,
		token:   token,
	}
}

type taskRequest struct {
	Content     string `json:"content"`
	Description string `json:"description"`
}

// CreateTask posts one task. Any transport error or non-2xx status is a
// failure; the caller decides what that means for its state.
func (c *Client) CreateTask(ctx context.Context, title, description string) error {
	body, err := json.Marshal(taskRequest{Content: title, Description: description})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("todoist: status %d", resp.StatusCode)
	}
	return nil
}
