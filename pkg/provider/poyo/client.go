// Package poyo implements the provider gateway against the poyo.ai tasks API.
package poyo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tg-miniapp-be/pkg/provider"
)

const ProviderName = "poyo.ai"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) Submit(ctx context.Context, job provider.Job) (string, error) {
	payload := map[string]any{
		"model":  job.Model,
		"prompt": job.Prompt,
	}
	if job.AspectRatio != "" {
		payload["aspect_ratio"] = job.AspectRatio
	}
	if job.DurationSecs > 0 {
		payload["duration"] = job.DurationSecs
	}
	if len(job.ImageURLs) > 0 {
		payload["image_url"] = job.ImageURLs[0]
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	var resp struct {
		ID     string `json:"id"`
		TaskID string `json:"task_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/tasks", body, &resp); err != nil {
		return "", err
	}

	taskID := resp.ID
	if taskID == "" {
		taskID = resp.TaskID
	}
	if taskID == "" {
		return "", fmt.Errorf("empty task id in create response")
	}
	return taskID, nil
}

func (c *Client) Poll(ctx context.Context, taskID string) (provider.Status, error) {
	var resp struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		ResultURL string `json:"result_url"`
		Output    struct {
			URL string `json:"url"`
		} `json:"output"`
		Error string `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/tasks/"+taskID, nil, &resp); err != nil {
		return provider.Status{}, err
	}

	switch resp.Status {
	case "completed", "done", "succeeded":
		resultURL := resp.ResultURL
		if resultURL == "" {
			resultURL = resp.Output.URL
		}
		if resultURL == "" {
			return provider.Status{}, fmt.Errorf("completed task %s has no result url", taskID)
		}
		return provider.Status{State: provider.StateDone, ResultURLs: []string{resultURL}}, nil

	case "failed", "error", "canceled":
		reason := resp.Error
		if reason == "" {
			reason = "task " + resp.Status
		}
		return provider.Status{State: provider.StateFailed, FailReason: reason}, nil

	case "queued", "pending", "processing", "running":
		return provider.Status{State: provider.StateRunning}, nil

	default:
		return provider.Status{}, fmt.Errorf("unknown task status: %s", resp.Status)
	}
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("poyo request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("poyo error: status=%d body=%s", resp.StatusCode, truncateBody(rawBody))
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("decode response: %w (body=%s)", err, truncateBody(rawBody))
	}
	return nil
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
