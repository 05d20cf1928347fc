// Package kie implements the provider gateway against the kie.ai jobs API.
package kie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tg-miniapp-be/pkg/provider"
)

const ProviderName = "kie.ai"

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

// envelope is the common kie.ai response wrapper. Code is the API-level
// result; HTTP 200 with a non-200 code is still a protocol failure.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (c *Client) Submit(ctx context.Context, job provider.Job) (string, error) {
	input := map[string]any{}
	if job.Prompt != "" {
		input["prompt"] = job.Prompt
	}
	if job.AspectRatio != "" {
		input["aspect_ratio"] = job.AspectRatio
	}
	if job.DurationSecs > 0 {
		input["duration"] = job.DurationSecs
	}
	if job.OutputFormat != "" {
		input["output_format"] = strings.ToLower(job.OutputFormat)
	}

	// Motion control takes the driving video alongside the character image
	// under different keys than the plain image-conditioned models.
	if job.Mode == "motion-control" {
		input["input_urls"] = job.ImageURLs
		input["video_urls"] = job.VideoURLs
		input["mode"] = job.Mode
		if job.CharacterOrientation != "" {
			input["character_orientation"] = job.CharacterOrientation
		}
	} else if len(job.ImageURLs) > 0 {
		input["image_urls"] = job.ImageURLs
	}

	payload := map[string]any{
		"model": job.Model,
		"input": input,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	var resp struct {
		envelope
		Data struct {
			TaskID string `json:"taskId"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/jobs/createTask", body, &resp); err != nil {
		return "", err
	}

	if resp.Code != 200 {
		return "", fmt.Errorf("create task failed: code=%d msg=%s", resp.Code, resp.Msg)
	}
	if resp.Data.TaskID == "" {
		return "", fmt.Errorf("empty taskId in create task response")
	}

	return resp.Data.TaskID, nil
}

func (c *Client) Poll(ctx context.Context, taskID string) (provider.Status, error) {
	endpoint := "/api/v1/jobs/recordInfo?" + url.Values{"taskId": {taskID}}.Encode()

	var resp struct {
		envelope
		Data struct {
			TaskID     string `json:"taskId"`
			State      string `json:"state"`
			ResultJSON string `json:"resultJson"`
			FailCode   string `json:"failCode"`
			FailMsg    string `json:"failMsg"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return provider.Status{}, err
	}

	if resp.Code != 200 {
		return provider.Status{}, fmt.Errorf("record info failed: code=%d msg=%s", resp.Code, resp.Msg)
	}

	switch resp.Data.State {
	case "success":
		if resp.Data.ResultJSON == "" {
			return provider.Status{}, fmt.Errorf("empty resultJson in success response")
		}
		var result struct {
			ResultURLs []string `json:"resultUrls"`
		}
		if err := json.Unmarshal([]byte(resp.Data.ResultJSON), &result); err != nil {
			return provider.Status{}, fmt.Errorf("parse resultJson: %w", err)
		}
		if len(result.ResultURLs) == 0 {
			return provider.Status{}, fmt.Errorf("no resultUrls in result")
		}
		return provider.Status{State: provider.StateDone, ResultURLs: result.ResultURLs}, nil

	case "fail":
		reason := resp.Data.FailMsg
		if reason == "" {
			reason = "unknown error"
		}
		if resp.Data.FailCode != "" {
			reason = fmt.Sprintf("%s (code: %s)", reason, resp.Data.FailCode)
		}
		return provider.Status{State: provider.StateFailed, FailReason: reason}, nil

	case "waiting", "queuing", "queueing", "generating", "processing":
		return provider.Status{State: provider.StateRunning}, nil

	default:
		return provider.Status{}, fmt.Errorf("unknown task state: %s", resp.Data.State)
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
		return fmt.Errorf("kie request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("kie error: status=%d body=%s", resp.StatusCode, truncateBody(rawBody))
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
