// Package advisory wraps the external AI advisory service: an asynchronous
// job API consulted for a risk opinion on a lunch order. The opinion is
// never authoritative; callers always re-check it against deterministic
// policy rules and must treat every error from this package as "no opinion
// available for this run".
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Failure modes, all absorbed by the risk assessor's fallback path. Callers
// distinguish them only for logging and metrics.
var (
	// ErrUnavailable: missing configuration or credential; no network
	// attempt was made.
	ErrUnavailable = errors.New("advisory service unavailable")
	// ErrFailed: the run reached a failed or cancelled state, or any
	// submit/poll/retrieve step errored unexpectedly.
	ErrFailed = errors.New("advisory run failed")
	// ErrTimeout: the poll ceiling was reached while the run was still
	// queued or running.
	ErrTimeout = errors.New("advisory run timed out")
	// ErrEmptyResponse: the run succeeded but produced no assistant text.
	ErrEmptyResponse = errors.New("advisory run returned no response")
)

const (
	defaultPollInterval    = time.Second
	defaultMaxPollAttempts = 60
)

// Opinion is the successful outcome of one advisory consultation. ThreadID
// and RunID surface to callers so the response can prove the advisory path
// was actually used.
type Opinion struct {
	Text     string
	ThreadID string
	RunID    string
}

// Client talks to the advisory service's thread/run API.
type Client struct {
	baseURL         string
	agentID         string
	tokens          TokenSource
	httpClient      *http.Client
	logger          *slog.Logger
	pollInterval    time.Duration
	maxPollAttempts int
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPollInterval overrides the fixed wait between run-status polls.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithMaxPollAttempts overrides the poll ceiling.
func WithMaxPollAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxPollAttempts = attempts
		}
	}
}

// New constructs an advisory client. baseURL or agentID being empty is
// allowed and yields a permanently unavailable client.
func New(baseURL, agentID string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:         baseURL,
		agentID:         agentID,
		tokens:          tokens,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		pollInterval:    defaultPollInterval,
		maxPollAttempts: defaultMaxPollAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client has enough configuration to attempt
// a consultation.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != "" && c.agentID != "" && c.tokens != nil
}

type threadResponse struct {
	ID string `json:"id"`
}

type runResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type messageList struct {
	Data []message `json:"data"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Consult submits the prompt as a conversation turn, waits for the run to
// finish, and returns the assistant's reply. It blocks for at most
// maxPollAttempts * pollInterval, or less if ctx is cancelled.
func (c *Client) Consult(ctx context.Context, prompt string) (*Opinion, error) {
	if !c.Configured() {
		return nil, ErrUnavailable
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log(ctx, "advisory credential acquisition failed", "error", err)
		return nil, ErrUnavailable
	}

	var thread threadResponse
	if err := c.doJSON(ctx, token, http.MethodPost, "/threads", map[string]any{}, &thread); err != nil {
		c.log(ctx, "advisory thread creation failed", "error", err)
		return nil, fmt.Errorf("%w: create thread: %v", ErrFailed, err)
	}

	msg := map[string]any{"role": "user", "content": prompt}
	if err := c.doJSON(ctx, token, http.MethodPost, "/threads/"+thread.ID+"/messages", msg, nil); err != nil {
		c.log(ctx, "advisory message submission failed", "thread_id", thread.ID, "error", err)
		return nil, fmt.Errorf("%w: submit message: %v", ErrFailed, err)
	}

	var run runResponse
	if err := c.doJSON(ctx, token, http.MethodPost, "/threads/"+thread.ID+"/runs", map[string]any{"agent_id": c.agentID}, &run); err != nil {
		c.log(ctx, "advisory run creation failed", "thread_id", thread.ID, "error", err)
		return nil, fmt.Errorf("%w: create run: %v", ErrFailed, err)
	}

	status, err := c.pollRun(ctx, token, thread.ID, run.ID, run.Status)
	if err != nil {
		return nil, err
	}
	if status != "succeeded" {
		c.log(ctx, "advisory run ended without success", "thread_id", thread.ID, "run_id", run.ID, "status", status)
		return nil, fmt.Errorf("%w: terminal status %q", ErrFailed, status)
	}

	text, err := c.latestAssistantText(ctx, token, thread.ID)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &Opinion{Text: text, ThreadID: thread.ID, RunID: run.ID}, nil
}

// pollRun waits for a terminal run status, checking at the fixed interval up
// to the attempt ceiling. The wait is context-aware so abandoned requests
// release their goroutine promptly instead of running out the ceiling.
func (c *Client) pollRun(ctx context.Context, token, threadID, runID, status string) (string, error) {
	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		switch status {
		case "succeeded", "failed", "cancelled":
			return status, nil
		}

		timer := time.NewTimer(c.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: %v", ErrFailed, ctx.Err())
		case <-timer.C:
		}

		var run runResponse
		if err := c.doJSON(ctx, token, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &run); err != nil {
			c.log(ctx, "advisory run poll failed", "thread_id", threadID, "run_id", runID, "error", err)
			return "", fmt.Errorf("%w: poll run: %v", ErrFailed, err)
		}
		status = run.Status
	}

	return "", ErrTimeout
}

// latestAssistantText lists the thread's messages (newest first) and returns
// the first assistant reply.
func (c *Client) latestAssistantText(ctx context.Context, token, threadID string) (string, error) {
	var list messageList
	if err := c.doJSON(ctx, token, http.MethodGet, "/threads/"+threadID+"/messages", nil, &list); err != nil {
		c.log(ctx, "advisory message listing failed", "thread_id", threadID, "error", err)
		return "", fmt.Errorf("%w: list messages: %v", ErrFailed, err)
	}

	for _, m := range list.Data {
		if m.Role == "assistant" {
			return m.Content, nil
		}
	}
	return "", nil
}

func (c *Client) doJSON(ctx context.Context, token, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("advisory service returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) log(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, args...)
	}
}
