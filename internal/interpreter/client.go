package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voicecmd/internal/command"
	"voicecmd/internal/domain"
)

// Client talks to a running interpreter-server.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Result is a remote classification.
type Result struct {
	RequestID string
	Command   command.Command
	Message   string
}

func (c *Client) Classify(ctx context.Context, text string, confidence float64) (Result, error) {
	var out domain.ClassifyResponse
	if err := c.do(ctx, http.MethodPost, "/v1/commands/classify", domain.ClassifyRequest{Text: text, Confidence: confidence}, &out); err != nil {
		return Result{}, err
	}
	cmd, err := command.Decode(out.Command)
	if err != nil {
		return Result{}, err
	}
	return Result{RequestID: out.RequestID, Command: cmd, Message: out.Message}, nil
}

func (c *Client) Message(ctx context.Context, cmd command.Command) (string, error) {
	raw, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	var out domain.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/v1/commands/message", domain.MessageRequest{Command: raw}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) Help(ctx context.Context) (string, error) {
	var out domain.HelpResponse
	if err := c.do(ctx, http.MethodGet, "/v1/commands/help", nil, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("interpreter service is not configured")
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("interpreter status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return json.Unmarshal(respBody, out)
}
