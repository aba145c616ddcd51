package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL         = "https://api.vapi.ai"
	assistantPath  = "/assistant"
	userAgent      = "spigell/interview-coach"
	contentType    = "application/json"
	maxErrorBody   = 4 << 10
	defaultTimeout = 30 * time.Second
)

// Client talks to the Vapi REST API with the server-side private key.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// Assistant is the part of the provider response the service cares about.
type Assistant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateAssistant submits the configuration in a single request. It is never retried.
func (c *Client) CreateAssistant(ctx context.Context, cfg *AssistantConfig) (*Assistant, error) {
	var assistant Assistant
	if err := c.postJSON(ctx, "create assistant", c.APIURL+assistantPath, cfg.request(), &assistant); err != nil {
		return nil, err
	}

	if assistant.ID == "" {
		return nil, &ProviderError{Op: "create assistant", StatusCode: http.StatusOK, Err: errors.New("response has no assistant id")}
	}
	if assistant.Name == "" {
		assistant.Name = cfg.Name
	}

	return &assistant, nil
}

func (c *Client) postJSON(ctx context.Context, op, url string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)

	return req
}
