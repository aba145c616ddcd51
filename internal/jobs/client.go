package jobs

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	RecommendPath   = "/recommend"
	MatchCVPath     = "/recommend/cv"
	userAgent       = "spigell/interview-coach"
	contentType     = "application/json"
	contentEncoding = "gzip"
	defaultTimeout  = 15 * time.Second
)

// ErrNotConfigured is returned when no recommender URL is set.
var ErrNotConfigured = errors.New("recommender url is not configured")

type response struct {
	Recommendations []any `json:"recommendations"`
}

// Client calls the external recommendation service.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func NewClient(logger *zap.Logger, apiURL string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		APIURL: strings.TrimRight(strings.TrimSpace(apiURL), "/"),
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// Recommend returns jobs recommended for the user in provider order.
func (c *Client) Recommend(ctx context.Context, userID string) (*Jobs, error) {
	return c.fetch(ctx, RecommendPath, userID)
}

// MatchCV returns jobs matched against the user's stored CV.
func (c *Client) MatchCV(ctx context.Context, userID string) (*Jobs, error) {
	return c.fetch(ctx, MatchCVPath, userID)
}

func (c *Client) fetch(ctx context.Context, path, userID string) (*Jobs, error) {
	if c.APIURL == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"user_id": userID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	parsed, err := c.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got response from recommender",
		zap.String("path", path),
		zap.Int("recommendations", len(parsed.Recommendations)),
	)

	return decodeItems(parsed.Recommendations)
}

func (c *Client) parseResponse(resp *http.Response) (*response, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	var parsed response
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode recommender response: %w", err)
	}

	return &parsed, nil
}

// decodeItems maps the loosely typed provider items onto Job, keeping order.
func decodeItems(raw []any) (*Jobs, error) {
	var items []item

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &items,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	jobs := &Jobs{Items: make([]*Job, 0, len(items))}
	for i := range items {
		jobs.Items = append(jobs.Items, items[i].toJob())
	}

	return jobs, nil
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
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}
