package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/model"
)

const (
	proteinPath     = "/protein/"
	correlationPath = "/api/proteins"

	defaultTimeout = 10 * time.Second
	retryBase      = 100 * time.Millisecond
	retryCap       = 2 * time.Second
)

// StatusError is a non-2xx answer from a backend.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s answered %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// RemoteSource reads proteins from the registry service and correlations from the
// correlation service. The two have no shared transaction boundary.
type RemoteSource struct {
	client         *http.Client
	registryURL    *url.URL
	correlationURL *url.URL
	timeout        time.Duration
	maxRetries     uint64
	retryBase      time.Duration
}

type RemoteOption func(*RemoteSource)

func WithHTTPClient(c *http.Client) RemoteOption {
	return func(s *RemoteSource) { s.client = c }
}

// WithTimeout bounds every attempt of every request.
func WithTimeout(d time.Duration) RemoteOption {
	return func(s *RemoteSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxRetries sets how many times a transport error, 5xx or 429 is retried.
func WithMaxRetries(n uint64) RemoteOption {
	return func(s *RemoteSource) { s.maxRetries = n }
}

// WithRetryBase sets the first backoff delay.
func WithRetryBase(d time.Duration) RemoteOption {
	return func(s *RemoteSource) {
		if d > 0 {
			s.retryBase = d
		}
	}
}

func NewRemoteSource(registryURL, correlationURL string, opts ...RemoteOption) (*RemoteSource, error) {
	reg, err := parseBaseURL(registryURL)
	if err != nil {
		return nil, fmt.Errorf("registry url: %w", err)
	}
	corr, err := parseBaseURL(correlationURL)
	if err != nil {
		return nil, fmt.Errorf("correlation url: %w", err)
	}

	s := &RemoteSource{
		client:         &http.Client{},
		registryURL:    reg,
		correlationURL: corr,
		timeout:        defaultTimeout,
		retryBase:      retryBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	return u, nil
}

func (s *RemoteSource) Mode() string {
	return ModeLive
}

func (s *RemoteSource) endpoint(base *url.URL, path string, query url.Values) string {
	u := *base
	u.Path = strings.TrimRight(base.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (s *RemoteSource) backoff() retry.Backoff {
	b := retry.NewExponential(s.retryBase)
	b = retry.WithCappedDuration(retryCap, b)
	return retry.WithMaxRetries(s.maxRetries, b)
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// do runs one request with retries and decodes a JSON answer into out (when non-nil).
func (s *RemoteSource) do(ctx context.Context, method, target string, body []byte, out any) error {
	return retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(attemptCtx, method, target, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := s.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, resp.Body)
			statusErr := &StatusError{URL: target, Status: resp.StatusCode}
			if retryable(resp.StatusCode) {
				return retry.RetryableError(statusErr)
			}
			return statusErr
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode %s: %w", target, err)
		}
		return nil
	})
}

func (s *RemoteSource) getProteins(ctx context.Context, query url.Values) ([]model.Protein, error) {
	var proteins []model.Protein
	target := s.endpoint(s.registryURL, proteinPath, query)
	if err := s.do(ctx, http.MethodGet, target, nil, &proteins); err != nil {
		return nil, err
	}
	return proteins, nil
}

func (s *RemoteSource) FetchAll(ctx context.Context) []model.Protein {
	proteins, err := s.getProteins(ctx, nil)
	if err != nil {
		logger.Error("Error fetching proteins", zap.String("mode", ModeLive), zap.Error(err))
		return []model.Protein{}
	}
	if proteins == nil {
		return []model.Protein{}
	}
	return proteins
}

// FetchByIdentifier asks the registry for one identifier and takes the first record
// carrying that entry.
func (s *RemoteSource) FetchByIdentifier(ctx context.Context, id string) (model.Protein, bool) {
	proteins, err := s.getProteins(ctx, url.Values{"identifier": {id}})
	if err != nil {
		logger.Error("Error fetching protein", zap.String("entry", id), zap.Error(err))
		return model.Protein{}, false
	}
	for _, p := range proteins {
		if p.Entry == id {
			return p, true
		}
	}
	return model.Protein{}, false
}

func (s *RemoteSource) FetchCorrelations(ctx context.Context, id string) []model.Correlation {
	var query url.Values
	if id != "" {
		query = url.Values{"entry": {id}}
	}

	var correlations []model.Correlation
	target := s.endpoint(s.correlationURL, correlationPath, query)
	if err := s.do(ctx, http.MethodGet, target, nil, &correlations); err != nil {
		logger.Error("Error fetching correlations", zap.String("entry", id), zap.Error(err))
		return []model.Correlation{}
	}
	if correlations == nil {
		return []model.Correlation{}
	}
	return correlations
}

func (s *RemoteSource) Search(ctx context.Context, filter Filter) []model.Protein {
	query := url.Values{}
	if filter.Identifier != "" {
		query.Set("identifier", filter.Identifier)
	}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Description != "" {
		query.Set("description", filter.Description)
	}

	proteins, err := s.getProteins(ctx, query)
	if err != nil {
		logger.Error("Error searching proteins", zap.Any("filter", filter), zap.Error(err))
		return []model.Protein{}
	}
	if proteins == nil {
		return []model.Protein{}
	}
	return proteins
}

type saveResponse struct {
	Status string `json:"status"`
}

func (s *RemoteSource) SaveCorrelations(ctx context.Context, correlations []model.Correlation) error {
	if correlations == nil {
		correlations = []model.Correlation{}
	}
	body, err := json.Marshal(correlations)
	if err != nil {
		return fmt.Errorf("encode correlations: %w", err)
	}

	var resp saveResponse
	target := s.endpoint(s.correlationURL, correlationPath, nil)
	if err := s.do(ctx, http.MethodPost, target, body, &resp); err != nil {
		return fmt.Errorf("failed to save correlations: %w", err)
	}
	if resp.Status != "" && resp.Status != "success" {
		return fmt.Errorf("failed to save correlations: status %q", resp.Status)
	}
	return nil
}
