package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/pkg/models"
	"github.com/sirupsen/logrus"
)

const maxAttempts = 3

// Fetcher downloads a remote document
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error)
}

// HTTPOptions configures an HTTPFetcher
type HTTPOptions struct {
	Timeout  time.Duration
	MaxBytes int64

	// Delay before retry n (1-based); defaults to n seconds
	Backoff func(attempt int) time.Duration
}

// HTTPFetcher implements Fetcher over plain HTTP(S) with retries on
// server errors and network failures
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
	backoff  func(attempt int) time.Duration
}

// NewHTTPFetcher creates an HTTP document fetcher
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Backoff == nil {
		opts.Backoff = func(attempt int) time.Duration {
			return time.Duration(attempt) * time.Second
		}
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: opts.MaxBytes,
		backoff:  opts.Backoff,
	}
}

// Fetch downloads the document, retrying 5xx responses and network errors.
// 4xx responses fail immediately.
func (h *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid URL", err)
	}
	req.Header.Set("Accept", "application/pdf, image/*, */*")
	req.Header.Set("User-Agent", "Doc-Insight/1.0")

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		doc, retry, err := h.try(req)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, apperrors.NewTimeoutError("Document fetch timed out", ctx.Err())
		}
		if !retry || attempt == maxAttempts {
			break
		}

		logger.WithFields(logrus.Fields{
			"url":     rawURL,
			"attempt": attempt,
		}).WithError(err).Warn("Document fetch failed, retrying")

		select {
		case <-time.After(h.backoff(attempt)):
		case <-ctx.Done():
			return nil, apperrors.NewTimeoutError("Document fetch timed out", ctx.Err())
		}
	}

	if errors.Is(lastErr, errTooLarge) {
		return nil, apperrors.NewValidationError("Document exceeds size limit", lastErr)
	}
	return nil, apperrors.NewNetworkError(fmt.Sprintf("Failed to fetch document after %d attempts", maxAttempts), lastErr)
}

// try performs one request and reports whether a failure is worth retrying
func (h *HTTPFetcher) try(req *http.Request) (*models.RemoteDocument, bool, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, false, fmt.Errorf("client error: status code %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("server error: status code %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	data, err := readLimited(resp.Body, h.maxBytes)
	if err != nil {
		return nil, !errors.Is(err, errTooLarge), err
	}

	return &models.RemoteDocument{
		URL:         req.URL.String(),
		ContentType: MediaType(resp.Header.Get("Content-Type")),
		Data:        data,
	}, false, nil
}

var errTooLarge = errors.New("document exceeds size limit")

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errTooLarge
	}
	return data, nil
}

// MediaType strips parameters from a Content-Type header value
func MediaType(header string) string {
	if header == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return header
	}
	return mediaType
}
