package ingest

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/errors"
	"github.com/matzehuels/stepgraph/pkg/httputil"
	"github.com/matzehuels/stepgraph/pkg/observability"
)

// Service endpoints.
const (
	PathFlow    = "/generate-flow"
	PathMindmap = "/generate-mindmap"
	PathHealth  = "/health"
)

const (
	defaultTimeout  = 2 * time.Minute
	defaultAttempts = 3
	defaultDelay    = time.Second

	// MaxUploadSize bounds the PDF size sent upstream.
	MaxUploadSize = 32 << 20
)

// Client calls the extraction service.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *log.Logger
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetry sets the attempt count and initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// NewClient validates baseURL and returns a client for it.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   log.New(io.Discard),
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string { return c.baseURL }

// EndpointFor returns the extraction path for mode.
func EndpointFor(mode diagram.Mode) string {
	if mode == diagram.Mindmap {
		return PathMindmap
	}
	return PathFlow
}

// Extract uploads the PDF read from r and returns the lines the service
// extracted for mode.
func (c *Client) Extract(ctx context.Context, filename string, r io.Reader, mode diagram.Mode) ([]string, error) {
	if err := errors.ValidateUploadFilename(filename); err != nil {
		return nil, err
	}
	pdf, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFile, err, "read %s", filename)
	}
	if len(pdf) > MaxUploadSize {
		return nil, errors.New(errors.ErrCodeInvalidFile, "%s exceeds %d MiB", filename, MaxUploadSize>>20)
	}

	url := c.baseURL + EndpointFor(mode)
	start := time.Now()
	c.logger.Debug("uploading document", "file", filename, "bytes", len(pdf), "url", url)

	var body []byte
	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		body, err = c.upload(ctx, url, filepath.Base(filename), pdf)
		if err != nil && httputil.IsRetryable(err) {
			c.logger.Warn("extraction failed, retrying", "file", filename, "err", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	lines, err := diagram.ParseLines(body)
	if err != nil {
		return nil, err
	}
	c.logger.Info("document extracted", "file", filename, "lines", len(lines), "took", time.Since(start).Round(time.Millisecond))
	return lines, nil
}

// ExtractFile opens path and calls [Client.Extract].
func (c *Client) ExtractFile(ctx context.Context, path string, mode diagram.Mode) ([]string, error) {
	if err := errors.ValidateUploadFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Extract(ctx, filepath.Base(path), f, mode)
}

// Health checks that the service answers on /health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PathHealth, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()
	return httputil.CheckResponse(resp)
}

func (c *Client) upload(ctx context.Context, url, name string, pdf []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckResponse(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// do sends req and reports it to the HTTP hooks.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	hooks := observability.HTTP()
	ctx, host, path := req.Context(), req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

// transportError classifies a failed round trip. Cancellation is final;
// everything else is worth another attempt.
func transportError(ctx context.Context, err error) error {
	switch {
	case stderrors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	case stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "extraction service timed out")
	}
	return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "reach extraction service"))
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFile, err, "open %s", path)
	}
	return f, nil
}
