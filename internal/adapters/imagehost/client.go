// Package imagehost provides a metadata-only HTTP probe client for remote
// image assets. It answers "is this URL alive and what does it claim to be"
// without ever downloading the asset body
package imagehost

import (
	"context"
	"io"
	"net/http"
	"time"

	perr "easel/internal/platform/errors"
	"easel/internal/platform/logger"
)

const (
	defaultTimeout = 5 * time.Second
	defaultUA      = "easel-imagecheck"
)

// Options configures the Client
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// Client issues existence probes against asset hosts.
// It classifies outcomes but never retries; retry policy belongs to callers
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("imagehost"),
		now:  time.Now,
	}
}

// Probe issues a HEAD request for url and reports the status code and the
// declared Content-Type. Hosts that refuse HEAD get a zero-byte ranged GET
// instead. Transport failures and transient statuses (429, 502, 503, 504)
// come back as Unavailable errors so callers can decide to retry; every
// other status is a completed probe, 404 included
func (c *Client) Probe(ctx context.Context, url string) (int, string, error) {
	status, ctype, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return 0, "", err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		return c.do(ctx, http.MethodGet, url)
	}
	return status, ctype, nil
}

func (c *Client) do(ctx context.Context, method, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "imagehost new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if method == http.MethodGet {
		// metadata only; ask for a single byte so well behaved hosts
		// answer 206 without shipping the asset
		req.Header.Set("Range", "bytes=0-0")
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		return 0, "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "imagehost probe failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	c.log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("imagehost probe response")

	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return 0, "", perr.Newf(perr.ErrorCodeUnavailable, "imagehost transient status %d", resp.StatusCode)
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
