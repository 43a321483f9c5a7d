// Package statsbomb fetches files from the StatsBomb open-data mirror.
package statsbomb

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/logging"
	"github.com/riskibarqy/futball/internal/platform/resilience"
	"github.com/riskibarqy/futball/internal/usecase"
)

const (
	DefaultBaseURL     = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"
	defaultTimeout     = 30 * time.Second
	maxResponseBodyLen = 64 << 20
)

var errTransient = crerr.New("open-data transient failure")

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
	// Dial overrides the connection dialer; tests use an in-memory listener.
	Dial fasthttp.DialFunc
}

type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	backoff resilience.Backoff
	logger  *logging.Logger
	breaker *resilience.Breaker
	flight  resilience.Group[[]byte]
}

var _ usecase.OpenDataClient = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "futball-open-data",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodyLen,
			Dial:                cfg.Dial,
		},
		baseURL: baseURL,
		timeout: timeout,
		backoff: resilience.Backoff{
			Attempts: max(cfg.MaxRetries, 0) + 1,
			Initial:  500 * time.Millisecond,
			Max:      5 * time.Second,
		},
		logger:  logger,
		breaker: resilience.NewBreaker(cfg.CircuitBreaker),
	}
}

// Fetch downloads one file by its path under the data root. Concurrent
// requests for the same path share one download.
func (c *Client) Fetch(ctx context.Context, relPath string) ([]byte, error) {
	relPath = strings.TrimLeft(strings.TrimSpace(relPath), "/")
	if relPath == "" || strings.Contains(relPath, "..") {
		return nil, errs.Input("invalid open-data path %q", relPath)
	}

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "open-data circuit breaker rejected request", "path", relPath, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: open-data mirror is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	data, err, _ := c.flight.Do(relPath, func() ([]byte, error) {
		var body []byte
		err := resilience.Retry(ctx, c.backoff, isTransient, func(ctx context.Context) error {
			var reqErr error
			body, reqErr = c.get(ctx, relPath)
			return reqErr
		})
		return body, err
	})
	if err != nil && isTransient(err) {
		c.breaker.Failure()
	} else {
		c.breaker.Success()
	}
	if err != nil {
		c.logger.WarnContext(ctx, "open-data request failed", "path", relPath, "error", err)
		return nil, err
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, relPath string) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(c.baseURL)
	_ = buf.WriteByte('/')
	_, _ = buf.WriteString(relPath)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURIBytes(buf.B)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "get %s", relPath), errTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return nil, errs.NotFound("open-data file %s", relPath)
	case status >= 200 && status < 300:
		return append([]byte(nil), resp.Body()...), nil
	case isRetryableStatus(status):
		return nil, crerr.Mark(crerr.Newf("get %s: status=%d", relPath, status), errTransient)
	default:
		return nil, crerr.Newf("get %s: status=%d", relPath, status)
	}
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}
