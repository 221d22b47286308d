package base

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/retry"
)

// maxResponseBytes bounds how much of a supplier response is read.
const maxResponseBytes = 16 << 20

// NewHTTPClient builds the supplier HTTP client with the configured timeout and TLS policy.
func NewHTTPClient(settings config.SupplierSettings) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !settings.VerifyTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   settings.Timeout,
		Transport: transport,
	}
}

// Request describes one outbound call.
type Request struct {
	// Op names the operation for logs and errors (e.g., "search")
	Op     string
	Method string

	// Path is appended to the base URL unless it is already absolute
	Path   string
	Query  url.Values
	Header http.Header

	Body        []byte
	ContentType string

	// NoRetry sends exactly one attempt
	NoRetry bool
}

// Response is a fully read supplier response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do sends req with the bounded fixed-delay retry. Transport failures and
// 502/503/504 are retried; other statuses are not. Every non-2xx status is
// returned as a *domain.SupplierError together with the response, so callers
// can read provider error codes from the body.
func (b *Base) Do(ctx context.Context, req Request) (*Response, error) {
	target, err := b.resolveURL(req.Path, req.Query)
	if err != nil {
		return nil, b.Err(req.Op, domain.ErrInvalidRequest, err)
	}

	cfg := retry.Fixed(b.Settings.RetryTimes, b.Settings.RetryDelay)
	if req.NoRetry {
		cfg = cfg.WithMaxAttempts(1)
	}
	cfg = cfg.WithOnRetry(func(next int, err error) {
		b.Log.Warn().Err(err).Str("op", req.Op).Int("attempt", next).Msg("Retrying supplier call")
	})

	var last *Response
	resp, err := retry.DoWithResult(ctx, func() (*Response, error) {
		r, err := b.send(ctx, req, target)
		last = r
		return r, err
	}, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return last, b.Err(req.Op, domain.ErrTransport, err)
		}
		return last, err
	}
	return resp, nil
}

func (b *Base) send(ctx context.Context, req Request, target string) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, retry.NewPermanent(b.Err(req.Op, domain.ErrInvalidRequest, err))
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		ct := req.ContentType
		if ct == "" {
			ct = "application/json"
		}
		httpReq.Header.Set("Content-Type", ct)
	}

	httpResp, err := b.Client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.NewPermanent(b.Err(req.Op, domain.ErrTransport, ctx.Err()))
		}
		return nil, b.Err(req.Op, domain.ErrTransport, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, b.Err(req.Op, domain.ErrTransport, fmt.Errorf("read response: %w", err))
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}
	if statusErr := b.statusError(req.Op, resp); statusErr != nil {
		if retryableStatus(resp.StatusCode) {
			return resp, statusErr
		}
		return resp, retry.NewPermanent(statusErr)
	}
	return resp, nil
}

// statusError maps a non-2xx status to the error taxonomy.
func (b *Base) statusError(op string, resp *Response) error {
	status := resp.StatusCode
	if status >= 200 && status < 300 {
		return nil
	}

	cause := fmt.Errorf("unexpected status %d: %s", status, snippet(resp.Body))
	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = domain.ErrAuthentication
	case status >= 500:
		kind = domain.ErrTransport
	default:
		kind = domain.ErrProviderRejected
	}
	return b.Err(op, kind, cause).WithStatus(status, firstErrorCode(resp.Body))
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// DoJSON encodes payload (when non-nil) as the JSON body, sends req and
// decodes a 2xx body into out (when non-nil).
func (b *Base) DoJSON(ctx context.Context, req Request, payload, out any) (*Response, error) {
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, b.Err(req.Op, domain.ErrInvalidRequest, fmt.Errorf("encode request: %w", err))
		}
		req.Body = data
		req.ContentType = "application/json"
	}

	resp, err := b.Do(ctx, req)
	if err != nil {
		return resp, err
	}
	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return resp, b.Err(req.Op, domain.ErrTransport, fmt.Errorf("decode response: %w", err))
		}
	}
	return resp, nil
}

func (b *Base) resolveURL(path string, query url.Values) (string, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if b.Settings.BaseURL == "" {
			return "", fmt.Errorf("no base url configured")
		}
		target = strings.TrimRight(b.Settings.BaseURL, "/")
		if path != "" {
			target += "/" + strings.TrimLeft(path, "/")
		}
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vals := range query {
			for _, v := range vals {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func snippet(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
