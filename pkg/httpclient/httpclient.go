package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "newswatch/1.0 (+https://github.com/dongbanlab/newswatch)"

// Response is the subset of an HTTP response the fetchers consume.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts the HTTP transport so fetchers can be exercised
// against canned responses in tests.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// restyClient implements Client using resty.
type restyClient struct {
	rc *resty.Client
}

// NewRestyClient returns a tuned resty-backed Client with the given
// per-request timeout.
func NewRestyClient(timeout time.Duration) Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", defaultUserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	return &restyClient{rc: rc}
}

// Get performs a GET request with the given headers.
func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := c.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponse{resp: resp}, nil
}

// restyResponse adapts *resty.Response to the Response interface.
type restyResponse struct {
	resp *resty.Response
}

func (r *restyResponse) Body() []byte    { return r.resp.Body() }
func (r *restyResponse) StatusCode() int { return r.resp.StatusCode() }
