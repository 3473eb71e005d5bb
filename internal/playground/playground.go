// Package playground mocks the backend APIs and GitHub statistics shown on
// the site. Every call waits a fixed delay and returns literal data.
package playground

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is the simulated network latency.
const DefaultDelay = 1500 * time.Millisecond

var (
	ErrUnknownAPI        = errors.New("playground: unknown api")
	ErrUnsupportedMethod = errors.New("playground: unsupported method")
)

// Methods lists the request methods the playground accepts, in menu order.
var Methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

type Endpoint struct {
	Method      string `yaml:"method" json:"method"`
	Path        string `yaml:"path" json:"path"`
	Description string `yaml:"description" json:"description"`
}

// API is one mocked backend with its canned responses.
type API struct {
	Key         string     `yaml:"key" json:"key"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	BaseURL     string     `yaml:"base_url" json:"base_url"`
	Endpoints   []Endpoint `yaml:"endpoints" json:"endpoints"`
	SampleGet   any        `yaml:"sample_get" json:"sample_get"`
	SampleBody  string     `yaml:"sample_body" json:"sample_body"`
}

// URL is the request URL shown for the API's first endpoint.
func (a API) URL() string {
	if len(a.Endpoints) == 0 {
		return a.BaseURL
	}
	return a.BaseURL + a.Endpoints[0].Path
}

type Request struct {
	API    string
	Method string
	Body   string
}

type Response struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	Data       any               `json:"data"`
}

// Pretty renders the response data as indented JSON.
func (r *Response) Pretty() string {
	b, err := json.MarshalIndent(r.Data, "", "  ")
	if err != nil {
		return fmt.Sprint(r.Data)
	}
	return string(b)
}

// Client serves canned responses after the configured delay.
type Client struct {
	apis  []API
	byKey map[string]int
	stats Stats
	delay time.Duration
	wait  func(ctx context.Context, d time.Duration) error
	now   func() time.Time
	log   *zap.Logger
}

type Option func(*Client)

func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithWait replaces the function used to sleep for the delay.
func WithWait(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.wait = fn }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithStats(s Stats) Option {
	return func(c *Client) { c.stats = s }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(apis []API, opts ...Option) *Client {
	c := &Client{
		apis:  append([]API(nil), apis...),
		byKey: make(map[string]int, len(apis)),
		delay: DefaultDelay,
		wait:  sleep,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for i, a := range c.apis {
		c.byKey[a.Key] = i
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIs returns the mocked APIs in display order.
func (c *Client) APIs() []API { return append([]API(nil), c.apis...) }

// API looks up an API by key.
func (c *Client) API(key string) (API, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return API{}, false
	}
	return c.apis[i], true
}

// Send simulates a request. It fails only for unknown APIs or methods, or
// when ctx ends before the delay elapses.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	api, ok := c.API(req.API)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAPI, req.API)
	}
	method := strings.ToUpper(req.Method)
	if !supported(method) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)
	}

	if err := c.wait(ctx, c.delay); err != nil {
		return nil, err
	}

	resp := &Response{
		Status:     http.StatusOK,
		StatusText: http.StatusText(http.StatusOK),
		Headers: map[string]string{
			"Content-Type":    "application/json",
			"X-Response-Time": "142ms",
			"X-Rate-Limit":    "100/hour",
		},
	}
	if method == http.MethodGet {
		resp.Data = api.SampleGet
	} else {
		resp.Data = map[string]any{
			"success": true,
			"message": "Operation completed successfully",
			"id":      fmt.Sprintf("%s_%d", api.Key, c.now().UnixMilli()),
		}
	}
	c.log.Debug("playground request", zap.String("api", api.Key), zap.String("method", method))
	return resp, nil
}

// Curl renders the cURL command equivalent to req.
func (c *Client) Curl(req Request) (string, error) {
	api, ok := c.API(req.API)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAPI, req.API)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s \\\n  %q \\\n", strings.ToUpper(req.Method), api.URL())
	b.WriteString("  -H \"Content-Type: application/json\" \\\n")
	b.WriteString("  -H \"Authorization: Bearer your-token\"")
	if req.Body != "" {
		fmt.Fprintf(&b, " \\\n  -d '%s'", req.Body)
	}
	return b.String(), nil
}

func supported(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
