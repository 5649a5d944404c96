package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"p2pquotes-service/internal/domain"

	"github.com/cenkalti/backoff/v4"
)

// Observer receives one call per attempt against an upstream.
type Observer interface {
	ObserveUpstream(source, outcome string, took time.Duration)
}

type Client struct {
	HTTP      *http.Client
	Name      string
	UserAgent string
	// Retries is the number of extra attempts on transport errors and 5xx.
	// Zero means a single attempt.
	Retries  int
	Observer Observer
}

// New returns a client with a bounded total timeout and a tuned transport.
func New(name string, timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		Name:      name,
		UserAgent: "p2pquotes-service/1.0",
	}
}

// DoJSON sends req and decodes a 2xx JSON body into out. Transport failures and
// non-2xx statuses become *domain.FetchError, undecodable bodies *domain.ParseError.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req = req.WithContext(ctx)

	attempt := 0
	op := func() error {
		attempt++
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(&domain.FetchError{Source: c.Name, Err: err})
			}
			req.Body = body
		}
		start := time.Now()
		resp, err := hc.Do(req)
		if err != nil {
			c.observe("error", start)
			return &domain.FetchError{Source: c.Name, Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			c.observe("status_5xx", start)
			return &domain.FetchError{Source: c.Name, Status: resp.StatusCode}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.observe("status_4xx", start)
			return backoff.Permanent(&domain.FetchError{Source: c.Name, Status: resp.StatusCode})
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.observe("decode_error", start)
			return backoff.Permanent(&domain.ParseError{Source: c.Name, Err: err})
		}
		c.observe("ok", start)
		return nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	retries := c.Retries
	if retries < 0 {
		retries = 0
	}
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx))
	if err == nil {
		return nil
	}
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	var fe *domain.FetchError
	var pe *domain.ParseError
	if errors.As(err, &fe) || errors.As(err, &pe) {
		return err
	}
	// backoff reports the context error alone once the deadline passes.
	return &domain.FetchError{Source: c.Name, Err: err}
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.Observer != nil {
		c.Observer.ObserveUpstream(c.Name, outcome, time.Since(start))
	}
}
