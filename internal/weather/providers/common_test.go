package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

// statusRoundTripper always answers with the configured status code and
// records every body it hands out.
type statusRoundTripper struct {
	status int
	bodies []*trackedBody
}

func (rt *statusRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	body := &trackedBody{Reader: strings.NewReader("upstream error")}
	rt.bodies = append(rt.bodies, body)
	return &http.Response{
		StatusCode: rt.status,
		Body:       body,
		Header:     make(http.Header),
	}, nil
}

func testConfig(rt http.RoundTripper) HTTPClientConfig {
	return HTTPClientConfig{
		Client: &http.Client{Transport: rt},
		Backoff: BackoffConfig{
			MaxRetries:      1,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
		},
	}
}

func buildTestRequest() (*http.Request, error) {
	return http.NewRequest(http.MethodGet, "http://example.invalid/weather", nil)
}

func TestResilienceClosesBodyOnErrorStatuses(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, errRateLimited},
		{"server error", http.StatusInternalServerError, errServerError},
		{"unexpected status", http.StatusNotFound, errUnexpected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt := &statusRoundTripper{status: tc.status}
			cb := newCircuitBreaker("test-" + tc.name)

			_, err := doRequestWithResilience(context.Background(), testConfig(rt), cb, buildTestRequest)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}

			if len(rt.bodies) == 0 {
				t.Fatal("expected at least one attempt")
			}
			for i, body := range rt.bodies {
				if !body.closed {
					t.Fatalf("response body from attempt %d was not closed", i+1)
				}
			}
		})
	}
}

func TestResilienceRetriesThenGivesUp(t *testing.T) {
	rt := &statusRoundTripper{status: http.StatusInternalServerError}
	cb := newCircuitBreaker("test-retries")

	_, err := doRequestWithResilience(context.Background(), testConfig(rt), cb, buildTestRequest)
	if !errors.Is(err, errServerError) {
		t.Fatalf("expected server error, got %v", err)
	}

	// MaxRetries 1 means one initial attempt plus one retry.
	if len(rt.bodies) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(rt.bodies))
	}
}
