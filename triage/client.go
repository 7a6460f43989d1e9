package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/carecompass/carecompass-api/schema"
)

const (
	clientLogPrefix      = "triage-client"
	defaultClientTimeout = 30 * time.Second
	analyzePath          = "/api/triage/analyze"
)

// ClientConfig configures a resilient triage client. MockMode is injected
// here at construction instead of living in process-wide state, so two
// clients in different modes can run side by side.
type ClientConfig struct {
	// Endpoint is the base URL of the triage service
	Endpoint string

	Timeout time.Duration

	// MockMode answers every request from the fallback classifier without
	// touching the network
	MockMode bool

	// HTTPClient overrides the default client, mainly for tests
	HTTPClient *http.Client
}

// Client invokes the triage service across the network and absorbs
// connectivity-class failures with the fallback classifier. Validation,
// rate-limit and other request-level failures propagate untouched so the
// caller can show a status-specific message.
type Client struct {
	endpoint   string
	mockMode   bool
	httpClient *http.Client
}

// NewClient - new resilient triage client
func NewClient(config ClientConfig) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = defaultClientTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		endpoint:   config.Endpoint,
		mockMode:   config.MockMode,
		httpClient: httpClient,
	}
}

// Analyze submits one triage request. A timeout, an unreachable service or
// a 5xx reply is answered locally by the fallback classifier, logged as a
// warning; the returned result is indistinguishable in shape from an
// upstream one. The fallback runs at most once per submission.
func (c *Client) Analyze(ctx context.Context, req schema.TriageRequest) (*schema.TriageResult, error) {
	if c.mockMode {
		return Fallback(req.Symptoms), nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// aborted, timed out, or no response at all: recoverable
		log.WithFields(log.Fields{
			"prefix": clientLogPrefix,
			"error":  err,
		}).Warn("triage service unreachable, answering with fallback classification")
		return Fallback(req.Symptoms), nil
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 500 {
		log.WithFields(log.Fields{
			"prefix": clientLogPrefix,
			"status": resp.StatusCode,
		}).Warn("triage service failing, answering with fallback classification")
		return Fallback(req.Symptoms), nil
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var result schema.TriageResult
		if err := json.Unmarshal(d, &result); err != nil {
			return nil, err
		}
		return &result, nil

	case resp.StatusCode == http.StatusBadRequest:
		var failure struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if err := json.Unmarshal(d, &failure); err != nil || len(failure.Details) == 0 {
			return nil, &ValidationError{Fields: []string{"invalid request"}}
		}
		return nil, &ValidationError{Fields: failure.Details}

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{}

	default:
		return nil, fmt.Errorf("triage service returned status %d", resp.StatusCode)
	}
}
