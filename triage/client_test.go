package triage_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carecompass/carecompass-api/schema"
	"github.com/carecompass/carecompass-api/triage"
)

func severeRequest() schema.TriageRequest {
	return schema.TriageRequest{
		Symptoms:        "crushing chest pain",
		Location:        "Nashville",
		InsuranceStatus: schema.NoInsurance,
	}
}

func TestClientPassesResultThrough(t *testing.T) {
	want := triage.Fallback("mild headache")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		b, _ := json.Marshal(want)
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	c := triage.NewClient(triage.ClientConfig{Endpoint: ts.URL})

	result, err := c.Analyze(context.Background(), severeRequest())
	assert.Nil(t, err, "wrong client failure")
	assert.Equal(t, want, result, "wrong passed-through result")
}

// A failing service is recoverable: the answer comes from the fallback
// classifier and looks exactly like an upstream one.
func TestClientFallsBackOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Unable to analyze symptoms at this time. Please try again.","code":"CLAUDE_API_ERROR"}`))
	}))
	defer ts.Close()

	c := triage.NewClient(triage.ClientConfig{Endpoint: ts.URL})

	result, err := c.Analyze(context.Background(), severeRequest())
	assert.Nil(t, err, "wrong surfaced recoverable failure")
	assert.Equal(t, schema.UrgencyER, result.UrgencyLevel, "wrong fallback urgency level")
}

func TestClientFallsBackWhenUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	endpoint := ts.URL
	ts.Close()

	c := triage.NewClient(triage.ClientConfig{Endpoint: endpoint})

	result, err := c.Analyze(context.Background(), severeRequest())
	assert.Nil(t, err, "wrong surfaced recoverable failure")
	assert.Equal(t, schema.UrgencyER, result.UrgencyLevel, "wrong fallback urgency level")
}

func TestClientSurfacesValidationFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Validation failed","details":["symptoms is required and must be a non-empty string"]}`))
	}))
	defer ts.Close()

	c := triage.NewClient(triage.ClientConfig{Endpoint: ts.URL})

	_, err := c.Analyze(context.Background(), severeRequest())

	var validationErr *triage.ValidationError
	assert.True(t, errors.As(err, &validationErr), "wrong error type")
	assert.Equal(t, []string{"symptoms is required and must be a non-empty string"}, validationErr.Fields, "wrong validation details")
}

func TestClientSurfacesRateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Too many requests, please try again in a minute."}`))
	}))
	defer ts.Close()

	c := triage.NewClient(triage.ClientConfig{Endpoint: ts.URL})

	_, err := c.Analyze(context.Background(), severeRequest())

	var rateErr *triage.RateLimitError
	assert.True(t, errors.As(err, &rateErr), "wrong error type")
}

func TestClientMockMode(t *testing.T) {
	// no endpoint at all: mock mode must never touch the network
	c := triage.NewClient(triage.ClientConfig{MockMode: true})

	result, err := c.Analyze(context.Background(), severeRequest())
	assert.Nil(t, err, "wrong mock mode failure")
	assert.Equal(t, schema.UrgencyER, result.UrgencyLevel, "wrong mock mode urgency level")

	// two clients in different modes coexist
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		b, _ := json.Marshal(triage.Fallback("mild headache"))
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	live := triage.NewClient(triage.ClientConfig{Endpoint: ts.URL})
	liveResult, err := live.Analyze(context.Background(), severeRequest())
	assert.Nil(t, err, "wrong live client failure")
	assert.Equal(t, schema.UrgencyClinic, liveResult.UrgencyLevel, "wrong live client result")
}
