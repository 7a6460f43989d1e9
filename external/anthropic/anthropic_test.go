package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:   "test-key",
		Endpoint: server.URL,
	})
	assert.NoError(t, err, "wrong client construction")

	return client, server
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err, "wrong empty key handling")
}

func TestNewAppliesDefaults(t *testing.T) {
	client, err := New(Config{APIKey: "test-key"})
	assert.NoError(t, err, "wrong client construction")
	assert.Equal(t, defaultEndpoint, client.config.Endpoint, "wrong default endpoint")
	assert.Equal(t, defaultModel, client.config.Model, "wrong default model")
	assert.Equal(t, defaultMaxTokens, client.config.MaxTokens, "wrong default max tokens")
	assert.Equal(t, defaultTimeout, client.config.Timeout, "wrong default timeout")
}

func TestAnalyzeConcatenatesTextBlocks(t *testing.T) {
	var captured messagesRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"), "wrong api key header")
		assert.Equal(t, apiVersion, r.Header.Get("Anthropic-Version"), "wrong version header")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured), "wrong request payload")

		w.Write([]byte(`{"content":[{"type":"text","text":"hello "},{"type":"tool_use"},{"type":"text","text":"world"}]}`))
	})

	reply, err := client.Analyze(context.Background(), "be terse", []ContentBlock{NewTextBlock("hi")})

	assert.NoError(t, err, "wrong analyze error")
	assert.Equal(t, "hello world", reply, "wrong concatenated reply")
	assert.Equal(t, "be terse", captured.System, "wrong system prompt")
	assert.Equal(t, defaultModel, captured.Model, "wrong model")
	assert.Len(t, captured.Messages, 1, "wrong message count")
	assert.Equal(t, "user", captured.Messages[0].Role, "wrong message role")
}

func TestAnalyzeSendsImageBlocks(t *testing.T) {
	var captured messagesRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured), "wrong request payload")
		w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	content := []ContentBlock{
		NewImageBlock("image/jpeg", "aGVsbG8="),
		NewTextBlock("what is this"),
	}
	_, err := client.Analyze(context.Background(), "", content)

	assert.NoError(t, err, "wrong analyze error")
	blocks := captured.Messages[0].Content
	assert.Len(t, blocks, 2, "wrong block count")
	assert.Equal(t, "image", blocks[0].Type, "wrong first block type")
	assert.Equal(t, "base64", blocks[0].Source.Type, "wrong image source type")
	assert.Equal(t, "image/jpeg", blocks[0].Source.MediaType, "wrong media type")
	assert.Equal(t, "aGVsbG8=", blocks[0].Source.Data, "wrong image data")
}

func TestAnalyzeReturnsStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"overloaded"}}`))
	})

	_, err := client.Analyze(context.Background(), "", []ContentBlock{NewTextBlock("hi")})

	statusErr, ok := err.(*StatusError)
	assert.True(t, ok, "wrong error type")
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode, "wrong status code")
	assert.Equal(t, "overloaded", statusErr.Message, "wrong error message")
}

func TestAnalyzeWithoutTextContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"tool_use"}]}`))
	})

	_, err := client.Analyze(context.Background(), "", []ContentBlock{NewTextBlock("hi")})

	assert.Equal(t, ErrNoTextContent, err, "wrong empty content error")
}

func TestAnalyzeHonorsContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"content":[{"type":"text","text":"too late"}]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Analyze(ctx, "", []ContentBlock{NewTextBlock("hi")})
	assert.Error(t, err, "wrong context timeout handling")
}
