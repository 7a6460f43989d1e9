package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	logPrefix = "anthropic"

	defaultEndpoint  = "https://api.anthropic.com/v1/messages"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
	defaultTimeout   = 30 * time.Second

	apiVersion = "2023-06-01"
)

var (
	errEmptyAPIKey   = fmt.Errorf("empty anthropic api key")
	ErrNoTextContent = fmt.Errorf("no text content in anthropic response")
)

// StatusError is a non-2xx reply from the messages endpoint. Callers branch
// on StatusCode to separate upstream overload from request-level failures.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("anthropic: status %d", e.StatusCode)
	}
	return fmt.Sprintf("anthropic: status %d: %s", e.StatusCode, e.Message)
}

// ContentBlock is one element of a user message. Text blocks carry Text;
// image blocks carry Source.
type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *ImageSource `json:"source,omitempty"`
}

// ImageSource holds base64 image bytes for a multimodal message
type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// NewTextBlock builds a text content block
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{
		Type: "text",
		Text: text,
	}
}

// NewImageBlock builds a base64 image content block
func NewImageBlock(mediaType, data string) ContentBlock {
	return ContentBlock{
		Type: "image",
		Source: &ImageSource{
			Type:      "base64",
			MediaType: mediaType,
			Data:      data,
		},
	}
}

// Config for the messages client. Zero values fall back to defaults except
// APIKey, which is required.
type Config struct {
	APIKey    string
	Endpoint  string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client calls the Anthropic messages endpoint
type Client struct {
	config     Config
	httpClient *http.Client
}

// New - new messages client
func New(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, errEmptyAPIKey
	}
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

type message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze sends one user message under the given system instructions and
// returns the concatenated text blocks of the reply.
func (c *Client) Analyze(ctx context.Context, system string, content []ContentBlock) (string, error) {
	payload := messagesRequest{
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
		System:    system,
		Messages: []message{
			{Role: "user", Content: content},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.config.APIKey)
	req.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if nil != err {
		return "", err
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		return "", err
	}

	var r messagesResponse
	if err := json.Unmarshal(d, &r); err != nil && resp.StatusCode == http.StatusOK {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"status": resp.StatusCode,
			"error":  r.Error.Message,
		}).Error("messages call failed")

		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Message:    r.Error.Message,
		}
	}

	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrNoTextContent
	}

	return sb.String(), nil
}
