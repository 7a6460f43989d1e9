package triage

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/carecompass/carecompass-api/external/anthropic"
	"github.com/carecompass/carecompass-api/schema"
)

const defaultCallTimeout = 30 * time.Second

// Analyzer is the upstream model boundary the pipeline calls through
type Analyzer interface {
	Analyze(ctx context.Context, system string, content []anthropic.ContentBlock) (string, error)
}

// Pipeline runs one triage submission end to end: request validation,
// content construction, the model call, and response validation. It is
// stateless and safe for concurrent use.
type Pipeline struct {
	analyzer Analyzer
	timeout  time.Duration
}

// NewPipeline - new triage pipeline over the given model boundary
func NewPipeline(analyzer Analyzer, timeout time.Duration) *Pipeline {
	if timeout == 0 {
		timeout = defaultCallTimeout
	}
	return &Pipeline{
		analyzer: analyzer,
		timeout:  timeout,
	}
}

// Execute returns a validated TriageResult or one of the tagged errors:
// ValidationError for a malformed request, SchemaError for a malformed
// model reply, ConnectivityError when the model could not be reached.
// Whether a ConnectivityError is replaced by the fallback classifier is the
// caller's decision; the pipeline only classifies.
func (p *Pipeline) Execute(ctx context.Context, req schema.TriageRequest) (*schema.TriageResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	content := BuildContent(req)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.analyzer.Analyze(ctx, SystemPrompt, content)
	if err != nil {
		return nil, classifyUpstream(err)
	}

	result, err := ParseResult(raw)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": "triage",
			"error":  err,
		}).Error("model reply failed schema validation")
		return nil, err
	}

	return result, nil
}

func validateRequest(req schema.TriageRequest) error {
	var violations []string

	if strings.TrimSpace(req.Symptoms) == "" {
		violations = append(violations, "symptoms is required and must be a non-empty string")
	}
	if strings.TrimSpace(req.Location) == "" {
		violations = append(violations, "location is required and must be a non-empty string")
	}
	if req.InsuranceStatus == "" {
		violations = append(violations, "insuranceStatus is required and must be a string")
	}

	if len(violations) > 0 {
		return &ValidationError{Fields: violations}
	}
	return nil
}

// classifyUpstream sorts a model-call failure into the error taxonomy.
// Timeouts, transport failures and upstream overload (5xx, 429) are
// connectivity class; any other upstream status stays a StatusError and is
// surfaced as a processing failure.
func classifyUpstream(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ConnectivityError{Cause: CauseTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ConnectivityError{Cause: CauseTimeout, Err: err}
	}

	var statusErr *anthropic.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= 500 || statusErr.StatusCode == 429 {
			return &ConnectivityError{
				Cause:      CauseUpstreamStatus,
				StatusCode: statusErr.StatusCode,
				Err:        err,
			}
		}
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &ConnectivityError{Cause: CauseNoResponse, Err: err}
	}

	return err
}
