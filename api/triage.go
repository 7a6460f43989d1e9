package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/carecompass/carecompass-api/external/anthropic"
	"github.com/carecompass/carecompass-api/schema"
	"github.com/carecompass/carecompass-api/triage"
)

func (s *Server) analyzeTriage(c *gin.Context) {
	var params schema.TriageRequest

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	params.Symptoms = strings.TrimSpace(params.Symptoms)
	params.Location = strings.TrimSpace(params.Location)

	result, err := s.pipeline.Execute(c.Request.Context(), params)
	if err != nil {
		s.abortTriageError(c, params, err)
		return
	}

	// the result is returned at the top level, not wrapped
	c.JSON(http.StatusOK, result)
}

// abortTriageError maps the pipeline's tagged errors onto the HTTP surface.
// A connectivity-class failure is replaced by the fallback classification
// when the server is configured for it; every other class is surfaced.
func (s *Server) abortTriageError(c *gin.Context, params schema.TriageRequest, err error) {
	var validationErr *triage.ValidationError
	if errors.As(err, &validationErr) {
		abortWithEncoding(c, http.StatusBadRequest, errorValidation(validationErr.Fields))
		return
	}

	var schemaErr *triage.SchemaError
	if errors.As(err, &schemaErr) {
		abortWithEncoding(c, http.StatusInternalServerError, errorParse, err)
		return
	}

	var connectivityErr *triage.ConnectivityError
	if errors.As(err, &connectivityErr) {
		if s.useFallback {
			log.WithField("cause", connectivityErr.Cause).
				Warn("upstream model unreachable, answering with fallback classification")
			c.JSON(http.StatusOK, triage.Fallback(params.Symptoms))
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorClaudeAPI, err)
		return
	}

	if isUpstreamError(err) {
		abortWithEncoding(c, http.StatusInternalServerError, errorClaudeAPI, err)
		return
	}

	sentry.CaptureException(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
}

// isUpstreamError covers non-recoverable model failures: a request-level
// status from the endpoint, or a reply with no text content at all
func isUpstreamError(err error) bool {
	var statusErr *anthropic.StatusError
	return errors.As(err, &statusErr) || errors.Is(err, anthropic.ErrNoTextContent)
}
