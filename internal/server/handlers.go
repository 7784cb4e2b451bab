package server

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/keywords"
	"github.com/rmarques/curriculo-agent/internal/llm"
	"github.com/rmarques/curriculo-agent/internal/pipeline"
)

// ParseJobRequest represents the request body for POST /parse-job
type ParseJobRequest struct {
	JobDescription string `json:"jobDescription" validate:"required,min=50"`
}

// ParseJobMetadata carries run details alongside the parsed data
type ParseJobMetadata struct {
	Model       string             `json:"model"`
	DurationMs  int64              `json:"durationMs"`
	Usage       llm.Usage          `json:"usage"`
	ATSKeywords *keywords.Keywords `json:"atsKeywords,omitempty"`
}

// ParseJobResponse represents the response for POST /parse-job
type ParseJobResponse struct {
	Data     *jobdata.StructuredJobData `json:"data"`
	Metadata ParseJobMetadata           `json:"metadata"`
}

// handleParseJob runs the parsing pipeline on a posted job description.
// Quota is consulted before any model work and consumed only after success.
func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req ParseJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "jobDescription is required and must be at least 50 characters")
		return
	}

	clientID := s.extractClientID(r)
	status := s.tracker.Check(clientID)
	if !status.Allowed {
		retryAfter := int(status.RetryAfter(time.Now()).Seconds()) + 1
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
			"error":      "quota exceeded",
			"retryAfter": retryAfter,
		})
		return
	}

	result, err := pipeline.ParseJob(r.Context(), s.client, req.JobDescription, pipeline.ParseOptions{
		Models:          s.models,
		ExtractKeywords: r.URL.Query().Get("keywords") == "true",
		Timeout:         s.timeout,
	})
	if err != nil {
		httpStatus := HTTPStatus(err)
		if httpStatus >= http.StatusInternalServerError {
			log.Printf("parse-job failed: %v", err)
		}
		s.errorResponse(w, httpStatus, publicMessage(err, httpStatus))
		return
	}

	s.tracker.ConsumeRequest(clientID)
	s.tracker.ConsumeTokens(clientID, int(result.Usage.TotalTokens))

	s.jsonResponse(w, http.StatusOK, ParseJobResponse{
		Data: result.Job,
		Metadata: ParseJobMetadata{
			Model:       result.Model,
			DurationMs:  result.Elapsed.Milliseconds(),
			Usage:       result.Usage,
			ATSKeywords: result.Keywords,
		},
	})
}

// handleParseJobHealth reports readiness and the primary model of the
// fallback chain.
func (s *Server) handleParseJobHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  s.models[0],
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID identifies the caller for quota accounting. Proxy headers
// win over the socket address.
func (s *Server) extractClientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
