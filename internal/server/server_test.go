package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/curriculo-agent/internal/llm"
	"github.com/rmarques/curriculo-agent/internal/quota"
)

type stubClient struct {
	reply string
	err   error
	delay time.Duration
}

func (c *stubClient) GenerateContent(ctx context.Context, model string, _ string) (*llm.Result, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return &llm.Result{Text: c.reply, Model: model, Usage: llm.Usage{TotalTokens: 100}}, nil
}

func (c *stubClient) Close() error { return nil }

const validJobReply = `{
	"empresa": "TechBR",
	"cargo": "Desenvolvedor Backend",
	"local": "São Paulo/SP",
	"modalidade": "Remoto",
	"tipo_vaga": "Pleno",
	"requisitos_obrigatorios": ["Go", "Docker"],
	"requisitos_desejaveis": [],
	"responsabilidades": ["Desenvolver APIs"],
	"beneficios": [],
	"salario": null,
	"idioma_vaga": "pt"
}`

const validDescription = "Vaga: Desenvolvedor Backend na TechBR. Requisitos obrigatórios: Go e Docker. Trabalho remoto."

func newTestServer(t *testing.T, client llm.Client, limits quota.Limits) *Server {
	t.Helper()
	if limits == (quota.Limits{}) {
		limits = quota.DefaultLimits()
	}
	s, err := New(Config{
		Port:    0,
		Client:  client,
		Models:  []string{"model-a", "model-b"},
		Timeout: 5 * time.Second,
		Limits:  limits,
	})
	require.NoError(t, err)
	return s
}

func postParseJob(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/parse-job", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestParseJobSuccess(t *testing.T) {
	s := newTestServer(t, &stubClient{reply: validJobReply}, quota.Limits{})

	rec := postParseJob(s, `{"jobDescription": "`+validDescription+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ParseJobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "TechBR", resp.Data.Empresa)
	assert.Equal(t, "model-a", resp.Metadata.Model)
	assert.EqualValues(t, 100, resp.Metadata.Usage.TotalTokens)
	assert.Nil(t, resp.Metadata.ATSKeywords, "keywords are opt-in")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestParseJobWithKeywords(t *testing.T) {
	s := newTestServer(t, &stubClient{reply: validJobReply}, quota.Limits{})

	req := httptest.NewRequest(http.MethodPost, "/parse-job?keywords=true",
		strings.NewReader(`{"jobDescription": "`+validDescription+`"}`))
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ParseJobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Metadata.ATSKeywords)
	assert.Contains(t, resp.Metadata.ATSKeywords.RequiredSkills, "Go")
}

func TestParseJobRejectsShortDescription(t *testing.T) {
	s := newTestServer(t, &stubClient{reply: validJobReply}, quota.Limits{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing field", body: `{}`},
		{name: "too short", body: `{"jobDescription": "vaga de go"}`},
		{name: "malformed JSON", body: `{"jobDescription": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postParseJob(s, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestParseJobQuotaExceeded(t *testing.T) {
	s := newTestServer(t, &stubClient{reply: validJobReply},
		quota.Limits{RequestsPerWindow: 1, TokensPerWindow: 1000, Window: time.Minute})

	require.Equal(t, http.StatusOK, postParseJob(s, `{"jobDescription": "`+validDescription+`"}`).Code)

	rec := postParseJob(s, `{"jobDescription": "`+validDescription+`"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "retryAfter")
}

func TestParseJobModelGarbageIsBadGateway(t *testing.T) {
	s := newTestServer(t, &stubClient{reply: "Desculpe, não posso ajudar."}, quota.Limits{})

	rec := postParseJob(s, `{"jobDescription": "`+validDescription+`"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ExtractionError", "internal detail stays out of the response")
}

func TestParseJobTimeout(t *testing.T) {
	s, err := New(Config{
		Client:  &stubClient{reply: validJobReply, delay: 2 * time.Second},
		Models:  []string{"model-a"},
		Timeout: 50 * time.Millisecond,
		Limits:  quota.DefaultLimits(),
	})
	require.NoError(t, err)

	rec := postParseJob(s, `{"jobDescription": "`+validDescription+`"}`)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestParseJobFailureDoesNotConsumeQuota(t *testing.T) {
	s := newTestServer(t, &stubClient{reply: "sem json aqui"},
		quota.Limits{RequestsPerWindow: 1, TokensPerWindow: 1000, Window: time.Minute})

	require.Equal(t, http.StatusBadGateway, postParseJob(s, `{"jobDescription": "`+validDescription+`"}`).Code)

	// The budget is intact, so the next request is not rejected on quota.
	rec := postParseJob(s, `{"jobDescription": "`+validDescription+`"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestParseJobHealthReportsPrimaryModel(t *testing.T) {
	s := newTestServer(t, &stubClient{reply: validJobReply}, quota.Limits{})

	req := httptest.NewRequest(http.MethodGet, "/parse-job", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "model-a", resp["model"])
}

func TestNewRequiresClientAndModels(t *testing.T) {
	_, err := New(Config{Models: []string{"m"}})
	assert.Error(t, err)

	_, err = New(Config{Client: &stubClient{}})
	assert.Error(t, err)
}
