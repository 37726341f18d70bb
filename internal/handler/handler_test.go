package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/handler"
	"github.com/aviation-iia/run-endpoint/internal/models"
)

type testCase struct {
	Name       string
	Method     string
	Body       string
	Configured bool
	Token      string
	Upstream   http.HandlerFunc
	Expected   expectedResult
}

type expectedResult struct {
	StatusCode  int
	Body        string
	Error       bool
	Dispatched  bool
	CORSHeaders bool
}

func TestProcess(t *testing.T) {
	testCases := []testCase{
		{
			Name:   "preflight",
			Method: http.MethodOptions,
			Expected: expectedResult{
				StatusCode:  http.StatusNoContent,
				Body:        "",
				CORSHeaders: true,
			},
		},
		{
			Name:   "method_not_allowed",
			Method: http.MethodGet,
			Expected: expectedResult{
				StatusCode: http.StatusMethodNotAllowed,
				Body:       `{"ok":false,"error":"POST only"}`,
			},
		},
		{
			Name:   "unparsable_body",
			Method: http.MethodPost,
			Body:   "not json",
			Expected: expectedResult{
				StatusCode: http.StatusBadRequest,
				Body:       `{"ok":false,"error":"Invalid JSON"}`,
			},
		},
		{
			Name:   "malformed_iata",
			Method: http.MethodPost,
			Body:   `{"iata":"ab1"}`,
			Expected: expectedResult{
				StatusCode: http.StatusBadRequest,
				Body:       `{"ok":false,"error":"IATA must be 3 letters"}`,
			},
		},
		{
			Name:   "absent_iata",
			Method: http.MethodPost,
			Body:   `{}`,
			Expected: expectedResult{
				StatusCode: http.StatusBadRequest,
				Body:       `{"ok":false,"error":"IATA must be 3 letters"}`,
			},
		},
		{
			Name:   "non_string_iata",
			Method: http.MethodPost,
			Body:   `{"iata":42}`,
			Expected: expectedResult{
				StatusCode: http.StatusBadRequest,
				Body:       `{"ok":false,"error":"IATA must be 3 letters"}`,
			},
		},
		{
			Name:   "valid_iata_without_configuration",
			Method: http.MethodPost,
			Body:   `{"iata":"JFK"}`,
			Token:  "test-token",
			Expected: expectedResult{
				StatusCode: http.StatusInternalServerError,
				Body:       `{"ok":false,"error":"Missing env vars/secrets"}`,
				Error:      true,
			},
		},
		{
			Name:       "valid_iata_without_token",
			Method:     http.MethodPost,
			Body:       `{"iata":"JFK"}`,
			Configured: true,
			Expected: expectedResult{
				StatusCode: http.StatusInternalServerError,
				Body:       `{"ok":false,"error":"Missing env vars/secrets"}`,
				Error:      true,
			},
		},
		{
			Name:       "upstream_rejection",
			Method:     http.MethodPost,
			Body:       `{"iata":"JFK"}`,
			Configured: true,
			Token:      "test-token",
			Upstream: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte("workflow not found"))
			},
			Expected: expectedResult{
				StatusCode: http.StatusBadGateway,
				Body:       `{"ok":false,"error":"GitHub dispatch failed","status":404,"detail":"workflow not found"}`,
				Error:      true,
			},
		},
		{
			Name:       "successful_dispatch",
			Method:     http.MethodPost,
			Body:       `{"iata":" jfk "}`,
			Configured: true,
			Token:      "test-token",
			Upstream: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			Expected: expectedResult{
				StatusCode:  http.StatusOK,
				Body:        `{"ok":true,"dispatched":true,"iata":"JFK"}`,
				Dispatched:  true,
				CORSHeaders: true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			require.NoError(t, config.SetDefaults())
			if tc.Upstream != nil {
				upstream := httptest.NewServer(tc.Upstream)
				defer upstream.Close()
				config.GitHub.APIBaseURL = upstream.URL + "/"
			}

			options := []handler.Option{
				handler.WithAuthMode("token"),
				handler.WithToken(tc.Token),
			}
			if tc.Configured {
				options = append(options,
					handler.WithRepository("acme", "flights"),
					handler.WithWorkflow("run.yml", "main"))
			}
			hdl, err := handler.NewDispatchHandler(options...)
			require.NoError(t, err)

			result, err := hdl.Process(models.Request{Method: tc.Method, Body: tc.Body})
			if tc.Expected.Error {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			require.NotNil(t, result)
			assert.Equal(t, tc.Expected.StatusCode, result.Response.StatusCode)
			assert.Equal(t, tc.Expected.Body, result.Response.Body)
			assert.Equal(t, tc.Expected.Dispatched, result.Dispatched)

			// Every response carries the full CORS header set.
			assert.Equal(t, "*", result.Response.Headers["Access-Control-Allow-Origin"])
			assert.Equal(t, "POST,OPTIONS", result.Response.Headers["Access-Control-Allow-Methods"])
			assert.Equal(t, "content-type", result.Response.Headers["Access-Control-Allow-Headers"])
			if tc.Method != http.MethodOptions {
				assert.Equal(t, "application/json", result.Response.Headers["Content-Type"])
			}
		})
	}
}

// The environment-only bootstrap builds the handler without an explicit auth
// mode; it must fall back to token auth rather than fail credential retrieval.
func TestProcess_DefaultsToTokenAuth(t *testing.T) {
	require.NoError(t, config.SetDefaults())
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()
	config.GitHub.APIBaseURL = upstream.URL + "/"

	hdl, err := handler.NewDispatchHandler(
		handler.WithRepository("acme", "flights"),
		handler.WithWorkflow("run.yml", "main"),
		handler.WithToken("test-token"))
	require.NoError(t, err)

	result, err := hdl.Process(models.Request{Method: http.MethodPost, Body: `{"iata":"JFK"}`})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.Response.StatusCode)
	assert.Equal(t, `{"ok":true,"dispatched":true,"iata":"JFK"}`, result.Response.Body)
	assert.True(t, result.Dispatched)
}

func TestProcess_ConfiguredCORSOrigin(t *testing.T) {
	require.NoError(t, config.SetDefaults())
	config.Global.CORS.AllowOrigin = "https://iia.example.com"

	hdl, err := handler.NewDispatchHandler(handler.WithAuthMode("token"))
	require.NoError(t, err)

	result, err := hdl.Process(models.Request{Method: http.MethodOptions})
	require.NoError(t, err)
	assert.Equal(t, "https://iia.example.com", result.Response.Headers["Access-Control-Allow-Origin"])
}
