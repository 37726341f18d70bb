package runtime_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/handler"
	"github.com/aviation-iia/run-endpoint/internal/runtime"
)

func setupRuntime(t *testing.T) *runtime.Runtime {
	require.NoError(t, config.SetDefaults())
	hdl, err := handler.NewDispatchHandler(
		handler.WithContext(context.Background()),
		handler.WithAuthMode("token"))
	require.NoError(t, err)
	return runtime.NewRuntime(hdl)
}

func TestServeHTTP(t *testing.T) {
	testCases := []struct {
		Name     string
		Method   string
		Body     string
		Expected struct {
			StatusCode int
			Body       string
		}
	}{
		{
			Name:   "preflight",
			Method: http.MethodOptions,
			Expected: struct {
				StatusCode int
				Body       string
			}{
				StatusCode: http.StatusNoContent,
				Body:       "",
			},
		},
		{
			Name:   "method_not_allowed",
			Method: http.MethodGet,
			Expected: struct {
				StatusCode int
				Body       string
			}{
				StatusCode: http.StatusMethodNotAllowed,
				Body:       `{"ok":false,"error":"POST only"}`,
			},
		},
		{
			Name:   "unparsable_body",
			Method: http.MethodPost,
			Body:   "not json",
			Expected: struct {
				StatusCode int
				Body       string
			}{
				StatusCode: http.StatusBadRequest,
				Body:       `{"ok":false,"error":"Invalid JSON"}`,
			},
		},
	}

	rtm := setupRuntime(t)
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(tc.Method, "/", strings.NewReader(tc.Body))
			rr := httptest.NewRecorder()

			rtm.ServeHTTP(rr, req)

			assert.Equal(t, tc.Expected.StatusCode, rr.Code)
			assert.Equal(t, tc.Expected.Body, rr.Body.String())
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLambdaPayloadTypes(t *testing.T) {
	preflight := events.APIGatewayV2HTTPRequest{
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: http.MethodOptions,
			},
		},
	}

	testCases := []struct {
		Name        string
		PayloadType string
		ExpectError bool
		Assert      func(t *testing.T, response any)
	}{
		{
			Name:        "api_gateway_v1",
			PayloadType: "api-gateway-v1",
			Assert: func(t *testing.T, response any) {
				resp, ok := response.(events.APIGatewayProxyResponse)
				require.True(t, ok)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			},
		},
		{
			Name:        "api_gateway_v2",
			PayloadType: "api-gateway-v2",
			Assert: func(t *testing.T, response any) {
				resp, ok := response.(events.APIGatewayV2HTTPResponse)
				require.True(t, ok)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			},
		},
		{
			Name:        "lambda_url",
			PayloadType: "lambda-url",
			Assert: func(t *testing.T, response any) {
				resp, ok := response.(events.LambdaFunctionURLResponse)
				require.True(t, ok)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			},
		},
		{
			Name:        "unsupported",
			PayloadType: "alb",
			ExpectError: true,
		},
	}

	rtm := setupRuntime(t)
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			config.Lambda.PayloadType = tc.PayloadType

			response, err := rtm.Lambda(context.Background(), preflight)
			if tc.ExpectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.Assert(t, response)
		})
	}
}
