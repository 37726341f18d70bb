package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/dispatch"
	"github.com/aviation-iia/run-endpoint/internal/models"
)

type successBody struct {
	OK         bool   `json:"ok"`
	Dispatched bool   `json:"dispatched"`
	IATA       string `json:"iata"`
}

type errorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type upstreamErrorBody struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (h *Handler) corsHeaders() map[string]string {
	origin := config.Global.CORS.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	return map[string]string{
		"Access-Control-Allow-Origin":  origin,
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Access-Control-Allow-Headers": "content-type",
	}
}

// preflightResponse terminates a CORS preflight: 204, no body, fixed CORS headers.
func (h *Handler) preflightResponse() models.Response {
	return models.Response{StatusCode: http.StatusNoContent, Headers: h.corsHeaders()}
}

// respondJSON builds a response carrying the CORS headers merged with the JSON content type.
func (h *Handler) respondJSON(statusCode int, payload any) models.Response {
	headers := h.corsHeaders()
	headers["Content-Type"] = "application/json"
	body, _ := json.Marshal(payload)
	return models.Response{Body: string(body), Headers: headers, StatusCode: statusCode}
}

func (h *Handler) clientError(statusCode int, message string) models.Response {
	return h.respondJSON(statusCode, errorBody{Error: message})
}

// configurationError reports missing configuration as a server error. The
// message is generic; secret values are never echoed.
func (h *Handler) configurationError() models.Response {
	return h.respondJSON(http.StatusInternalServerError, errorBody{Error: "Missing env vars/secrets"})
}

func (h *Handler) upstreamFailure(err *dispatch.UpstreamError) models.Response {
	return h.respondJSON(http.StatusBadGateway, upstreamErrorBody{
		Error:  "GitHub dispatch failed",
		Status: err.Status,
		Detail: err.Detail,
	})
}

func (h *Handler) success(iata string) models.Response {
	return h.respondJSON(http.StatusOK, successBody{OK: true, Dispatched: true, IATA: iata})
}
