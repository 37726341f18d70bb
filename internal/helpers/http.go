package helpers

import (
	"net/http"

	"github.com/aviation-iia/run-endpoint/internal/models"
)

// RespondHTTP writes a models.Response to the given http.ResponseWriter.
// Headers are set before the status line; a zero status code defaults to 200.
func RespondHTTP(response models.Response, rw http.ResponseWriter) {
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.WriteHeader(statusCode)
	if response.Body != "" {
		_, _ = rw.Write([]byte(response.Body))
	}
}
