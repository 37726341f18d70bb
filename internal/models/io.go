// Package models provides the transient data structures for handling dispatch requests and responses.
package models

// Request represents an incoming client request containing the HTTP method, a body and associated headers.
type Request struct {
	Method  string
	Body    string
	Headers map[string]string
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}
