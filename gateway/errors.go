package gateway

import (
	"fmt"
	"net/http"
)

// NetworkError reports a request that did not get a response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gateway: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a non-2xx response.
type ServerError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("gateway: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// GetStatus returns the HTTP status of the response.
func (e *ServerError) GetStatus() int { return e.Status }

// problem is the subset of the RFC 7807 body the API answers errors with.
type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	} `json:"errors"`
}

func (p *problem) String() string {
	s := p.Detail
	if s == "" {
		s = p.Title
	}
	for _, e := range p.Errors {
		if e.Location == "" {
			s += " (" + e.Message + ")"
		} else {
			s += " (" + e.Location + ": " + e.Message + ")"
		}
	}
	return s
}
