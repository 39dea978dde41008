package registry

import (
	"net/http"
)

// BasicTransport attaches basic auth credentials to every request.
// Credentials are only attached when both username and password are set.
type BasicTransport struct {
	Transport http.RoundTripper
	Username  string
	Password  string
}

// RoundTrip implements http.RoundTripper.
func (t *BasicTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Username != "" && t.Password != "" {
		req.SetBasicAuth(t.Username, t.Password)
	}
	return t.Transport.RoundTrip(req)
}

// CustomTransport sets additional headers on every request.
type CustomTransport struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *CustomTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for key, value := range t.Headers {
		req.Header.Set(key, value)
	}
	return t.Transport.RoundTrip(req)
}
