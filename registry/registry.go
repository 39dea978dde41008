// Package registry implements the subset of the Docker Registry v2 API
// needed to enumerate repositories and tags and to delete image manifests.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/go-connections/tlsconfig"
)

// Registry is a client for a single registry endpoint.
type Registry struct {
	URL      string
	Domain   string
	Username string
	Password string
	Client   *http.Client
	Opt      Opt
}

var reProtocol = regexp.MustCompile("^https?://")
var debug = false

// Opt holds the options for a new registry.
type Opt struct {
	Domain    string
	VerifySSL bool
	DryRun    bool
	Debug     bool
	Timeout   time.Duration
	Headers   map[string]string
}

// New creates a Registry client for the given endpoint and credentials.
// Certificate verification is off unless VerifySSL is set, since in-cluster
// registries commonly run with self-signed certificates. Each client owns
// its own transport, so the verification policy never leaks between
// instances.
func New(auth types.AuthConfig, opt Opt) (*Registry, error) {
	tlsClientConfig, err := tlsconfig.Client(tlsconfig.Options{
		InsecureSkipVerify: !opt.VerifySSL,
	})
	if err != nil {
		return nil, err
	}
	transport := &http.Transport{
		TLSClientConfig: tlsClientConfig,
	}

	return newFromTransport(auth, transport, opt)
}

func newFromTransport(auth types.AuthConfig, transport http.RoundTripper, opt Opt) (*Registry, error) {
	if opt.Debug {
		debug = true
	}
	if opt.Domain == "" {
		opt.Domain = auth.ServerAddress
	}

	endpoint := strings.TrimSuffix(opt.Domain, "/")
	if !reProtocol.MatchString(endpoint) {
		endpoint = "https://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid registry URL %q: missing host", endpoint)
	}

	basicAuthTransport := &BasicTransport{
		Transport: transport,
		Username:  auth.Username,
		Password:  auth.Password,
	}
	customTransport := &CustomTransport{
		Transport: basicAuthTransport,
		Headers:   opt.Headers,
	}

	registry := &Registry{
		URL:    endpoint,
		Domain: reProtocol.ReplaceAllString(endpoint, ""),
		Client: &http.Client{
			Timeout:   opt.Timeout,
			Transport: customTransport,
		},
		Username: auth.Username,
		Password: auth.Password,
		Opt:      opt,
	}

	return registry, nil
}

// url returns a registry URL with the passed arguments concatenated.
func (r *Registry) url(pathTemplate string, args ...interface{}) string {
	pathSuffix := fmt.Sprintf(pathTemplate, args...)
	return fmt.Sprintf("%s%s", r.URL, pathSuffix)
}

// Ping checks connectivity against the v2 API base endpoint.
func (r *Registry) Ping(ctx context.Context) error {
	resp, err := r.httpGet(ctx, r.url("/v2/"), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
