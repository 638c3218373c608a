package hcloud

import (
	"net/http"
	"strings"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/snapimage/internal/config"
	"github.com/imamik/snapimage/internal/snapshot"
)

// RealClient implements snapshot.Backend using the Hetzner Cloud API.
type RealClient struct {
	client     *hcloud.Client
	endpoint   string
	timeouts   *config.Timeouts
	httpClient *http.Client
	appName    string
	appVersion string
}

var _ snapshot.Backend = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithEndpoint sets the API endpoint. Empty keeps the public endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *RealClient) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithApplication identifies the caller in the API user agent.
func WithApplication(name, version string) ClientOption {
	return func(c *RealClient) {
		c.appName = name
		c.appVersion = version
	}
}

// WithHCloudClient sets a custom hcloud client (useful for testing).
// WithEndpoint still controls the self links reported on images.
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *RealClient) {
		c.client = hc
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		endpoint:   hcloud.Endpoint,
		timeouts:   config.LoadTimeouts(),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		hcOpts := []hcloud.ClientOption{
			hcloud.WithToken(token),
			hcloud.WithEndpoint(c.endpoint),
			hcloud.WithHTTPClient(c.httpClient),
		}
		if c.appName != "" {
			hcOpts = append(hcOpts, hcloud.WithApplication(c.appName, c.appVersion))
		}
		c.client = hcloud.NewClient(hcOpts...)
	}
	return c
}

// HCloudClient returns the underlying hcloud.Client for advanced operations.
func (c *RealClient) HCloudClient() *hcloud.Client {
	return c.client
}

// Endpoint returns the API endpoint used for image links.
func (c *RealClient) Endpoint() string {
	return c.endpoint
}
