package agentmesh

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/agentmesh/agentmesh-mcp/internal/config"
)

// Option configures a Server using the functional options pattern.
type Option func(*serverOptions)

type serverOptions struct {
	logger      *slog.Logger
	registryURL string
	httpClient  *http.Client
	heartbeat   time.Duration
	version     string
}

func applyOptions(opts []Option) *serverOptions {
	options := &serverOptions{
		logger:      NopLogger(),
		registryURL: config.DefaultRegistryURL,
		version:     Version,
	}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

// WithRegistryURL overrides the registry base URL. A trailing slash is
// not expected; endpoints are appended verbatim.
func WithRegistryURL(url string) Option {
	return func(o *serverOptions) {
		o.registryURL = url
	}
}

// WithHTTPClient supplies a custom HTTP client, e.g. one with a timeout.
// By default requests have no client-side timeout; cancellation comes from
// the tool call's context.
func WithHTTPClient(client *http.Client) Option {
	return func(o *serverOptions) {
		o.httpClient = client
	}
}

// WithHeartbeat enables the background presence keepalive loop at the
// given interval once a registration succeeds. Zero or negative disables
// the loop, leaving heartbeat cadence to the caller.
func WithHeartbeat(interval time.Duration) Option {
	return func(o *serverOptions) {
		o.heartbeat = interval
	}
}

// WithVersion overrides the version string reported during MCP initialize.
func WithVersion(version string) Option {
	return func(o *serverOptions) {
		o.version = version
	}
}
