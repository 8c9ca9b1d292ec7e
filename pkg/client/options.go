package client

import "time"

// Option configures optional behavior of the Client.
type Option func(*options)

// options holds the optional configuration for a Client.
type options struct {
	baseURL         string
	httpClient      HTTPClient
	timeout         time.Duration
	insecureTestTLS bool
}

func defaultOptions() options {
	return options{timeout: defaultTimeout}
}

// WithBaseURL overrides the API base URL. Takes precedence over the
// FORGEMETRICS_ANALYTICS_URL environment variable and the built-in default.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithHTTPClient sets a custom transport for API communication. When set,
// WithTimeout and WithInsecureTestTLS have no effect.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTimeout sets the request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithInsecureTestTLS disables certificate verification for the default
// transport, but only when the resolved base URL points at a .test
// hostname. The option is ignored with a warning for any other host, so it
// can never weaken a production connection.
func WithInsecureTestTLS() Option {
	return func(o *options) { o.insecureTestTLS = true }
}
