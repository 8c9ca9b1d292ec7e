// Package analytics provides the ForgeMetrics client SDK for game-server
// plugins. It reports player sessions, heartbeats, telemetry and event
// batches to the analytics service and retrieves plugin/server metadata.
//
// Example usage:
//
//	c := analytics.New(myPlatform, "secret-key")
//
//	if ok, err := c.TrackHeartbeat(ctx, playerCount).Wait(ctx); err != nil {
//	    log.Fatal(err)
//	} else if !ok {
//	    log.Print("heartbeat rejected")
//	}
//
// The SDK pieces live in sub-packages (pkg/client, pkg/future, pkg/log);
// this package re-exports the common surface for convenient access.
package analytics

import "github.com/forgemetrics/analytics-go/pkg/client"

// Client issues authenticated requests to the analytics service.
type Client = client.Client

// Platform is the collaborator supplied by the host plugin integration.
type Platform = client.Platform

// Option configures optional behavior of the Client.
type Option = client.Option

// Data model types, re-exported from pkg/client.
type (
	PlayerSession     = client.PlayerSession
	Event             = client.Event
	PluginInformation = client.PluginInformation
	ServerInformation = client.ServerInformation
	PlatformType      = client.PlatformType
	ConnectionType    = client.ConnectionType
)

// Error taxonomy, re-exported from pkg/client.
var (
	ErrNotConfigured = client.ErrNotConfigured
	ErrNotFound      = client.ErrNotFound
	ErrRateLimited   = client.ErrRateLimited
)

type (
	// ResponseError reports a non-2xx status with an optional message.
	ResponseError = client.ResponseError

	// TransportError reports an I/O failure with no usable response.
	TransportError = client.TransportError
)

// New creates a Client for the given platform integration.
func New(platform Platform, secretKey string, opts ...Option) *Client {
	return client.New(platform, secretKey, opts...)
}

// DefaultBaseURL is the production analytics endpoint.
const DefaultBaseURL = client.DefaultBaseURL

// Option constructors, re-exported from pkg/client.
var (
	WithBaseURL         = client.WithBaseURL
	WithHTTPClient      = client.WithHTTPClient
	WithTimeout         = client.WithTimeout
	WithInsecureTestTLS = client.WithInsecureTestTLS
)
