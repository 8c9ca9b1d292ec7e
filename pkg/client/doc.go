// Package client implements the ForgeMetrics analytics API client.
//
// The client reports game-server analytics (player sessions, heartbeats,
// telemetry, event batches) to the analytics service over HTTPS and
// retrieves plugin and server metadata. Every operation runs on its own
// goroutine and returns a future, so callers are never blocked on network
// I/O.
//
// # Usage
//
// Construct a client with the host platform integration and the server's
// secret key:
//
//	c := client.New(myPlatform, "secret-key")
//
//	ok, err := c.TrackHeartbeat(ctx, playerCount).Wait(ctx)
//	if err != nil {
//	    return err
//	}
//
// # Errors
//
// Failures map onto a small taxonomy: ErrNotConfigured, ErrNotFound and
// ErrRateLimited sentinels, *ResponseError for other non-2xx statuses and
// *TransportError for I/O failures. Check them with errors.Is / errors.As.
//
// The client never retries; a failed attempt surfaces immediately and the
// caller owns any retry policy.
package client
