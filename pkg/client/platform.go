package client

// Platform is the collaborator supplied by the host plugin integration.
// It provides the configuration state and logging hooks the client needs
// without binding the SDK to any particular game-server framework.
type Platform interface {
	// Debug emits a debug-level log line.
	Debug(msg string)

	// Warning emits a warning-level log line.
	Warning(msg string)

	// Verbose reports whether raw response bodies should be logged when a
	// request fails without a service-supplied message.
	Verbose() bool

	// AnalyticsEnabled reports whether analytics has been set up for this
	// install. Session tracking is skipped while it returns false.
	AnalyticsEnabled() bool

	// PlayerExcluded reports whether the player identifier is on the
	// install's exclusion list.
	PlayerExcluded(playerID string) bool

	// Telemetry returns the operational metrics payload sent by
	// SendTelemetry. The content is defined by the host platform.
	Telemetry() any
}
