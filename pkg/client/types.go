package client

import "time"

// PlatformType identifies the game-server platform a plugin build targets.
// It selects the download asset in PluginVersion responses.
type PlatformType string

// Supported platform types.
const (
	PlatformBukkit     PlatformType = "bukkit"
	PlatformBungeeCord PlatformType = "bungeecord"
	PlatformVelocity   PlatformType = "velocity"
	PlatformFabric     PlatformType = "fabric"
	PlatformForge      PlatformType = "forge"
)

// ConnectionType distinguishes how a player connected to the server.
type ConnectionType string

// Supported connection types.
const (
	ConnectionJava    ConnectionType = "java"
	ConnectionBedrock ConnectionType = "bedrock"
)

// PlayerSession describes a single player visit. The caller owns the
// lifecycle: construct it on join, call Logout on quit, then hand it to
// Client.TrackPlayerSession, which only serializes and sends it.
type PlayerSession struct {
	ID              string         `json:"uuid"`
	Name            string         `json:"name"`
	Type            ConnectionType `json:"type"`
	DurationSeconds int64          `json:"duration"`
	IPAddress       string         `json:"ip_address"`
	JoinedAt        time.Time      `json:"joined_at"`
	FirstJoinedAt   time.Time      `json:"first_joined_at"`
	QuitAt          *time.Time     `json:"quit_at,omitempty"`
}

// Logout finalizes the session at the given time, recording the quit
// timestamp and the played duration in seconds.
func (s *PlayerSession) Logout(at time.Time) {
	quit := at.UTC()
	s.QuitAt = &quit
	s.DurationSeconds = int64(quit.Sub(s.JoinedAt) / time.Second)
}

// Event is a discrete trackable occurrence. Events are caller-constructed
// and sent as an ordered batch via Client.SendEvents.
type Event struct {
	Name     string         `json:"name"`
	Origin   string         `json:"origin,omitempty"`
	PlayerID string         `json:"player_uuid,omitempty"`
	SentAt   time.Time      `json:"sent_at"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PluginInformation describes the latest published plugin build, with the
// download URL already resolved for the requested platform type.
type PluginInformation struct {
	VersionName string
	Incremental int
	DownloadURL string
}

// ServerInformation is the service-side record for this game server.
type ServerInformation struct {
	ID        string    `json:"uuid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
