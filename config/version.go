package config

// Set with -ldflags "-X github.com/nxtrace/NShor/config.Version=..."
var (
	Version   = "v0.1.0"
	BuildDate = ""
	CommitID  = ""
)
