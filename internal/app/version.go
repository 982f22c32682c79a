package app

// Version information, injected at build time.
var (
	Version   string = "1.2.0"
	GitTag    string = "dev"
	BuildTime string = "1970-01-01T00:00:00Z"
)

const (
	// Name is the application name.
	Name = "Collab Event Service"
)
