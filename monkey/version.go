package monkey

// Set at link time:
//
//	go build -ldflags "-X github.com/daios-ai/monkey/monkey.Version=v1.2.3 -X github.com/daios-ai/monkey/monkey.BuildDate=2026-01-02"
var (
	Version   = "v0.1.0-dev"
	BuildDate = "unknown"
)
