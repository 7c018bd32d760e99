// Package version reports build metadata stamped in with -ldflags
package version

// BuildInfo is the build metadata served by /meta/version
type BuildInfo struct {
	Service string `json:"service" example:"socialnorm-api"`
	Version string `json:"version" example:"v0.3.0"`
	Commit  string `json:"commit" example:"1f2e3d4"`
	Date    string `json:"date" example:"2026-10-19"`
}

// Set via -ldflags "-X 'socialnorm/internal/core/version.version=v0.3.0'
// -X 'socialnorm/internal/core/version.commit=1f2e3d4' -X 'socialnorm/internal/core/version.date=2026-10-19'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build metadata for service
func Info(service string) BuildInfo {
	if service == "" {
		service = "socialnorm"
	}
	return BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
}

// Short is "<version> (<commit>)", used in user agents and client info
func Short() string { return version + " (" + commit + ")" }
