// Package version carries build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is when the binary was built.
	BuildDate = ""
)

// Info is the build metadata of the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current collects Info, reporting "unknown" for fields not set at link time.
func Current() Info {
	return Info{
		Version:   Version,
		Commit:    orUnknown(Commit),
		BuildDate: orUnknown(BuildDate),
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String is the one-line form used in logs and the API.
func (i Info) String() string {
	return fmt.Sprintf("aiagent %s (commit %s, built %s)", i.Version, i.Commit, i.BuildDate)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
