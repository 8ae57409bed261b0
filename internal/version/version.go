package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the cppts CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Pretty colors the major, minor and patch parts of Version.
// Anything that is not MAJOR.MINOR.PATCH[-suffix] is returned unchanged.
func Pretty() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Info is the build metadata printed by `cppts version`.
type Info struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// Describe returns Info with the optional fields filled as requested.
// Unset build values read as "unknown".
func Describe(withCommit, withDate bool) Info {
	info := Info{Tool: "cppts", Version: strings.TrimSpace(Version)}
	if withCommit {
		info.GitCommit = orUnknown(GitCommit)
	}
	if withDate {
		info.BuildDate = orUnknown(BuildDate)
	}
	return info
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "unknown"
}
