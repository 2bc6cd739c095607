// Package misc holds build identity values shared by binaries and logging.
package misc

import "runtime/debug"

// Build information. Overridden at link time via -ldflags.
var (
	appName    = "capc"
	appVersion = "development"
	gitHash    = ""
)

// GetAppName returns short program name used for temporary files, logs and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return appVersion
}

// GetGitHash returns git revision the program was built from.
func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
