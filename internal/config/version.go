package config

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/bobmcallan/wealth-portal/internal/config.Version=...".
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Build     string `json:"build"`
	GitCommit string `json:"git_commit"`
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info returns the linker-set version fields. When the binary was built
// without ldflags, the commit and build time recorded by the Go toolchain
// are used instead.
func Info() BuildInfo {
	info := BuildInfo{Version: Version, Build: Build, GitCommit: GitCommit}
	if info.GitCommit != "unknown" && info.Build != "unknown" {
		return info
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" && s.Value != "" {
				info.GitCommit = s.Value
				if len(info.GitCommit) > 12 {
					info.GitCommit = info.GitCommit[:12]
				}
			}
		case "vcs.time":
			if info.Build == "unknown" && s.Value != "" {
				info.Build = s.Value
			}
		}
	}
	return info
}

// GetFullVersion returns version with build info.
func GetFullVersion() string {
	i := Info()
	return fmt.Sprintf("%s (build: %s, commit: %s)", i.Version, i.Build, i.GitCommit)
}
