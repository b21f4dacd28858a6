package config

import (
	"runtime/debug"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestInfo_DefaultsWithoutBuildInfo(t *testing.T) {
	withBuildInfo(t, nil)

	got := Info()
	want := BuildInfo{Version: "dev", Build: "unknown", GitCommit: "unknown"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if fv := GetFullVersion(); fv != "dev (build: unknown, commit: unknown)" {
		t.Errorf("unexpected full version %q", fv)
	}
}

func TestInfo_FallsBackToVCSSettings(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T08:00:00Z"},
		},
	})

	got := Info()
	if got.Version != "v1.2.0" {
		t.Errorf("expected module version, got %s", got.Version)
	}
	if got.GitCommit != "0123456789ab" {
		t.Errorf("expected short revision, got %s", got.GitCommit)
	}
	if got.Build != "2026-10-01T08:00:00Z" {
		t.Errorf("expected vcs time, got %s", got.Build)
	}
}

func TestInfo_LinkerValuesWin(t *testing.T) {
	origV, origB, origC := Version, Build, GitCommit
	Version, Build, GitCommit = "1.0.0", "2026-09-30", "abc123"
	t.Cleanup(func() { Version, Build, GitCommit = origV, origB, origC })
	withBuildInfo(t, &debug.BuildInfo{
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	})

	got := Info()
	want := BuildInfo{Version: "1.0.0", Build: "2026-09-30", GitCommit: "abc123"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestInfo_DevelModuleVersionIgnored(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if got := Info().Version; got != "dev" {
		t.Errorf("expected dev, got %s", got)
	}
}
