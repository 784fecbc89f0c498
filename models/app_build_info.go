// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"runtime"
)

const (
	devVersion   = "dev"
	notAvailable = "N/A"
)

// AppBuildInfo is the metadata stamped into both binaries with
// -ldflags "-X main.buildVersion=... -X main.buildDate=... -X main.buildCommit=...".
// Unstamped builds (go run, tests) report "dev" and "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

// BuildVersion returns the stamped version or "dev".
func (a AppBuildInfo) BuildVersion() string {
	return orDefault(a.version, devVersion)
}

func (a AppBuildInfo) BuildDate() string {
	return orDefault(a.date, notAvailable)
}

func (a AppBuildInfo) BuildCommit() string {
	return orDefault(a.commit, notAvailable)
}

// Stamped reports whether the binary was built with a version.
func (a AppBuildInfo) Stamped() bool {
	return a.version != ""
}

// String renders the multi-line banner printed by --version and at server start.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\nPlatform: %s/%s\n",
		a.BuildVersion(), a.BuildDate(), a.BuildCommit(), runtime.GOOS, runtime.GOARCH)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
