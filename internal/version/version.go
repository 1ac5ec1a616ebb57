/*
Copyright 2025 Gosayram

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package version exposes build metadata for the credential helper.
package version

import "fmt"

// These variables are injected via -ldflags during build.
var (
	Version = "dev"     // e.g. 1.2.0
	Commit  = "none"    // short git sha
	Date    = "unknown" // build timestamp in UTC, RFC3339
)

// String returns the bare version.
func String() string {
	return Version
}

// Info returns detailed version information including commit and build date.
func Info() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild date: %s", Version, Commit, Date)
}

// Short returns a compact version string suitable for log lines.
func Short() string {
	if Version == "dev" {
		return fmt.Sprintf("%s-%s", Version, Commit)
	}
	return Version
}
