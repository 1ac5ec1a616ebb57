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

package gcr

import (
	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
	"github.com/Gosayram/gcrauth/pkg/robot"
)

const (
	// StorageReadWriteScope is the OAuth scope Container Registry uses
	// for push and pull access.
	StorageReadWriteScope = "https://www.googleapis.com/auth/devstorage.read_write"
	// StorageReadOnlyScope covers pull-only access.
	StorageReadOnlyScope = "https://www.googleapis.com/auth/devstorage.read_only"
)

// DefaultRegistries are the Container Registry hosts credentials are
// produced for when no explicit host is configured.
var DefaultRegistries = []string{
	"gcr.io",
	"us.gcr.io",
	"eu.gcr.io",
	"asia.gcr.io",
	"marketplace.gcr.io",
}

// ScopeRequirement returns the single requirement forwarded to the robot
// credential lookup in place of the caller's requirements. Hostname and
// scheme constraints describe the target registry, not the robot
// account, so only the scope constraint crosses the conversion boundary.
func ScopeRequirement() *robot.OAuthScopeRequirement {
	return &robot.OAuthScopeRequirement{Scopes: []string{StorageReadWriteScope}}
}

// registryDomain is the domain Container Registry credentials are valid
// for: the known registry hosts (plus Artifact Registry domains) over
// https only.
func registryDomain(extraHosts ...string) domains.Domain {
	includes := make([]string, 0, len(DefaultRegistries)+len(extraHosts)+1)
	includes = append(includes, DefaultRegistries...)
	includes = append(includes, "*.pkg.dev")
	includes = append(includes, extraHosts...)

	return domains.New(
		&domains.HostnameSpecification{Includes: includes},
		&domains.SchemeSpecification{Schemes: []string{"https"}},
	)
}
