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

// Package robot implements Google service account ("robot") credentials.
// A robot credential does not carry a usable secret itself; it mints
// OAuth access tokens on demand for whatever scope the consumer asks
// for, which is how derived credentials such as Container Registry
// credentials are backed.
package robot

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Gosayram/gcrauth/pkg/credentials"
)

// OAuthScopeRequirement restricts a lookup to credentials able to mint
// tokens for the given OAuth scopes.
type OAuthScopeRequirement struct {
	Scopes []string
}

// Kind returns the requirement kind tag.
func (r *OAuthScopeRequirement) Kind() string { return "oauth-scope" }

// Credentials is a Google robot account credential.
//
// Note the deliberate shape: there is no Password method, so a robot
// credential never satisfies credentials.UsernamePasswordCredentials.
// Providers that derive username/password credentials from robot
// credentials rely on the two types staying non-overlapping to keep
// registry lookups from re-entering themselves.
type Credentials interface {
	credentials.Credentials

	// Username returns the service account identity, typically its email.
	Username() string

	// ProjectID returns the cloud project the robot account belongs to.
	ProjectID() string

	// TokenSource returns an OAuth token source for the given scope
	// requirement. The requirement must name at least one scope.
	TokenSource(ctx context.Context, req *OAuthScopeRequirement) (oauth2.TokenSource, error)
}

// ErrNoScopes is returned when a token source is requested without scopes.
var ErrNoScopes = errors.New("scope requirement names no scopes")

// serviceAccountKey is the subset of a service account JSON key we need.
type serviceAccountKey struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

// ServiceAccountCredentials is a robot credential backed by a service
// account JSON key.
type ServiceAccountCredentials struct {
	id        string
	email     string
	projectID string
	key       []byte
}

// NewServiceAccountCredentials parses a service account JSON key into a
// robot credential. The id may be empty, in which case the service
// account email is used.
func NewServiceAccountCredentials(id string, key []byte) (*ServiceAccountCredentials, error) {
	var parsed serviceAccountKey
	if err := json.Unmarshal(key, &parsed); err != nil {
		return nil, errors.Wrap(err, "parsing service account key")
	}
	if parsed.Type != "service_account" {
		return nil, errors.Errorf("unexpected key type %q, want \"service_account\"", parsed.Type)
	}
	if parsed.ClientEmail == "" {
		return nil, errors.New("service account key has no client_email")
	}

	if id == "" {
		id = parsed.ClientEmail
	}
	return &ServiceAccountCredentials{
		id:        id,
		email:     parsed.ClientEmail,
		projectID: parsed.ProjectID,
		key:       key,
	}, nil
}

// LoadServiceAccountKey reads a service account JSON key from the given
// filesystem and returns the robot credential it describes.
func LoadServiceAccountKey(fs afero.Fs, path string) (*ServiceAccountCredentials, error) {
	key, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading service account key %s", path)
	}
	return NewServiceAccountCredentials("", key)
}

// ID returns the credential identifier.
func (c *ServiceAccountCredentials) ID() string { return c.id }

// Username returns the service account email.
func (c *ServiceAccountCredentials) Username() string { return c.email }

// ProjectID returns the project the service account belongs to.
func (c *ServiceAccountCredentials) ProjectID() string { return c.projectID }

// TokenSource builds a JWT-based token source for the requested scopes.
func (c *ServiceAccountCredentials) TokenSource(ctx context.Context,
	req *OAuthScopeRequirement) (oauth2.TokenSource, error) {
	if req == nil || len(req.Scopes) == 0 {
		return nil, ErrNoScopes
	}

	cfg, err := google.JWTConfigFromJSON(c.key, req.Scopes...)
	if err != nil {
		return nil, errors.Wrapf(err, "building token source for %s", c.id)
	}
	return cfg.TokenSource(ctx), nil
}
