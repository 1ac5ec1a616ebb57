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
	"context"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/Gosayram/gcrauth/pkg/retry"
	"github.com/Gosayram/gcrauth/pkg/robot"
)

// TokenUsername is the username Container Registry accepts alongside an
// OAuth access token.
const TokenUsername = "oauth2accesstoken"

// Module is the conversion context a Container Registry credential is
// produced with. Two credentials wrapping the same robot identity with
// equal modules are interchangeable.
type Module struct {
	// Registry is the registry host the credential authenticates to.
	Registry string
}

// DefaultModule returns the module for the primary Container Registry host.
func DefaultModule() Module {
	return Module{Registry: "gcr.io"}
}

// Identity returns the identity the wrapped credential is known by.
func (m Module) Identity(source robot.Credentials) string {
	return source.ID()
}

// Credential is a Container Registry credential derived from a robot
// credential. It presents as a username/password pair whose password is
// a fresh OAuth access token under the registry storage scope.
type Credential struct {
	id     string
	module Module
	source robot.Credentials

	group singleflight.Group
}

// NewCredential wraps a robot credential for Container Registry use.
func NewCredential(source robot.Credentials, module Module) (*Credential, error) {
	if source == nil {
		return nil, errors.New("nil robot credential")
	}
	id := module.Identity(source)
	if id == "" {
		return nil, errors.New("robot credential has empty id")
	}

	return &Credential{
		id:     id,
		module: module,
		source: source,
	}, nil
}

// ID returns the wrapped robot identity.
func (c *Credential) ID() string { return c.id }

// Module returns the conversion context this credential was produced with.
func (c *Credential) Module() Module { return c.module }

// Name returns a human-readable credential name.
func (c *Credential) Name() string {
	return c.id + " Container Registry Account"
}

// Username returns the fixed token username.
func (c *Credential) Username() string { return TokenUsername }

// Password returns a fresh access token for the registry storage scope.
// Concurrent callers share one token exchange; transient exchange
// failures are retried with backoff.
func (c *Credential) Password(ctx context.Context) (string, error) {
	v, err, _ := c.group.Do("token", func() (interface{}, error) {
		ts, err := c.source.TokenSource(ctx, ScopeRequirement())
		if err != nil {
			return nil, err
		}
		return retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*oauth2.Token, error) {
			return ts.Token()
		})
	})
	if err != nil {
		return "", errors.Wrapf(err, "fetching access token for %s", c.id)
	}
	return v.(*oauth2.Token).AccessToken, nil
}

// Authorization implements authn.Authenticator for registry clients.
func (c *Credential) Authorization() (*authn.AuthConfig, error) {
	password, err := c.Password(context.Background())
	if err != nil {
		return nil, err
	}
	return &authn.AuthConfig{
		Username: c.Username(),
		Password: password,
	}, nil
}

// Equal reports whether both credentials wrap the same robot identity
// with the same conversion context.
func (c *Credential) Equal(o *Credential) bool {
	return o != nil && c.id == o.id && c.module == o.module
}
