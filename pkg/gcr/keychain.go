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

	"github.com/Gosayram/gcrauth/pkg/credentials"
	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
)

// Keychain resolves registry hosts to authenticators through a
// credential registry. It satisfies authn.Keychain so registry clients
// can consume converted credentials directly.
type Keychain struct {
	registry *credentials.Registry
	auth     credentials.Authentication
}

// NewKeychain creates a keychain backed by the given registry, looking
// up credentials under the system identity.
func NewKeychain(registry *credentials.Registry) *Keychain {
	return &Keychain{registry: registry, auth: credentials.SystemAuthentication}
}

// Resolve returns an authenticator for the target registry, or
// authn.Anonymous when no credential covers it.
func (k *Keychain) Resolve(target authn.Resource) (authn.Authenticator, error) {
	creds, err := k.lookup(context.Background(), target.RegistryStr())
	if err != nil {
		return nil, err
	}

	for _, c := range creds {
		if a, ok := c.(authn.Authenticator); ok {
			return a, nil
		}
		password, err := c.Password(context.Background())
		if err != nil {
			return nil, err
		}
		return authn.FromConfig(authn.AuthConfig{
			Username: c.Username(),
			Password: password,
		}), nil
	}
	return authn.Anonymous, nil
}

func (k *Keychain) lookup(ctx context.Context, host string) ([]credentials.UsernamePasswordCredentials, error) {
	reqs := []domains.Requirement{
		&domains.HostnameRequirement{Hostname: host},
		&domains.SchemeRequirement{Scheme: "https"},
	}
	return credentials.LookupAs[credentials.UsernamePasswordCredentials](ctx, k.registry, k.auth, reqs)
}
