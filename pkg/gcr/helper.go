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
	"errors"
	"net/url"
	"strings"

	dockercreds "github.com/docker/docker-credential-helpers/credentials"

	"github.com/Gosayram/gcrauth/pkg/credentials"
	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
)

// Helper adapts a credential registry to the docker credential helper
// protocol. Credentials are produced by the registry's providers, so the
// helper is read-only: Add and Delete are unsupported.
type Helper struct {
	registry *credentials.Registry
	auth     credentials.Authentication
	hosts    []string
}

// NewHelper creates a helper over the given registry. The hosts list is
// what List reports; Get answers for any host the registry covers.
func NewHelper(registry *credentials.Registry, hosts []string) *Helper {
	if len(hosts) == 0 {
		hosts = DefaultRegistries
	}
	return &Helper{
		registry: registry,
		auth:     credentials.SystemAuthentication,
		hosts:    hosts,
	}
}

// Add is not supported; credentials come from providers, not writes.
func (h *Helper) Add(_ *dockercreds.Credentials) error {
	return errors.New("unsupported operation")
}

// Delete is not supported.
func (h *Helper) Delete(_ string) error {
	return errors.New("unsupported operation")
}

// Get returns the username and secret for a server URL.
func (h *Helper) Get(serverURL string) (string, string, error) {
	host := hostOf(serverURL)
	if host == "" {
		return "", "", dockercreds.NewErrCredentialsNotFound()
	}

	ctx := context.Background()
	reqs := []domains.Requirement{
		&domains.HostnameRequirement{Hostname: host},
		&domains.SchemeRequirement{Scheme: "https"},
	}
	creds, err := credentials.LookupAs[credentials.UsernamePasswordCredentials](ctx, h.registry, h.auth, reqs)
	if err != nil {
		return "", "", err
	}
	if len(creds) == 0 {
		return "", "", dockercreds.NewErrCredentialsNotFound()
	}

	password, err := creds[0].Password(ctx)
	if err != nil {
		return "", "", err
	}
	return creds[0].Username(), password, nil
}

// List returns the configured hosts that currently resolve to a
// credential, keyed by server URL.
func (h *Helper) List() (map[string]string, error) {
	out := map[string]string{}
	for _, host := range h.hosts {
		username, _, err := h.Get(host)
		if err != nil {
			if dockercreds.IsErrCredentialsNotFound(err) {
				continue
			}
			return nil, err
		}
		out["https://"+host] = username
	}
	return out, nil
}

// hostOf extracts the hostname from a server URL as docker clients send
// it: either a bare host, or a URL with scheme and optional path.
func hostOf(serverURL string) string {
	if serverURL == "" {
		return ""
	}
	if strings.Contains(serverURL, "://") {
		u, err := url.Parse(serverURL)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	host, _, _ := strings.Cut(serverURL, "/")
	host, _, _ = strings.Cut(host, ":")
	return host
}
