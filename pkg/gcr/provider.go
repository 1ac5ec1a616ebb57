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

// Package gcr produces Google Container Registry credentials by
// converting robot credentials looked up through a shared credential
// registry. The provider in this package both answers lookups from a
// registry and issues a lookup into the same registry, so the source and
// target credential types must never overlap; see the type assertions in
// the tests.
package gcr

import (
	"context"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/Gosayram/gcrauth/pkg/credentials"
	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
	"github.com/Gosayram/gcrauth/pkg/robot"
)

// credentialType is the only concrete type this provider produces.
var credentialType = reflect.TypeOf(&Credential{})

// Provider converts robot credentials into Container Registry
// credentials on demand. It holds no per-call state and is safe for
// concurrent use.
type Provider struct {
	registry   *credentials.Registry
	module     Module
	extraHosts []string
}

// NewProvider creates a provider that fetches robot credentials through
// the given registry and wraps them with the given module. Extra hosts
// widen the provider's domain beyond the default registry set.
func NewProvider(registry *credentials.Registry, module Module, extraHosts ...string) *Provider {
	return &Provider{registry: registry, module: module, extraHosts: extraHosts}
}

// Applicable reports whether a request for typ can be answered with a
// *Credential. Requests for the robot source type answer false here,
// which is what breaks the recursion: the lookup this provider issues
// below goes through the same registry that dispatched to it.
func (p *Provider) Applicable(typ reflect.Type) bool {
	return credentials.Satisfies(credentialType, typ)
}

// Enabled always returns true.
func (p *Provider) Enabled(_ context.Context) bool { return true }

// Domain declares the Container Registry hosts over https. Lookups whose
// requirements fall outside it (a different host, or a non-https scheme)
// are rejected by the registry before this provider runs, so no robot
// lookup happens for them.
func (p *Provider) Domain() domains.Domain {
	hosts := p.extraHosts
	if p.module.Registry != "" {
		hosts = append([]string{p.module.Registry}, hosts...)
	}
	return registryDomain(hosts...)
}

// Credentials converts each robot credential visible under the registry
// storage scope into a Container Registry credential, preserving order.
//
// The caller's requirements are deliberately not forwarded: hostname and
// scheme constraints are properties of the target registry, already
// enforced against Domain above. The robot lookup sees exactly one
// requirement, the storage scope.
func (p *Provider) Credentials(ctx context.Context, typ reflect.Type, auth credentials.Authentication,
	_ []domains.Requirement) ([]credentials.Credentials, error) {
	if !p.Applicable(typ) {
		// Fast exit: no robot lookup for types we do not produce.
		return []credentials.Credentials{}, nil
	}

	scoped := []domains.Requirement{ScopeRequirement()}
	sources, err := credentials.LookupAs[robot.Credentials](ctx, p.registry, auth, scoped)
	if err != nil {
		return nil, err
	}

	out := make([]credentials.Credentials, 0, len(sources))
	for _, source := range sources {
		converted, err := NewCredential(source, p.module)
		if err != nil {
			// A malformed source credential points at misconfiguration;
			// do not paper over it by skipping.
			return nil, err
		}
		out = append(out, converted)
	}
	logrus.Debugf("Converted %d robot credential(s) for %v", len(out), typ)
	return out, nil
}
