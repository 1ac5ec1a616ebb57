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

package credentials

import (
	"context"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
)

// Provider produces credentials of one or more types on demand.
type Provider interface {
	// Applicable reports whether this provider can answer lookups for
	// the given credential type. Providers that derive credentials from
	// other types through the registry must answer false for their
	// source type, or a lookup for it would re-enter the provider.
	Applicable(typ reflect.Type) bool

	// Enabled reports whether the provider is active for this call.
	Enabled(ctx context.Context) bool

	// Domain declares where this provider's credentials are usable. The
	// registry skips the provider when a lookup's requirements fall
	// outside it, before Credentials is ever called.
	Domain() domains.Domain

	// Credentials returns the provider's credentials satisfying the
	// given type and requirements, in a stable order. The returned
	// slice is never nil. Errors abort the whole lookup unchanged.
	Credentials(ctx context.Context, typ reflect.Type, auth Authentication,
		requirements []domains.Requirement) ([]Credentials, error)
}

// ErrNilCredentialType is returned when a lookup is issued without a type token.
var ErrNilCredentialType = errors.New("nil credential type requested")

// Registry dispatches credential lookups to an ordered list of providers.
// Providers are consulted in registration order, which keeps results
// deterministic when more than one provider can answer the same type.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
}

// NewRegistry creates a registry with the given providers, in order.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Register appends a provider to the lookup order.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = append(r.providers, p)
	logrus.Debugf("Registered credential provider %T at position %d", p, len(r.providers)-1)
}

// Providers returns a snapshot of the current provider order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Lookup returns all credentials of the requested type usable under the
// given requirements, concatenated across providers in registration
// order. Requirement matching happens here, against each provider's
// declared domain; providers only see lookups their domain accepts.
// A provider error aborts the lookup and is returned unchanged.
func (r *Registry) Lookup(ctx context.Context, typ reflect.Type, auth Authentication,
	requirements []domains.Requirement) ([]Credentials, error) {
	if typ == nil {
		return nil, ErrNilCredentialType
	}

	out := []Credentials{}
	for _, p := range r.Providers() {
		if !p.Applicable(typ) {
			continue
		}
		if !p.Enabled(ctx) {
			continue
		}
		if !p.Domain().Test(requirements...) {
			logrus.Debugf("Provider %T skipped: requirements %v outside its domain",
				p, domains.Kinds(requirements))
			continue
		}

		got, err := p.Credentials(ctx, typ, auth, requirements)
		if err != nil {
			return nil, err
		}
		for _, c := range got {
			if !Satisfies(reflect.TypeOf(c), typ) {
				logrus.Warnf("Provider %T returned %T for a lookup of %v, dropping it", p, c, typ)
				continue
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// LookupAs is a typed wrapper around Lookup for credential type C.
func LookupAs[C Credentials](ctx context.Context, r *Registry, auth Authentication,
	requirements []domains.Requirement) ([]C, error) {
	raw, err := r.Lookup(ctx, TypeOf[C](), auth, requirements)
	if err != nil {
		return nil, err
	}

	out := make([]C, 0, len(raw))
	for _, c := range raw {
		typed, ok := c.(C)
		if !ok {
			// Lookup already filtered by type; this guards against a
			// provider mutating results concurrently.
			return nil, errors.Errorf("credential %q has unexpected type %T", c.ID(), c)
		}
		out = append(out, typed)
	}
	return out, nil
}

// Global default registry, for processes that wire providers at startup.
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
