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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
)

// recordedCall captures what a lookup asked a provider for. Requirement
// sets are recorded by kind composition, matching how they are compared.
type recordedCall struct {
	typ   reflect.Type
	kinds []string
}

// fakeProvider is a scriptable provider that records the calls it receives.
type fakeProvider struct {
	applicable func(typ reflect.Type) bool
	enabled    bool
	domain     domains.Domain
	serve      func(typ reflect.Type) ([]Credentials, error)

	calls []recordedCall
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		applicable: func(reflect.Type) bool { return true },
		enabled:    true,
		serve: func(reflect.Type) ([]Credentials, error) {
			return []Credentials{}, nil
		},
	}
}

func (p *fakeProvider) Applicable(typ reflect.Type) bool { return p.applicable(typ) }

func (p *fakeProvider) Enabled(_ context.Context) bool { return p.enabled }

func (p *fakeProvider) Domain() domains.Domain { return p.domain }

func (p *fakeProvider) Credentials(_ context.Context, typ reflect.Type, _ Authentication,
	requirements []domains.Requirement) ([]Credentials, error) {
	p.calls = append(p.calls, recordedCall{typ: typ, kinds: domains.Kinds(requirements)})
	return p.serve(typ)
}

func static(id string) *StaticUsernamePassword {
	return &StaticUsernamePassword{CredentialID: id, User: "user", Secret: "secret"}
}

func ids(creds []Credentials) []string {
	out := make([]string, 0, len(creds))
	for _, c := range creds {
		out = append(out, c.ID())
	}
	return out
}

func TestLookupNilType(t *testing.T) {
	registry := NewRegistry(newFakeProvider())

	_, err := registry.Lookup(context.Background(), nil, SystemAuthentication, nil)
	assert.ErrorIs(t, err, ErrNilCredentialType)
}

func TestLookupFollowsRegistrationOrder(t *testing.T) {
	first := newFakeProvider()
	first.serve = func(reflect.Type) ([]Credentials, error) {
		return []Credentials{static("a"), static("b")}, nil
	}
	second := newFakeProvider()
	second.serve = func(reflect.Type) ([]Credentials, error) {
		return []Credentials{static("c")}, nil
	}

	registry := NewRegistry(first)
	registry.Register(second)

	got, err := registry.Lookup(context.Background(), TypeOf[UsernamePasswordCredentials](),
		SystemAuthentication, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestLookupSkipsProviders(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *fakeProvider)
	}{
		{
			name: "not applicable",
			setup: func(p *fakeProvider) {
				p.applicable = func(reflect.Type) bool { return false }
			},
		},
		{
			name: "not enabled",
			setup: func(p *fakeProvider) {
				p.enabled = false
			},
		},
		{
			name: "requirements outside domain",
			setup: func(p *fakeProvider) {
				p.domain = domains.New(&domains.SchemeSpecification{Schemes: []string{"https"}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakeProvider()
			p.serve = func(reflect.Type) ([]Credentials, error) {
				return []Credentials{static("hidden")}, nil
			}
			tt.setup(p)
			registry := NewRegistry(p)

			reqs := []domains.Requirement{&domains.SchemeRequirement{Scheme: "ssh"}}
			got, err := registry.Lookup(context.Background(), TypeOf[UsernamePasswordCredentials](),
				SystemAuthentication, reqs)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Empty(t, p.calls, "skipped provider must not be invoked")
		})
	}
}

func TestLookupPropagatesProviderError(t *testing.T) {
	boom := errors.New("store unavailable")
	p := newFakeProvider()
	p.serve = func(reflect.Type) ([]Credentials, error) {
		return nil, boom
	}
	registry := NewRegistry(p)

	_, err := registry.Lookup(context.Background(), TypeOf[UsernamePasswordCredentials](),
		SystemAuthentication, nil)
	assert.Equal(t, boom, err, "provider errors must propagate unchanged")
}

// bareCredential satisfies Credentials but nothing broader.
type bareCredential struct{ id string }

func (c *bareCredential) ID() string { return c.id }

func TestLookupDropsWrongTypedResults(t *testing.T) {
	p := newFakeProvider()
	p.serve = func(reflect.Type) ([]Credentials, error) {
		return []Credentials{&bareCredential{id: "bare"}, static("typed")}, nil
	}
	registry := NewRegistry(p)

	got, err := registry.Lookup(context.Background(), TypeOf[UsernamePasswordCredentials](),
		SystemAuthentication, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"typed"}, ids(got))
}

func TestLookupAs(t *testing.T) {
	p := newFakeProvider()
	p.serve = func(reflect.Type) ([]Credentials, error) {
		return []Credentials{static("foo"), static("bar")}, nil
	}
	registry := NewRegistry(p)

	got, err := LookupAs[UsernamePasswordCredentials](context.Background(), registry,
		SystemAuthentication, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "foo", got[0].ID())
	assert.Equal(t, "user", got[0].Username())
}

func TestSatisfies(t *testing.T) {
	staticType := reflect.TypeOf(&StaticUsernamePassword{})
	bareType := reflect.TypeOf(&bareCredential{})

	tests := []struct {
		name string
		t    reflect.Type
		typ  reflect.Type
		want bool
	}{
		{"identical concrete types", staticType, staticType, true},
		{"different concrete types", staticType, bareType, false},
		{"implemented interface", staticType, TypeOf[UsernamePasswordCredentials](), true},
		{"base interface", bareType, TypeOf[Credentials](), true},
		{"unimplemented interface", bareType, TypeOf[UsernamePasswordCredentials](), false},
		{"nil type", nil, staticType, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfies(tt.t, tt.typ))
		})
	}
}

func TestProvidersSnapshot(t *testing.T) {
	first := newFakeProvider()
	second := newFakeProvider()
	registry := NewRegistry(first)
	registry.Register(second)

	providers := registry.Providers()
	require.Len(t, providers, 2)
	assert.Same(t, first, providers[0].(*fakeProvider))
	assert.Same(t, second, providers[1].(*fakeProvider))
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
