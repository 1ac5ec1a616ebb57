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

package robot

import (
	"context"
	"reflect"

	"github.com/Gosayram/gcrauth/pkg/credentials"
	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
)

// Provider serves a fixed set of robot credentials, usually loaded from
// key files at startup.
type Provider struct {
	creds []Credentials
}

// NewProvider creates a provider serving the given robot credentials, in
// order.
func NewProvider(creds ...Credentials) *Provider {
	return &Provider{creds: creds}
}

// Applicable reports whether any held credential satisfies the requested type.
func (p *Provider) Applicable(typ reflect.Type) bool {
	for _, c := range p.creds {
		if credentials.Satisfies(reflect.TypeOf(c), typ) {
			return true
		}
	}
	return false
}

// Enabled always returns true.
func (p *Provider) Enabled(_ context.Context) bool { return true }

// Domain returns the open domain. Robot credentials are constrained by
// OAuth scope at token time, not by host, so the provider declares no
// hostname or scheme limits.
func (p *Provider) Domain() domains.Domain { return domains.Domain{} }

// Credentials returns the held credentials satisfying the requested type.
// Scope requirements are accepted as-is: a robot credential mints tokens
// for whatever scope the consumer asks, so no scope filtering applies.
func (p *Provider) Credentials(_ context.Context, typ reflect.Type, _ credentials.Authentication,
	_ []domains.Requirement) ([]credentials.Credentials, error) {
	out := []credentials.Credentials{}
	for _, c := range p.creds {
		if credentials.Satisfies(reflect.TypeOf(c), typ) {
			out = append(out, c)
		}
	}
	return out, nil
}
