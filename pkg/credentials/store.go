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

	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
)

// Store is an in-memory credential store provider. Credentials are added
// in groups, each bound to the domain they are valid for; a lookup only
// sees groups whose domain accepts its requirements.
type Store struct {
	mu      sync.RWMutex
	entries []storeEntry
}

type storeEntry struct {
	domain domains.Domain
	creds  []Credentials
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add registers credentials under the given domain. Use the zero domain
// for credentials valid everywhere.
func (s *Store) Add(domain domains.Domain, creds ...Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, storeEntry{domain: domain, creds: creds})
}

// Applicable reports whether the store holds any credential of the given type.
func (s *Store) Applicable(typ reflect.Type) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		for _, c := range entry.creds {
			if Satisfies(reflect.TypeOf(c), typ) {
				return true
			}
		}
	}
	return false
}

// Enabled always returns true; the store has no runtime gating.
func (s *Store) Enabled(_ context.Context) bool { return true }

// Domain returns the open domain. Per-group domains are applied inside
// Credentials, so a store holding groups for different hosts still
// answers lookups for any of them.
func (s *Store) Domain() domains.Domain { return domains.Domain{} }

// Credentials returns stored credentials of the requested type whose
// group domain accepts the requirements, in insertion order.
func (s *Store) Credentials(_ context.Context, typ reflect.Type, _ Authentication,
	requirements []domains.Requirement) ([]Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Credentials{}
	for _, entry := range s.entries {
		if !entry.domain.Test(requirements...) {
			continue
		}
		for _, c := range entry.creds {
			if Satisfies(reflect.TypeOf(c), typ) {
				out = append(out, c)
			}
		}
	}
	return out, nil
}
