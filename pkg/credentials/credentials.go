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

// Package credentials implements a pluggable credential lookup framework.
// Providers register with a Registry and answer lookups for credential
// types they can produce; callers request credentials by type token plus
// a set of domain requirements describing where the credential will be
// used. Providers may themselves look up other credential types through
// the same registry, which is how derived credentials (for example
// Container Registry credentials built from robot credentials) are
// produced on demand.
package credentials

import (
	"context"
	"reflect"
)

// Credentials is the base interface every credential kind satisfies.
// Credentials are immutable once created and safe for concurrent use.
type Credentials interface {
	// ID returns the stable identifier of the credential.
	ID() string
}

// UsernamePasswordCredentials is the broad credential shape most registry
// clients consume. Password may perform I/O (for example an OAuth token
// exchange) and so takes a context.
type UsernamePasswordCredentials interface {
	Credentials
	Username() string
	Password(ctx context.Context) (string, error)
}

// TypeOf returns the lookup token for credential type C. Interface types
// yield tokens matched by any implementation; concrete types are matched
// by identity only.
func TypeOf[C Credentials]() reflect.Type {
	return reflect.TypeOf((*C)(nil)).Elem()
}

// Satisfies reports whether a credential of dynamic type t can answer a
// request for typ.
func Satisfies(t, typ reflect.Type) bool {
	if t == nil || typ == nil {
		return false
	}
	if t == typ {
		return true
	}
	if typ.Kind() == reflect.Interface {
		return t.Implements(typ)
	}
	return false
}

// Authentication identifies on whose behalf a lookup runs. It is carried
// through to every provider unchanged; providers that restrict visibility
// by caller inspect it, the framework itself does not.
type Authentication struct {
	Name string
}

// SystemAuthentication is the ambient identity used by background
// machinery that acts on its own behalf.
var SystemAuthentication = Authentication{Name: "system"}

// StaticUsernamePassword is a fixed username/password credential, used
// for registries that take long-lived passwords or tokens.
type StaticUsernamePassword struct {
	CredentialID string
	User         string
	Secret       string
}

// ID returns the credential identifier.
func (c *StaticUsernamePassword) ID() string { return c.CredentialID }

// Username returns the stored username.
func (c *StaticUsernamePassword) Username() string { return c.User }

// Password returns the stored secret.
func (c *StaticUsernamePassword) Password(_ context.Context) (string, error) {
	return c.Secret, nil
}
