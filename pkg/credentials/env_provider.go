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
	"os"
	"reflect"
	"strings"

	"github.com/Gosayram/gcrauth/pkg/credentials/domains"
)

// EnvProvider serves static username/password credentials from
// environment variables with the pattern GCRAUTH_<REGISTRY>_USERNAME and
// GCRAUTH_<REGISTRY>_PASSWORD, where <REGISTRY> is the uppercase hostname
// with dots and dashes replaced by underscores. Supports FQDN and partial
// suffix matches (e.g. GCR_IO for any *.gcr.io host).
type EnvProvider struct{}

var staticCredentialType = reflect.TypeOf(&StaticUsernamePassword{})

// NewEnvProvider creates an environment-backed provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// Applicable reports whether the requested type can be answered with a
// static username/password credential.
func (p *EnvProvider) Applicable(typ reflect.Type) bool {
	return Satisfies(staticCredentialType, typ)
}

// Enabled always returns true; absent variables simply yield no results.
func (p *EnvProvider) Enabled(_ context.Context) bool { return true }

// Domain returns the open domain. The served host is taken from the
// lookup's hostname requirement, so there is nothing to declare up front.
func (p *EnvProvider) Domain() domains.Domain { return domains.Domain{} }

// Credentials resolves the hostname requirement of the lookup against the
// environment. Lookups without a hostname requirement yield no results.
func (p *EnvProvider) Credentials(_ context.Context, typ reflect.Type, _ Authentication,
	requirements []domains.Requirement) ([]Credentials, error) {
	out := []Credentials{}
	if !p.Applicable(typ) {
		return out, nil
	}

	host := ""
	for _, req := range requirements {
		if hr, ok := req.(*domains.HostnameRequirement); ok {
			host = hr.Hostname
			break
		}
	}
	if host == "" {
		return out, nil
	}

	user, pass, ok := lookupEnvCredentials(host)
	if !ok {
		return out, nil
	}
	out = append(out, &StaticUsernamePassword{
		CredentialID: "env:" + host,
		User:         user,
		Secret:       pass,
	})
	return out, nil
}

// lookupEnvCredentials walks the FQDN from most to least specific so that
// GCRAUTH_EU_GCR_IO_USERNAME wins over GCRAUTH_GCR_IO_USERNAME.
func lookupEnvCredentials(host string) (user, pass string, ok bool) {
	hostname := strings.ToUpper(strings.ReplaceAll(host, "-", "_"))
	fqdn := strings.Split(hostname, ".")
	for idx := range fqdn {
		suffix := strings.Join(fqdn[idx:], "_")
		usr, found := os.LookupEnv("GCRAUTH_" + suffix + "_USERNAME")
		if !found {
			continue
		}
		pwd, found := os.LookupEnv("GCRAUTH_" + suffix + "_PASSWORD")
		if found {
			return usr, pwd, true
		}
	}
	return "", "", false
}
