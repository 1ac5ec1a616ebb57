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

// Package domains models where a credential may be used. A consumer
// expresses what it needs as a set of requirements; a provider declares
// what it covers as a domain built from specifications. A domain accepts
// a requirement set when no specification rejects any requirement.
package domains

import "strings"

// Requirement is a constraint a credential must satisfy to be usable in
// a given context. Requirements are distinguished by Kind rather than by
// value when sets of them are compared.
type Requirement interface {
	Kind() string
}

// HostnameRequirement asks for credentials usable against a specific host.
type HostnameRequirement struct {
	Hostname string
}

// Kind returns the requirement kind tag.
func (r *HostnameRequirement) Kind() string { return "hostname" }

// SchemeRequirement asks for credentials usable over a specific URI scheme.
type SchemeRequirement struct {
	Scheme string
}

// Kind returns the requirement kind tag.
func (r *SchemeRequirement) Kind() string { return "scheme" }

// Match is the outcome of testing one requirement against one specification.
type Match int

const (
	// MatchUnknown means the specification has no opinion about the
	// requirement, typically because it is of an unrelated kind.
	MatchUnknown Match = iota
	// MatchPositive means the specification covers the requirement.
	MatchPositive
	// MatchNegative means the specification rejects the requirement.
	MatchNegative
)

// Specification describes one facet of a domain.
type Specification interface {
	Test(req Requirement) Match
}

// HostnameSpecification limits a domain to a set of hosts. Include and
// exclude patterns may use a leading "*." wildcard to cover subdomains.
// An empty include list covers every host not explicitly excluded.
type HostnameSpecification struct {
	Includes []string
	Excludes []string
}

// Test reports whether the requirement's host falls inside this specification.
func (s *HostnameSpecification) Test(req Requirement) Match {
	hr, ok := req.(*HostnameRequirement)
	if !ok {
		return MatchUnknown
	}

	host := strings.ToLower(hr.Hostname)
	for _, pattern := range s.Excludes {
		if matchHost(pattern, host) {
			return MatchNegative
		}
	}
	if len(s.Includes) == 0 {
		return MatchPositive
	}
	for _, pattern := range s.Includes {
		if matchHost(pattern, host) {
			return MatchPositive
		}
	}
	return MatchNegative
}

// matchHost matches a host against a pattern, where "*.example.com"
// matches any single- or multi-level subdomain of example.com but not
// example.com itself.
func matchHost(pattern, host string) bool {
	pattern = strings.ToLower(pattern)
	if rest, ok := strings.CutPrefix(pattern, "*."); ok {
		return strings.HasSuffix(host, "."+rest)
	}
	return pattern == host
}

// SchemeSpecification limits a domain to a set of URI schemes. An empty
// scheme list covers every scheme.
type SchemeSpecification struct {
	Schemes []string
}

// Test reports whether the requirement's scheme falls inside this specification.
func (s *SchemeSpecification) Test(req Requirement) Match {
	sr, ok := req.(*SchemeRequirement)
	if !ok {
		return MatchUnknown
	}

	if len(s.Schemes) == 0 {
		return MatchPositive
	}
	scheme := strings.ToLower(sr.Scheme)
	for _, candidate := range s.Schemes {
		if strings.ToLower(candidate) == scheme {
			return MatchPositive
		}
	}
	return MatchNegative
}

// Domain is the set of contexts a group of credentials is valid for.
// The zero value is the open domain, which accepts any requirement set.
type Domain struct {
	Specifications []Specification
}

// New builds a domain from the given specifications.
func New(specs ...Specification) Domain {
	return Domain{Specifications: specs}
}

// Test reports whether every requirement is acceptable to this domain.
// A requirement no specification understands is accepted; a single
// rejection fails the whole set. Order and duplicates are irrelevant.
func (d Domain) Test(reqs ...Requirement) bool {
	for _, req := range reqs {
		for _, spec := range d.Specifications {
			if spec.Test(req) == MatchNegative {
				return false
			}
		}
	}
	return true
}

// Kinds returns the kind tags of a requirement set in order. Tests and
// logs compare requirement sets by kind composition rather than value.
func Kinds(reqs []Requirement) []string {
	kinds := make([]string, 0, len(reqs))
	for _, req := range reqs {
		kinds = append(kinds, req.Kind())
	}
	return kinds
}
