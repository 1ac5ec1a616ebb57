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

package domains

import (
	"testing"

	"github.com/Gosayram/gcrauth/testutil"
)

func TestHostnameSpecification(t *testing.T) {
	tests := []struct {
		name string
		spec HostnameSpecification
		req  Requirement
		want Match
	}{
		{
			name: "exact include",
			spec: HostnameSpecification{Includes: []string{"gcr.io"}},
			req:  &HostnameRequirement{Hostname: "gcr.io"},
			want: MatchPositive,
		},
		{
			name: "include is case insensitive",
			spec: HostnameSpecification{Includes: []string{"GCR.io"}},
			req:  &HostnameRequirement{Hostname: "gcr.IO"},
			want: MatchPositive,
		},
		{
			name: "host outside includes",
			spec: HostnameSpecification{Includes: []string{"gcr.io"}},
			req:  &HostnameRequirement{Hostname: "docker.io"},
			want: MatchNegative,
		},
		{
			name: "wildcard matches subdomain",
			spec: HostnameSpecification{Includes: []string{"*.gcr.io"}},
			req:  &HostnameRequirement{Hostname: "eu.gcr.io"},
			want: MatchPositive,
		},
		{
			name: "wildcard matches nested subdomain",
			spec: HostnameSpecification{Includes: []string{"*.pkg.dev"}},
			req:  &HostnameRequirement{Hostname: "us-central1-docker.pkg.dev"},
			want: MatchPositive,
		},
		{
			name: "wildcard does not match apex",
			spec: HostnameSpecification{Includes: []string{"*.gcr.io"}},
			req:  &HostnameRequirement{Hostname: "gcr.io"},
			want: MatchNegative,
		},
		{
			name: "empty includes match any host",
			spec: HostnameSpecification{},
			req:  &HostnameRequirement{Hostname: "anything.example.com"},
			want: MatchPositive,
		},
		{
			name: "exclude wins over include",
			spec: HostnameSpecification{Includes: []string{"*.gcr.io"}, Excludes: []string{"staging.gcr.io"}},
			req:  &HostnameRequirement{Hostname: "staging.gcr.io"},
			want: MatchNegative,
		},
		{
			name: "unrelated requirement kind",
			spec: HostnameSpecification{Includes: []string{"gcr.io"}},
			req:  &SchemeRequirement{Scheme: "https"},
			want: MatchUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Test(tt.req)
			if got != tt.want {
				t.Errorf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchemeSpecification(t *testing.T) {
	tests := []struct {
		name string
		spec SchemeSpecification
		req  Requirement
		want Match
	}{
		{
			name: "matching scheme",
			spec: SchemeSpecification{Schemes: []string{"https"}},
			req:  &SchemeRequirement{Scheme: "https"},
			want: MatchPositive,
		},
		{
			name: "case insensitive",
			spec: SchemeSpecification{Schemes: []string{"HTTPS"}},
			req:  &SchemeRequirement{Scheme: "https"},
			want: MatchPositive,
		},
		{
			name: "mismatched scheme",
			spec: SchemeSpecification{Schemes: []string{"https"}},
			req:  &SchemeRequirement{Scheme: "ssh"},
			want: MatchNegative,
		},
		{
			name: "empty schemes match anything",
			spec: SchemeSpecification{},
			req:  &SchemeRequirement{Scheme: "ssh"},
			want: MatchPositive,
		},
		{
			name: "unrelated requirement kind",
			spec: SchemeSpecification{Schemes: []string{"https"}},
			req:  &HostnameRequirement{Hostname: "gcr.io"},
			want: MatchUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Test(tt.req)
			if got != tt.want {
				t.Errorf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDomainTest(t *testing.T) {
	gcrDomain := New(
		&HostnameSpecification{Includes: []string{"gcr.io", "*.gcr.io"}},
		&SchemeSpecification{Schemes: []string{"https"}},
	)

	tests := []struct {
		name   string
		domain Domain
		reqs   []Requirement
		want   bool
	}{
		{
			name:   "open domain accepts anything",
			domain: Domain{},
			reqs:   []Requirement{&HostnameRequirement{Hostname: "x"}, &SchemeRequirement{Scheme: "ssh"}},
			want:   true,
		},
		{
			name:   "no requirements always pass",
			domain: gcrDomain,
			reqs:   nil,
			want:   true,
		},
		{
			name:   "all requirements covered",
			domain: gcrDomain,
			reqs:   []Requirement{&HostnameRequirement{Hostname: "gcr.io"}, &SchemeRequirement{Scheme: "https"}},
			want:   true,
		},
		{
			name:   "one rejection fails the set",
			domain: gcrDomain,
			reqs:   []Requirement{&HostnameRequirement{Hostname: "gcr.io"}, &SchemeRequirement{Scheme: "ssh"}},
			want:   false,
		},
		{
			name:   "order is irrelevant",
			domain: gcrDomain,
			reqs:   []Requirement{&SchemeRequirement{Scheme: "ssh"}, &HostnameRequirement{Hostname: "gcr.io"}},
			want:   false,
		},
		{
			name:   "unknown requirement kinds are accepted",
			domain: gcrDomain,
			reqs:   []Requirement{&fakeRequirement{}},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.domain.Test(tt.reqs...)
			if got != tt.want {
				t.Errorf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeRequirement struct{}

func (r *fakeRequirement) Kind() string { return "fake" }

func TestKinds(t *testing.T) {
	reqs := []Requirement{
		&HostnameRequirement{Hostname: "gcr.io"},
		&SchemeRequirement{Scheme: "https"},
		&fakeRequirement{},
	}
	testutil.CheckDeepEqual(t, []string{"hostname", "scheme", "fake"}, Kinds(reqs))
	testutil.CheckDeepEqual(t, []string{}, Kinds(nil))
}
