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

// Package config holds the options the credential helper is started
// with, set by command line arguments.
package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// Options are all the options for the credential helper, set by command
// line arguments and environment variables.
type Options struct {
	// KeyFiles are paths to service account JSON keys to serve robot
	// credentials from.
	KeyFiles multiArg

	// Registries are extra registry hosts to produce credentials for,
	// on top of the default Container Registry hosts.
	Registries multiArg

	// DisableEnvCredentials turns off the environment-variable
	// credential provider.
	DisableEnvCredentials bool
}

// multiArg is a pflag value collecting repeated string flags.
type multiArg []string

var _ pflag.Value = (*multiArg)(nil)

// String returns the flag values joined by commas.
func (a *multiArg) String() string {
	return strings.Join(*a, ",")
}

// Set appends a value. Comma-separated values are split.
func (a *multiArg) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*a = append(*a, part)
		}
	}
	return nil
}

// Type returns the string identifier for the flag type.
func (a *multiArg) Type() string {
	return "multi-arg"
}
