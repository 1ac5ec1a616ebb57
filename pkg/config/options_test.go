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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiArgSet(t *testing.T) {
	var arg multiArg
	require.NoError(t, arg.Set("gcr.io"))
	require.NoError(t, arg.Set("eu.gcr.io,asia.gcr.io"))
	require.NoError(t, arg.Set(" spaced.example.com , "))

	assert.Equal(t, multiArg{"gcr.io", "eu.gcr.io", "asia.gcr.io", "spaced.example.com"}, arg)
	assert.Equal(t, "gcr.io,eu.gcr.io,asia.gcr.io,spaced.example.com", arg.String())
}

func TestMultiArgEmpty(t *testing.T) {
	var arg multiArg
	require.NoError(t, arg.Set(""))
	assert.Empty(t, arg)
	assert.Equal(t, "", arg.String())
	assert.Equal(t, "multi-arg", arg.Type())
}
