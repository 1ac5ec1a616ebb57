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

// Package testutil provides assertion helpers shared across the test suites.
package testutil

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// CheckDeepEqual checks if two values are deeply equal using cmp.Diff
func CheckDeepEqual(t *testing.T, expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(actual, expected, opts...); diff != "" {
		t.Errorf("%T differ (-got, +want): %s", expected, diff)
		return
	}
}

// CheckErrorAndDeepEqual checks for expected errors and deep equality of values
func CheckErrorAndDeepEqual(t *testing.T, shouldErr bool, err error, expected, actual interface{}) {
	t.Helper()
	if checkErr := checkErr(shouldErr, err); checkErr != nil {
		t.Error(checkErr)
		return
	}
	if !reflect.DeepEqual(expected, actual) {
		diff := cmp.Diff(actual, expected)
		t.Errorf("%T differ (-got, +want): %s", expected, diff)
		return
	}
}

// CheckError checks if the error condition matches expectations
func CheckError(t *testing.T, shouldErr bool, err error) {
	t.Helper()
	if checkErr := checkErr(shouldErr, err); checkErr != nil {
		t.Error(checkErr)
	}
}

// CheckNoError verifies that no error occurred
func CheckNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("%+v", err)
	}
}

func checkErr(shouldErr bool, err error) error {
	if err == nil && shouldErr {
		return fmt.Errorf("expected error, but returned none")
	}
	if err != nil && !shouldErr {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}
