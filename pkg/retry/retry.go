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

// Package retry provides a bounded retry mechanism with exponential
// backoff, used around OAuth token exchanges.
package retry

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxAttempts is the default maximum number of attempts.
	DefaultMaxAttempts = 3
	// DefaultInitialDelay is the default delay before the first retry.
	DefaultInitialDelay = 500 * time.Millisecond
	// DefaultMaxDelay is the default maximum delay between retries.
	DefaultMaxDelay = 10 * time.Second
	// DefaultBackoff is the default exponential backoff multiplier.
	DefaultBackoff = 2.0
)

// Config defines retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Backoff is the exponential backoff multiplier.
	Backoff float64

	// Retryable decides whether an error is worth retrying. A nil
	// function retries everything.
	Retryable func(error) bool
}

// DefaultConfig returns the retry configuration used for token exchanges.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Backoff:      DefaultBackoff,
		Retryable:    IsRetryableError,
	}
}

// ErrMaxAttemptsExceeded is returned when every attempt failed with a
// retryable error.
var ErrMaxAttemptsExceeded = errors.New("max attempts exceeded")

// Do executes fn with retry logic. Non-retryable errors are returned
// immediately and unchanged; exhausting all attempts wraps the last error
// in ErrMaxAttemptsExceeded.
func Do(ctx context.Context, config Config, fn func() error) error {
	_, err := DoWithResult(ctx, config, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult executes fn with retry logic and returns its result.
func DoWithResult[T any](ctx context.Context, config Config, fn func() (T, error)) (T, error) {
	var zero T
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				logrus.Debugf("Operation succeeded after %d retries", attempt)
			}
			return result, nil
		}

		lastErr = err
		if config.Retryable != nil && !config.Retryable(err) {
			return zero, err
		}

		if attempt < config.MaxAttempts-1 {
			logrus.Debugf("Retry attempt %d/%d after %v (error: %v)",
				attempt+1, config.MaxAttempts, delay, err)

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}

			delay = time.Duration(float64(delay) * config.Backoff)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}
	}

	return zero, errors.Wrapf(ErrMaxAttemptsExceeded, "last error: %v", lastErr)
}

// IsRetryableError reports whether an error looks transient.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"timeout",
		"connection",
		"network",
		"temporary",
		"unavailable",
		"rate limit",
		"too many requests",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
