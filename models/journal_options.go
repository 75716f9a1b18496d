/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package models

import (
	"time"
)

// JournalOptions configures journal buffering and write retries
type JournalOptions struct {
	BufferSize   int              // Event channel buffer size (default: 256)
	MaxRetries   int              // Retry attempts for failed writes (default: 3)
	RetryBackoff time.Duration    // Backoff between retries, multiplied by attempt (default: 200ms)
	ErrorHandler func(error) bool // Optional; return true to keep journaling, false to stop
	Retryable    func(error) bool // Optional; reports whether a failed write may succeed on retry (default: always)
}

// JournalOption is a functional option for configuring a journal
type JournalOption func(*JournalOptions)

// DefaultJournalOptions returns default journal options
func DefaultJournalOptions() JournalOptions {
	return JournalOptions{
		BufferSize:   256,
		MaxRetries:   3,
		RetryBackoff: 200 * time.Millisecond,
	}
}

// WithBufferSize sets the event channel buffer size
func WithBufferSize(size int) JournalOption {
	return func(opts *JournalOptions) {
		opts.BufferSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) JournalOption {
	return func(opts *JournalOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) JournalOption {
	return func(opts *JournalOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithErrorHandler sets a handler that decides whether to continue after a failed write
func WithErrorHandler(handler func(error) bool) JournalOption {
	return func(opts *JournalOptions) {
		opts.ErrorHandler = handler
	}
}

// WithRetryPolicy limits write retries to errors for which retryable returns true
func WithRetryPolicy(retryable func(error) bool) JournalOption {
	return func(opts *JournalOptions) {
		opts.Retryable = retryable
	}
}
