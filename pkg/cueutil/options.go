// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps the size of user CUE files (5 MiB).
const DefaultMaxFileSize int64 = 5 << 20

type (
	// Option configures Decode.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

func defaultOptions() options {
	return options{maxFileSize: DefaultMaxFileSize}
}

// WithFilename sets the file name used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete requires every field of the unified value to be concrete.
// Without it, optional schema fields left unset are accepted.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}
