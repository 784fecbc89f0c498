// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import "errors"

var (
	// ErrMalformedOverride is returned for a --set value without "=".
	ErrMalformedOverride = errors.New("override must be in key=value form")

	// ErrReadingProperties wraps failures to parse a properties file.
	ErrReadingProperties = errors.New("error reading properties")

	// ErrReadingDescriptor wraps failures to decode a build descriptor.
	ErrReadingDescriptor = errors.New("error reading build descriptor")

	// ErrReadingEnv wraps failures to parse environment variables.
	ErrReadingEnv = errors.New("error reading environment")

	// ErrSigningCannotBeDisabled is returned when a descriptor tries to turn
	// off signing for a variant that requires it by default.
	ErrSigningCannotBeDisabled = errors.New("signing cannot be disabled for this variant")
)
