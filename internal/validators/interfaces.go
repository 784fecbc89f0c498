// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of requests before they reach the
// resolver.
//
// Validators only look at structure: a variant is named, fragment names are
// unique, limits are respected. Whether a setting key exists or a value has
// the right type is the schema's job.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
