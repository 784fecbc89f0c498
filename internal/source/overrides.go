// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/models"
)

// OverridesFragmentName is the provenance label of command line overrides.
const OverridesFragmentName = "overrides"

// Overrides parses literal key=value pairs into the highest-precedence
// fragment. A later pair for the same key replaces an earlier one.
func Overrides(schema *resolver.Schema, pairs []string) (models.Fragment, error) {
	raw := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return models.Fragment{}, fmt.Errorf("%w: %q", ErrMalformedOverride, pair)
		}
		raw[key] = value
	}

	return schema.ParseFragment(OverridesFragmentName, models.SourceOverride, raw)
}
