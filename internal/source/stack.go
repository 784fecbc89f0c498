// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/models"
)

// Stack describes which sources to read for one resolution. Fragments are
// produced in a fixed precedence order, lowest first:
//
//  1. built-in defaults
//  2. descriptor defaults
//  3. local.properties (flutter.* entries)
//  4. key.properties
//  5. descriptor overrides for the variant
//  6. environment
//  7. literal overrides
type Stack struct {
	Descriptor      *Descriptor
	LocalProperties string
	KeyProperties   string
	// Environ is the environment snapshot to read; nil skips the layer.
	Environ   map[string]string
	Overrides []string
}

// Fragments reads every configured layer for variant. Errors from all
// layers are collected so the caller can fix them in one pass.
func (s Stack) Fragments(schema *resolver.Schema, variant string) ([]models.Fragment, error) {
	fragments := []models.Fragment{Defaults(variant)}
	var errs []error

	var overrides []models.Fragment
	if s.Descriptor != nil {
		described, err := s.Descriptor.Fragments(schema, variant)
		if err != nil {
			errs = append(errs, err)
		}
		for _, f := range described {
			if f.Name() == "descriptor:defaults" {
				fragments = append(fragments, f)
			} else {
				overrides = append(overrides, f)
			}
		}
	}

	if s.LocalProperties != "" {
		f, err := readLocalProperties(schema, s.LocalProperties)
		if err != nil {
			errs = append(errs, err)
		} else {
			fragments = append(fragments, f)
		}
	}

	if s.KeyProperties != "" {
		f, err := PropertiesFile(schema, s.KeyProperties)
		if err != nil {
			errs = append(errs, err)
		} else {
			fragments = append(fragments, f)
		}
	}

	fragments = append(fragments, overrides...)

	if s.Environ != nil {
		f, err := Env(schema, s.Environ)
		if err != nil {
			errs = append(errs, err)
		} else {
			fragments = append(fragments, f)
		}
	}

	if len(s.Overrides) > 0 {
		f, err := Overrides(schema, s.Overrides)
		if err != nil {
			errs = append(errs, err)
		} else {
			fragments = append(fragments, f)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return fragments, nil
}

// Variant resolves the variant policy, consulting the descriptor if any.
func (s Stack) Variant(name string) (models.Variant, error) {
	if s.Descriptor != nil {
		return s.Descriptor.Variant(name)
	}
	if v, ok := models.BuiltinVariant(name); ok {
		return v, nil
	}
	return models.Variant{}, fmt.Errorf("%w: %q", resolver.ErrUnknownVariant, name)
}

func readLocalProperties(schema *resolver.Schema, path string) (models.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Fragment{}, fmt.Errorf("%w %q: %w", ErrReadingProperties, path, err)
	}
	defer f.Close()

	return LocalProperties(schema, path, f)
}
