// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"errors"

	"github.com/MKhiriev/go-build-keeper/models"
)

// Resolver merges fragments against a fixed schema. A Resolver holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	schema *Schema
}

// New returns a Resolver for schema. A nil schema means [DefaultSchema].
func New(schema *Schema) *Resolver {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Resolver{schema: schema}
}

// Schema returns the schema the resolver validates against.
func (r *Resolver) Schema() *Schema { return r.schema }

// Resolve merges fragments for variant using the default schema.
func Resolve(variant models.Variant, fragments ...models.Fragment) (models.ResolvedConfig, error) {
	return New(nil).Resolve(variant, fragments...)
}

// Resolve merges fragments, ordered lowest to highest precedence, and
// validates the result for variant: schema conformance, signing
// credentials and the variant's required settings. Cross-field rules are
// left to [Check].
//
// For each schema key the fragments are scanned from last to first and the
// first present value wins. Every failure class is reported in full; when
// several classes fail together the errors are joined.
func (r *Resolver) Resolve(variant models.Variant, fragments ...models.Fragment) (models.ResolvedConfig, error) {
	var unknown []UnknownKey
	var errs []error
	for _, f := range fragments {
		u, e := r.schema.check(f)
		unknown = append(unknown, u...)
		errs = append(errs, e...)
	}
	for _, key := range variant.Required {
		if _, ok := r.schema.Lookup(string(key)); !ok {
			unknown = append(unknown, UnknownKey{Fragment: "variant " + variant.Name, Key: string(key)})
		}
	}
	if len(unknown) > 0 {
		errs = append([]error{&UnknownKeyError{Keys: unknown}}, errs...)
	}
	if len(errs) > 0 {
		return models.ResolvedConfig{}, errors.Join(errs...)
	}

	settings := make(map[models.SettingKey]models.Value, len(r.schema.specs))
	origins := make(map[models.SettingKey]string, len(r.schema.specs))
	for _, spec := range r.schema.specs {
		for i := len(fragments) - 1; i >= 0; i-- {
			if v, ok := fragments[i].Get(spec.Key); ok && v.IsPresent() {
				settings[spec.Key] = v
				origins[spec.Key] = fragments[i].Name()
				break
			}
		}
	}

	if err := r.validate(variant, settings); err != nil {
		return models.ResolvedConfig{}, err
	}

	return models.NewResolvedConfig(variant, settings, origins), nil
}

func (r *Resolver) validate(variant models.Variant, settings map[models.SettingKey]models.Value) error {
	var errs []error

	if variant.RequiresSigning {
		var missing []models.SettingKey
		for _, key := range models.SigningKeys {
			if _, ok := settings[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			errs = append(errs, &MissingCredentialError{Variant: variant.Name, Fields: missing})
		}
	}

	var missing []models.SettingKey
	for _, spec := range r.schema.specs {
		if !variant.Requires(spec.Key) || isSigningKey(spec.Key) {
			continue
		}
		if _, ok := settings[spec.Key]; !ok {
			missing = append(missing, spec.Key)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, &MissingSettingError{Variant: variant.Name, Fields: missing})
	}

	return errors.Join(errs...)
}

func isSigningKey(key models.SettingKey) bool {
	for _, k := range models.SigningKeys {
		if k == key {
			return true
		}
	}
	return false
}
