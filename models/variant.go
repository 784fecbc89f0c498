// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// Built-in variant names.
const (
	VariantDebug   = "debug"
	VariantProfile = "profile"
	VariantRelease = "release"
)

// Variant is a named build target and its mandatory-field policy.
type Variant struct {
	// Name identifies the build target, e.g. "release".
	Name string `json:"name" yaml:"name"`

	// RequiresSigning makes all four signing credentials mandatory.
	RequiresSigning bool `json:"requires_signing" yaml:"requiresSigning"`

	// Required lists non-credential settings that must be present.
	Required []SettingKey `json:"required,omitempty" yaml:"required,omitempty"`
}

// Requires reports whether key must be present for this variant.
func (v Variant) Requires(key SettingKey) bool {
	if v.RequiresSigning && slices.Contains(SigningKeys, key) {
		return true
	}
	return slices.Contains(v.Required, key)
}

// BuiltinVariants returns fresh copies of the built-in variants, in the
// order debug, profile, release.
func BuiltinVariants() []Variant {
	return []Variant{
		{Name: VariantDebug, Required: []SettingKey{KeyApplicationID}},
		{Name: VariantProfile, Required: []SettingKey{KeyApplicationID}},
		{
			Name:            VariantRelease,
			RequiresSigning: true,
			Required:        []SettingKey{KeyApplicationID, KeyVersionCode, KeyVersionName},
		},
	}
}

// BuiltinVariant looks up a built-in variant by name.
func BuiltinVariant(name string) (Variant, bool) {
	for _, v := range BuiltinVariants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
