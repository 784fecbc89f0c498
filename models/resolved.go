// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
)

// RedactedValue replaces secret values in any output that leaves the process.
const RedactedValue = "******"

// SecretKeys are the settings whose values are never printed or stored.
var SecretKeys = []SettingKey{KeyKeyPassword, KeyStorePassword}

// IsSecret reports whether key holds a secret.
func IsSecret(key SettingKey) bool {
	return slices.Contains(SecretKeys, key)
}

// ResolvedConfig is the merged view of a set of fragments for one variant.
// It is built once by the resolver and shares no state with its inputs.
type ResolvedConfig struct {
	variant  Variant
	settings map[SettingKey]Value
	origins  map[SettingKey]string
}

// NewResolvedConfig copies settings and origins into a ResolvedConfig.
func NewResolvedConfig(variant Variant, settings map[SettingKey]Value, origins map[SettingKey]string) ResolvedConfig {
	variant.Required = slices.Clone(variant.Required)
	return ResolvedConfig{
		variant:  variant,
		settings: maps.Clone(settings),
		origins:  maps.Clone(origins),
	}
}

// Variant returns the variant the config was resolved for.
func (c ResolvedConfig) Variant() Variant { return c.variant }

// Get returns the resolved value for key.
func (c ResolvedConfig) Get(key SettingKey) (Value, bool) {
	v, ok := c.settings[key]
	return v, ok
}

// Origin returns the name of the fragment that supplied key.
func (c ResolvedConfig) Origin(key SettingKey) string {
	return c.origins[key]
}

// Keys returns the resolved keys in lexical order.
func (c ResolvedConfig) Keys() []SettingKey {
	return slices.Sorted(maps.Keys(c.settings))
}

// Settings returns a copy of the resolved values.
func (c ResolvedConfig) Settings() map[SettingKey]Value {
	return maps.Clone(c.settings)
}

// Origins returns a copy of the per-key provenance.
func (c ResolvedConfig) Origins() map[SettingKey]string {
	return maps.Clone(c.origins)
}

// Equal compares two configs field by field.
func (c ResolvedConfig) Equal(other ResolvedConfig) bool {
	if c.variant.Name != other.variant.Name ||
		c.variant.RequiresSigning != other.variant.RequiresSigning ||
		!slices.Equal(c.variant.Required, other.variant.Required) {
		return false
	}
	return maps.Equal(c.settings, other.settings) && maps.Equal(c.origins, other.origins)
}

// Plain returns the settings as plain Go values. Secret values are replaced
// by [RedactedValue] unless reveal is true.
func (c ResolvedConfig) Plain(reveal bool) map[SettingKey]any {
	out := make(map[SettingKey]any, len(c.settings))
	for k, v := range c.settings {
		if !reveal && IsSecret(k) {
			out[k] = RedactedValue
			continue
		}
		out[k] = v.Interface()
	}
	return out
}

// Strings returns the settings rendered as strings, redacting secrets
// unless reveal is true.
func (c ResolvedConfig) Strings(reveal bool) map[string]string {
	out := make(map[string]string, len(c.settings))
	for k, v := range c.settings {
		if !reveal && IsSecret(k) {
			out[string(k)] = RedactedValue
			continue
		}
		out[string(k)] = v.String()
	}
	return out
}

// SigningConfig is the signing block handed to the packaging tool.
type SigningConfig struct {
	KeyAlias      string
	KeyPassword   string
	StoreFile     string
	StorePassword string
}

// Signing returns the signing credentials, if any were resolved.
func (c ResolvedConfig) Signing() SigningConfig {
	return SigningConfig{
		KeyAlias:      c.settings[KeyKeyAlias].Str(),
		KeyPassword:   c.settings[KeyKeyPassword].Str(),
		StoreFile:     c.settings[KeyStoreFile].Str(),
		StorePassword: c.settings[KeyStorePassword].Str(),
	}
}

// IsComplete reports whether all four credentials are set.
func (s SigningConfig) IsComplete() bool {
	return s.KeyAlias != "" && s.KeyPassword != "" && s.StoreFile != "" && s.StorePassword != ""
}
