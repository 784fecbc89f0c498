// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
)

// FragmentSource labels where a fragment came from.
type FragmentSource string

const (
	SourceDefaults   FragmentSource = "defaults"
	SourceEnv        FragmentSource = "env"
	SourceProperties FragmentSource = "properties"
	SourceDescriptor FragmentSource = "descriptor"
	SourceOverride   FragmentSource = "override"
	SourceRequest    FragmentSource = "request"
)

// Fragment is one named layer of settings. It is immutable: the constructor
// copies its input and no method hands out the internal map.
type Fragment struct {
	name   string
	source FragmentSource
	values map[SettingKey]Value
}

// NewFragment builds a Fragment from values. Absent values are dropped.
func NewFragment(name string, source FragmentSource, values map[SettingKey]Value) Fragment {
	copied := make(map[SettingKey]Value, len(values))
	for k, v := range values {
		if v.IsPresent() {
			copied[k] = v
		}
	}

	return Fragment{name: name, source: source, values: copied}
}

// Name returns the fragment name used for provenance.
func (f Fragment) Name() string { return f.name }

// Source returns the fragment source label.
func (f Fragment) Source() FragmentSource { return f.source }

// Len returns the number of present settings.
func (f Fragment) Len() int { return len(f.values) }

// Get returns the value for key and whether it is present.
func (f Fragment) Get(key SettingKey) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Keys returns the fragment keys in lexical order.
func (f Fragment) Keys() []SettingKey {
	return slices.Sorted(maps.Keys(f.values))
}

// Values returns a copy of the fragment contents.
func (f Fragment) Values() map[SettingKey]Value {
	return maps.Clone(f.values)
}
