// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-build-keeper/models"
)

// KeySpec describes one recognized setting.
type KeySpec struct {
	Key         models.SettingKey
	Kind        models.ValueKind
	Description string
}

// Schema is the set of recognized settings. Its order is the order in which
// resolution scans keys and reports missing fields.
type Schema struct {
	specs []KeySpec
	index map[models.SettingKey]int
}

// NewSchema builds a schema from specs. Duplicate keys keep the first spec.
func NewSchema(specs ...KeySpec) *Schema {
	s := &Schema{
		specs: make([]KeySpec, 0, len(specs)),
		index: make(map[models.SettingKey]int, len(specs)),
	}
	for _, spec := range specs {
		if _, dup := s.index[spec.Key]; dup {
			continue
		}
		s.index[spec.Key] = len(s.specs)
		s.specs = append(s.specs, spec)
	}
	return s
}

var defaultSchema = NewSchema(
	KeySpec{models.KeyApplicationID, models.KindString, "application id (package name)"},
	KeySpec{models.KeyNamespace, models.KindString, "R class namespace"},
	KeySpec{models.KeyCompileSdk, models.KindInt, "compile SDK level"},
	KeySpec{models.KeyMinSdk, models.KindInt, "minimum SDK level"},
	KeySpec{models.KeyTargetSdk, models.KindInt, "target SDK level"},
	KeySpec{models.KeyVersionCode, models.KindInt, "monotonic version code"},
	KeySpec{models.KeyVersionName, models.KindString, "user-visible version name"},
	KeySpec{models.KeyNdkVersion, models.KindString, "NDK version"},
	KeySpec{models.KeyJvmTarget, models.KindString, "JVM bytecode target"},
	KeySpec{models.KeyMinifyEnabled, models.KindBool, "code shrinking"},
	KeySpec{models.KeyShrinkResources, models.KindBool, "resource shrinking"},
	KeySpec{models.KeyDebuggable, models.KindBool, "debuggable flag"},
	KeySpec{models.KeyKeyAlias, models.KindString, "signing key alias"},
	KeySpec{models.KeyKeyPassword, models.KindString, "signing key password"},
	KeySpec{models.KeyStoreFile, models.KindString, "keystore file path"},
	KeySpec{models.KeyStorePassword, models.KindString, "keystore password"},
)

// DefaultSchema returns the schema of Android build settings.
func DefaultSchema() *Schema { return defaultSchema }

// Specs returns the key specs in schema order.
func (s *Schema) Specs() []KeySpec { return slices.Clone(s.specs) }

// Keys returns the recognized keys in schema order.
func (s *Schema) Keys() []models.SettingKey {
	keys := make([]models.SettingKey, 0, len(s.specs))
	for _, spec := range s.specs {
		keys = append(keys, spec.Key)
	}
	return keys
}

// Lookup returns the spec for a key name.
func (s *Schema) Lookup(key string) (KeySpec, bool) {
	i, ok := s.index[models.SettingKey(key)]
	if !ok {
		return KeySpec{}, false
	}
	return s.specs[i], true
}

// ParseValue converts a raw string into a typed value for key. An empty or
// whitespace-only raw string yields an absent value.
func (s *Schema) ParseValue(fragment string, key models.SettingKey, raw string) (models.Value, error) {
	spec, ok := s.Lookup(string(key))
	if !ok {
		return models.Value{}, &UnknownKeyError{Keys: []UnknownKey{{Fragment: fragment, Key: string(key)}}}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.Value{}, nil
	}

	switch spec.Kind {
	case models.KindInt:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return models.Value{}, newInvalidValue(fragment, key, spec.Kind, raw, err)
		}
		return models.IntValue(n), nil
	case models.KindBool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return models.Value{}, newInvalidValue(fragment, key, spec.Kind, raw, err)
		}
		return models.BoolValue(b), nil
	default:
		return models.StringValue(raw), nil
	}
}

// ParseFragment types raw string values against the schema. All unknown
// keys are reported together; the first invalid value is reported alongside.
func (s *Schema) ParseFragment(name string, source models.FragmentSource, raw map[string]string) (models.Fragment, error) {
	values := make(map[models.SettingKey]models.Value, len(raw))
	var unknown []UnknownKey
	var errs []error

	for _, k := range sortedKeys(raw) {
		if _, ok := s.Lookup(k); !ok {
			unknown = append(unknown, UnknownKey{Fragment: name, Key: k})
			continue
		}
		v, err := s.ParseValue(name, models.SettingKey(k), raw[k])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[models.SettingKey(k)] = v
	}

	if len(unknown) > 0 {
		errs = append([]error{&UnknownKeyError{Keys: unknown}}, errs...)
	}
	if len(errs) > 0 {
		return models.Fragment{}, errors.Join(errs...)
	}

	return models.NewFragment(name, source, values), nil
}

// FragmentFromAny types JSON- or YAML-decoded values against the schema.
func (s *Schema) FragmentFromAny(name string, source models.FragmentSource, raw map[string]any) (models.Fragment, error) {
	values := make(map[models.SettingKey]models.Value, len(raw))
	var unknown []UnknownKey
	var errs []error

	for _, k := range sortedKeys(raw) {
		spec, ok := s.Lookup(k)
		if !ok {
			unknown = append(unknown, UnknownKey{Fragment: name, Key: k})
			continue
		}
		v, err := s.valueFromAny(name, spec, raw[k])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[spec.Key] = v
	}

	if len(unknown) > 0 {
		errs = append([]error{&UnknownKeyError{Keys: unknown}}, errs...)
	}
	if len(errs) > 0 {
		return models.Fragment{}, errors.Join(errs...)
	}

	return models.NewFragment(name, source, values), nil
}

func (s *Schema) valueFromAny(fragment string, spec KeySpec, raw any) (models.Value, error) {
	invalid := func(err error) error {
		return newInvalidValue(fragment, spec.Key, spec.Kind, fmt.Sprint(raw), err)
	}

	switch v := raw.(type) {
	case nil:
		return models.Value{}, nil
	case string:
		return s.ParseValue(fragment, spec.Key, v)
	}

	switch spec.Kind {
	case models.KindString:
		// YAML and JSON decode `jvmTarget: 11` or `keyPassword: 123456` as
		// numbers; any scalar is taken by its text.
		switch v := raw.(type) {
		case bool, int, int64, uint64:
			return models.StringValue(fmt.Sprint(v)), nil
		case float64:
			return models.StringValue(strconv.FormatFloat(v, 'f', -1, 64)), nil
		case json.Number:
			return models.StringValue(v.String()), nil
		}
	case models.KindInt:
		switch v := raw.(type) {
		case int:
			return models.IntValue(int64(v)), nil
		case int64:
			return models.IntValue(v), nil
		case float64:
			// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
			if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
				return models.Value{}, invalid(errors.New("not a 64-bit integer"))
			}
			return models.IntValue(int64(v)), nil
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return models.Value{}, invalid(err)
			}
			return models.IntValue(n), nil
		}
	case models.KindBool:
		if b, ok := raw.(bool); ok {
			return models.BoolValue(b), nil
		}
	}

	return models.Value{}, invalid(nil)
}

// newInvalidValue builds an InvalidValueError. The raw text of a secret
// setting is never kept, so the error can be logged and returned to clients.
func newInvalidValue(fragment string, key models.SettingKey, kind models.ValueKind, raw string, err error) *InvalidValueError {
	if models.IsSecret(key) {
		raw = ""
	}
	return &InvalidValueError{Fragment: fragment, Key: key, Want: kind, Raw: raw, Err: err}
}

// check verifies a fragment against the schema: every key must be known and
// every value must have the kind the schema expects.
func (s *Schema) check(f models.Fragment) ([]UnknownKey, []error) {
	var unknown []UnknownKey
	var errs []error
	for _, key := range f.Keys() {
		spec, ok := s.Lookup(string(key))
		if !ok {
			unknown = append(unknown, UnknownKey{Fragment: f.Name(), Key: string(key)})
			continue
		}
		v, _ := f.Get(key)
		if v.Kind() != spec.Kind {
			errs = append(errs, newInvalidValue(f.Name(), key, spec.Kind, v.String(), nil))
		}
	}
	return unknown, errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
