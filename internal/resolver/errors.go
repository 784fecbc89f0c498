// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-build-keeper/models"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrMissingCredential    = errors.New("missing signing credential")
	ErrMissingSetting       = errors.New("missing required setting")
	ErrUnknownKey           = errors.New("unknown setting key")
	ErrInvalidValue         = errors.New("invalid setting value")
	ErrInconsistentSettings = errors.New("inconsistent settings")
	ErrUnknownVariant       = errors.New("unknown variant")
)

// MissingCredentialError lists every signing credential absent after the
// merge for a variant that requires signing.
type MissingCredentialError struct {
	Variant string
	Fields  []models.SettingKey
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("variant %q requires signing, missing: %s", e.Variant, joinKeys(e.Fields))
}

func (e *MissingCredentialError) Is(target error) bool { return target == ErrMissingCredential }

// MissingSettingError lists required non-credential settings that are absent.
type MissingSettingError struct {
	Variant string
	Fields  []models.SettingKey
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("variant %q is missing required settings: %s", e.Variant, joinKeys(e.Fields))
}

func (e *MissingSettingError) Is(target error) bool { return target == ErrMissingSetting }

// UnknownKey names one unrecognized key and the fragment that supplied it.
type UnknownKey struct {
	Fragment string
	Key      string
}

// UnknownKeyError reports all unrecognized keys found in the fragments.
type UnknownKeyError struct {
	Keys []UnknownKey
}

func (e *UnknownKeyError) Error() string {
	parts := make([]string, 0, len(e.Keys))
	for _, k := range e.Keys {
		parts = append(parts, fmt.Sprintf("%s (fragment %q)", k.Key, k.Fragment))
	}
	return "unknown setting keys: " + strings.Join(parts, ", ")
}

func (e *UnknownKeyError) Is(target error) bool { return target == ErrUnknownKey }

// Names returns the unknown key names in report order.
func (e *UnknownKeyError) Names() []string {
	out := make([]string, 0, len(e.Keys))
	for _, k := range e.Keys {
		out = append(out, k.Key)
	}
	return out
}

// InvalidValueError reports a value that cannot be used for its key. Raw is
// empty for secret settings.
type InvalidValueError struct {
	Fragment string
	Key      models.SettingKey
	Want     models.ValueKind
	Raw      string
	Err      error
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("setting %s in fragment %q must be %s", e.Key, e.Fragment, e.Want)
	if e.Raw != "" && !models.IsSecret(e.Key) {
		msg += fmt.Sprintf(", got %q", e.Raw)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

func (e *InvalidValueError) Unwrap() error { return e.Err }

// InconsistentSettingsError collects violated cross-field rules.
type InconsistentSettingsError struct {
	Problems []string
}

func (e *InconsistentSettingsError) Error() string {
	return "inconsistent settings: " + strings.Join(e.Problems, "; ")
}

func (e *InconsistentSettingsError) Is(target error) bool { return target == ErrInconsistentSettings }

func joinKeys(keys []models.SettingKey) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ", ")
}
