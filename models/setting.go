// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"strconv"
)

// SettingKey is the name of a build setting. Canonical names follow the
// Gradle Android DSL property names (e.g. "applicationId", "minSdk").
type SettingKey string

// Recognized build settings.
const (
	KeyApplicationID   SettingKey = "applicationId"
	KeyNamespace       SettingKey = "namespace"
	KeyCompileSdk      SettingKey = "compileSdk"
	KeyMinSdk          SettingKey = "minSdk"
	KeyTargetSdk       SettingKey = "targetSdk"
	KeyVersionCode     SettingKey = "versionCode"
	KeyVersionName     SettingKey = "versionName"
	KeyNdkVersion      SettingKey = "ndkVersion"
	KeyJvmTarget       SettingKey = "jvmTarget"
	KeyMinifyEnabled   SettingKey = "minifyEnabled"
	KeyShrinkResources SettingKey = "shrinkResources"
	KeyDebuggable      SettingKey = "debuggable"

	KeyKeyAlias      SettingKey = "keyAlias"
	KeyKeyPassword   SettingKey = "keyPassword"
	KeyStoreFile     SettingKey = "storeFile"
	KeyStorePassword SettingKey = "storePassword"
)

// SigningKeys lists the four signing credential settings in the order they
// are reported by validation errors.
var SigningKeys = []SettingKey{KeyKeyAlias, KeyKeyPassword, KeyStoreFile, KeyStorePassword}

// ValueKind is the type of a setting value.
type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindInt
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Value is a typed setting value. The zero Value is absent.
//
// A string value is present only when non-empty. Int and bool values are
// present whenever they were explicitly set, so 0 and false count.
type Value struct {
	kind ValueKind
	set  bool
	str  string
	num  int64
	flag bool
}

// StringValue returns a string Value. An empty s yields an absent value.
func StringValue(s string) Value {
	return Value{kind: KindString, set: s != "", str: s}
}

// IntValue returns an explicitly set int Value.
func IntValue(n int64) Value {
	return Value{kind: KindInt, set: true, num: n}
}

// BoolValue returns an explicitly set bool Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, set: true, flag: b}
}

// Kind returns the value kind, or 0 for the zero Value.
func (v Value) Kind() ValueKind { return v.kind }

// IsPresent reports whether the value takes part in resolution.
func (v Value) IsPresent() bool { return v.set }

// Str returns the string payload.
func (v Value) Str() string { return v.str }

// Int returns the int payload.
func (v Value) Int() int64 { return v.num }

// Bool returns the bool payload.
func (v Value) Bool() bool { return v.flag }

// String renders the value the way it would appear in a properties file.
func (v Value) String() string {
	if !v.set {
		return ""
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return v.str
	}
}

// Interface returns the payload as a plain Go value (string, int64 or bool),
// or nil when absent.
func (v Value) Interface() any {
	if !v.set {
		return nil
	}
	switch v.kind {
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	default:
		return v.str
	}
}

// MarshalJSON encodes the value as its native JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}
