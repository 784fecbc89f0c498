// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import "github.com/MKhiriev/go-build-keeper/models"

// DefaultsFragmentName is the provenance label of built-in defaults.
const DefaultsFragmentName = "defaults"

// Defaults returns the lowest-precedence fragment with the values of the
// Flutter Android template. Debug builds are debuggable.
//
// Signing credentials never have defaults.
func Defaults(variant string) models.Fragment {
	values := map[models.SettingKey]models.Value{
		models.KeyCompileSdk:      models.IntValue(35),
		models.KeyMinSdk:          models.IntValue(21),
		models.KeyTargetSdk:       models.IntValue(35),
		models.KeyVersionCode:     models.IntValue(1),
		models.KeyVersionName:     models.StringValue("1.0.0"),
		models.KeyJvmTarget:       models.StringValue("11"),
		models.KeyMinifyEnabled:   models.BoolValue(false),
		models.KeyShrinkResources: models.BoolValue(false),
		models.KeyDebuggable:      models.BoolValue(variant == models.VariantDebug),
	}

	return models.NewFragment(DefaultsFragmentName, models.SourceDefaults, values)
}
