// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-build-keeper/models"
)

// javaPackage matches dotted Java package names with at least two segments.
var javaPackage = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)+$`)

// Check lints a resolved configuration against cross-field rules: SDK
// bounds, a positive versionCode and package-shaped ids. It is not part of
// Resolve, which only checks structural completeness; callers that package
// builds run it afterwards. Absent settings are never reported here.
//
// The result is nil or an *InconsistentSettingsError listing every problem.
func Check(cfg models.ResolvedConfig) error {
	if problems := checkConsistency(cfg.Settings()); len(problems) > 0 {
		return &InconsistentSettingsError{Problems: problems}
	}
	return nil
}

func checkConsistency(settings map[models.SettingKey]models.Value) []string {
	var problems []string

	minSdk, hasMin := settings[models.KeyMinSdk]
	targetSdk, hasTarget := settings[models.KeyTargetSdk]
	compileSdk, hasCompile := settings[models.KeyCompileSdk]

	if hasMin && minSdk.Int() < 1 {
		problems = append(problems, fmt.Sprintf("minSdk must be positive, got %d", minSdk.Int()))
	}
	if hasMin && hasTarget && minSdk.Int() > targetSdk.Int() {
		problems = append(problems, fmt.Sprintf("minSdk %d exceeds targetSdk %d", minSdk.Int(), targetSdk.Int()))
	}
	if hasTarget && hasCompile && targetSdk.Int() > compileSdk.Int() {
		problems = append(problems, fmt.Sprintf("targetSdk %d exceeds compileSdk %d", targetSdk.Int(), compileSdk.Int()))
	}
	if hasMin && !hasTarget && hasCompile && minSdk.Int() > compileSdk.Int() {
		problems = append(problems, fmt.Sprintf("minSdk %d exceeds compileSdk %d", minSdk.Int(), compileSdk.Int()))
	}

	if vc, ok := settings[models.KeyVersionCode]; ok && vc.Int() <= 0 {
		problems = append(problems, fmt.Sprintf("versionCode must be positive, got %d", vc.Int()))
	}

	for _, key := range []models.SettingKey{models.KeyApplicationID, models.KeyNamespace} {
		if v, ok := settings[key]; ok && !javaPackage.MatchString(v.Str()) {
			problems = append(problems, fmt.Sprintf("%s %q is not a valid package name", key, v.Str()))
		}
	}

	return problems
}
