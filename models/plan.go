// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BuildPlan is a recorded resolution. Secret settings are always redacted
// before a plan is built, so a plan is safe to persist and return over the API.
type BuildPlan struct {
	ID          string                `json:"id" yaml:"id"`
	Variant     string                `json:"variant" yaml:"variant"`
	Settings    map[SettingKey]any    `json:"settings" yaml:"settings"`
	Origins     map[SettingKey]string `json:"origins" yaml:"origins"`
	Fingerprint string                `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	RequestedBy string                `json:"requested_by,omitempty" yaml:"requestedBy,omitempty"`
	CreatedAt   time.Time             `json:"created_at" yaml:"createdAt"`
}

// PlanFilter narrows a plan listing.
type PlanFilter struct {
	Variant string
	Limit   uint64
}

// DefaultPlanListLimit caps listings when the caller gives no limit.
const DefaultPlanListLimit uint64 = 50
