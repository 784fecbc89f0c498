// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FragmentInput is a fragment as it travels over the wire: a name and raw
// JSON-decoded values to be typed against the schema.
type FragmentInput struct {
	Name   string         `json:"name"`
	Values map[string]any `json:"values"`
}

// ResolveRequest asks the service to resolve fragments for a variant.
//
// Fragments are ordered from lowest to highest precedence. When VariantSpec
// is set it is used instead of looking Variant up among built-in variants.
type ResolveRequest struct {
	Variant     string          `json:"variant"`
	VariantSpec *Variant        `json:"variant_spec,omitempty"`
	Fragments   []FragmentInput `json:"fragments"`
	Record      bool            `json:"record"`
	Reveal      bool            `json:"reveal"`
}

// ResolveResult is the response to a ResolveRequest.
type ResolveResult struct {
	PlanID      string                `json:"plan_id,omitempty" yaml:"planId,omitempty"`
	Variant     string                `json:"variant" yaml:"variant"`
	Settings    map[SettingKey]any    `json:"settings" yaml:"settings"`
	Origins     map[SettingKey]string `json:"origins" yaml:"origins"`
	Fingerprint string                `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// ErrorResponse is the JSON body returned for failed resolutions.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Unknown []string `json:"unknown,omitempty"`
}
