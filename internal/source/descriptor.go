// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/models"
)

// Descriptor is a build descriptor file: shared defaults plus per-variant
// policy and literal overrides. JSON descriptors are accepted too, since
// JSON is valid YAML.
//
//	defaults:
//	  applicationId: com.example.mssyb
//	  minSdk: 23
//	variants:
//	  release:
//	    required: [ndkVersion]
//	    overrides:
//	      minifyEnabled: true
//	  staging:
//	    requiresSigning: true
type Descriptor struct {
	Defaults SettingMap             `yaml:"defaults"`
	Variants map[string]VariantSpec `yaml:"variants"`
}

// VariantSpec describes one variant in a descriptor. RequiresSigning is a
// pointer so an omitted field keeps the built-in policy.
type VariantSpec struct {
	RequiresSigning *bool      `yaml:"requiresSigning"`
	Required        []string   `yaml:"required"`
	Overrides       SettingMap `yaml:"overrides"`
}

// SettingMap holds descriptor settings. Scalars keep their literal YAML
// text, so `versionName: 1.0` stays "1.0" and the schema types each value;
// a null is an absent value. Lists and maps are decoded as-is and rejected
// by the schema.
type SettingMap map[string]any

func (m *SettingMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: settings must be a mapping", node.Line)
	}

	out := make(SettingMap, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind == yaml.AliasNode {
			val = val.Alias
		}

		switch {
		case val.Kind == yaml.ScalarNode && val.Tag == "!!null":
			out[key.Value] = nil
		case val.Kind == yaml.ScalarNode:
			out[key.Value] = val.Value
		default:
			var v any
			if err := val.Decode(&v); err != nil {
				return err
			}
			out[key.Value] = v
		}
	}

	*m = out
	return nil
}

// LoadDescriptor decodes a descriptor. Unknown descriptor fields are
// rejected; unknown setting keys are left for the schema to report.
func LoadDescriptor(r io.Reader) (*Descriptor, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Descriptor
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrReadingDescriptor, err)
	}

	return &d, nil
}

// LoadDescriptorFile opens and decodes the descriptor at path.
func LoadDescriptorFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadingDescriptor, path, err)
	}
	defer f.Close()

	return LoadDescriptor(f)
}

// VariantNames returns built-in and descriptor variant names, sorted.
func (d *Descriptor) VariantNames() []string {
	names := make([]string, 0, len(d.Variants)+3)
	for _, v := range models.BuiltinVariants() {
		names = append(names, v.Name)
	}
	for name := range d.Variants {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Variant returns the named variant: the built-in policy, tightened by the
// descriptor. A descriptor can add required settings and turn signing on,
// but cannot turn signing off for a variant that signs by default.
func (d *Descriptor) Variant(name string) (models.Variant, error) {
	variant, builtin := models.BuiltinVariant(name)
	spec, described := d.Variants[name]

	if !builtin && !described {
		return models.Variant{}, fmt.Errorf("%w: %q", resolver.ErrUnknownVariant, name)
	}
	if !builtin {
		variant = models.Variant{Name: name}
	}
	if !described {
		return variant, nil
	}

	if spec.RequiresSigning != nil {
		if variant.RequiresSigning && !*spec.RequiresSigning {
			return models.Variant{}, fmt.Errorf("%w: %q", ErrSigningCannotBeDisabled, name)
		}
		variant.RequiresSigning = *spec.RequiresSigning
	}

	for _, key := range spec.Required {
		if !slices.Contains(variant.Required, models.SettingKey(key)) {
			variant.Required = append(variant.Required, models.SettingKey(key))
		}
	}

	return variant, nil
}

// Fragments returns the descriptor's fragments for variant: shared defaults
// first, then the variant overrides. Empty sections produce no fragment.
func (d *Descriptor) Fragments(schema *resolver.Schema, variant string) ([]models.Fragment, error) {
	var fragments []models.Fragment
	var errs []error

	if len(d.Defaults) > 0 {
		f, err := schema.FragmentFromAny("descriptor:defaults", models.SourceDescriptor, d.Defaults)
		if err != nil {
			errs = append(errs, err)
		} else {
			fragments = append(fragments, f)
		}
	}

	if spec, ok := d.Variants[variant]; ok && len(spec.Overrides) > 0 {
		f, err := schema.FragmentFromAny("descriptor:"+variant, models.SourceDescriptor, spec.Overrides)
		if err != nil {
			errs = append(errs, err)
		} else {
			fragments = append(fragments, f)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return fragments, nil
}
