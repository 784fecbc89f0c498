package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-build-keeper/models"
)

// Field names accepted by [RequestValidator.Validate].
const (
	FieldVariant      = "variant"
	FieldVariantSpec  = "variant_spec"
	FieldFragments    = "fragments"
	FieldFragmentName = "name"
	FieldValues       = "values"
	FieldPlanID       = "id"
)

// Request limits. A build has a handful of layers and a few dozen settings;
// anything far beyond that is a broken client.
const (
	MaxFragments          = 64
	MaxValuesPerFragment  = 256
	MaxFragmentNameLength = 256
	MaxPlanIDLength       = 64
)

// RequestValidator validates resolve requests, their fragments, and plan
// lookups. Both value and pointer forms are accepted.
type RequestValidator struct{}

// NewRequestValidator constructs a RequestValidator.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.ResolveRequest, models.FragmentInput, and string (a plan id).
// Optional fields restrict validation to the named subset.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ResolveRequest:
		return v.validateResolveRequest(ctx, value, fields...)
	case *models.ResolveRequest:
		return v.validateResolveRequest(ctx, *value, fields...)

	case models.FragmentInput:
		return v.validateFragment(ctx, value, fields...)
	case *models.FragmentInput:
		return v.validateFragment(ctx, *value, fields...)

	case string:
		return v.validatePlanID(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateResolveRequest(ctx context.Context, req models.ResolveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVariant, FieldVariantSpec, FieldFragments}
	}

	for _, f := range fields {
		switch f {
		case FieldVariant:
			if req.Variant == "" && (req.VariantSpec == nil || req.VariantSpec.Name == "") {
				return ErrNoVariant
			}
		case FieldVariantSpec:
			if req.VariantSpec == nil {
				continue
			}
			for _, key := range req.VariantSpec.Required {
				if strings.TrimSpace(string(key)) == "" {
					return ErrEmptyRequiredKey
				}
			}
		case FieldFragments:
			if len(req.Fragments) > MaxFragments {
				return fmt.Errorf("%w: %d > %d", ErrTooManyFragments, len(req.Fragments), MaxFragments)
			}
			seen := make(map[string]struct{}, len(req.Fragments))
			for i, fragment := range req.Fragments {
				if err := v.validateFragment(ctx, fragment); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
				if fragment.Name == "" {
					continue
				}
				if _, dup := seen[fragment.Name]; dup {
					return fmt.Errorf("%w: %q", ErrDuplicateFragment, fragment.Name)
				}
				seen[fragment.Name] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateFragment(ctx context.Context, fragment models.FragmentInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFragmentName, FieldValues}
	}

	for _, f := range fields {
		switch f {
		case FieldFragmentName:
			if len(fragment.Name) > MaxFragmentNameLength {
				return ErrFragmentNameLength
			}
		case FieldValues:
			if len(fragment.Values) > MaxValuesPerFragment {
				return fmt.Errorf("%w: %d > %d", ErrTooManyValues, len(fragment.Values), MaxValuesPerFragment)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePlanID(id string, fields ...string) error {
	for _, f := range fields {
		if f != FieldPlanID {
			return ErrUnknownField
		}
	}
	if id == "" || len(id) > MaxPlanIDLength || strings.ContainsAny(id, "/ \t\n") {
		return ErrInvalidPlanID
	}
	return nil
}
