package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoVariant          = errors.New("no variant given")
	ErrEmptyRequiredKey   = errors.New("variant_spec lists an empty required key")
	ErrTooManyFragments   = errors.New("too many fragments")
	ErrDuplicateFragment  = errors.New("duplicate fragment name")
	ErrFragmentNameLength = errors.New("fragment name is too long")
	ErrTooManyValues      = errors.New("too many values in fragment")
	ErrInvalidPlanID      = errors.New("invalid plan id")
)
