package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrRecordingDisabled is returned when a caller asks to record a plan
	// but no plan store is configured.
	ErrRecordingDisabled = errors.New("plan recording is disabled")

	// ErrPlanNotFound is returned when a plan id is unknown.
	ErrPlanNotFound = errors.New("build plan not found")
)
