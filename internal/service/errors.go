package service

import "errors"

var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidInput         = errors.New("invalid input")

	ErrUserNotFound       = errors.New("user not found")
	ErrProfileIncomplete  = errors.New("training profile is incomplete: fitness level is required")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrExerciseExists     = errors.New("exercise with this name already exists")
	ErrMediaNotAvailable  = errors.New("exercise has no demonstration media")
	ErrStorageUnavailable = errors.New("media storage is not configured")

	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("access denied to this workout")
	ErrInvalidAdaptation   = errors.New("invalid adaptation")
)
