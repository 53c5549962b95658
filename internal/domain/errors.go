package domain

import "errors"

var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrDeviceUnreachable  = errors.New("device unreachable")
	ErrAppNotFound        = errors.New("app not found")
	ErrRegistrationFailed = errors.New("task registration failed")
	ErrPermissionDenied   = errors.New("insufficient privilege")
)
