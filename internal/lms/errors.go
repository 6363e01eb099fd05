package lms

import "errors"

var (
	ErrDisabled     = errors.New("lms integration is disabled")
	ErrUnauthorized = errors.New("lms rejected the access token")
	ErrNotFound     = errors.New("course not found in lms")
	ErrUnavailable  = errors.New("lms is unavailable")
	ErrRejected     = errors.New("lms rejected the request")
)
