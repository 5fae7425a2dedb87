package adapter

import "errors"

var (
	// ErrDispatchFailed is returned when the mail relay rejects a message or
	// cannot be reached at all.
	ErrDispatchFailed = errors.New("mail dispatch failed")
)
