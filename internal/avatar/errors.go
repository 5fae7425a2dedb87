package avatar

import "errors"

var (
	// ErrUnsupportedImage is returned when an upload cannot be decoded as an
	// image or carries an extension without a known encoder.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrSavingAvatar is returned when a normalized avatar cannot be written
	// to the file store.
	ErrSavingAvatar = errors.New("failed to save avatar file")
)
