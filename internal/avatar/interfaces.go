// Package avatar normalizes uploaded avatar images and persists them on the
// local filesystem so they can be served as static files.
package avatar

import (
	"image"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/avatar_mock.go -package=mock

// Normalizer decodes an uploaded image and scales it to the canonical
// avatar dimensions.
type Normalizer interface {
	Normalize(upload io.Reader) (image.Image, error)
}

// FileStore persists normalized avatar images under stable file names.
type FileStore interface {
	Save(fileName string, img image.Image) error
	Dir() string
}
