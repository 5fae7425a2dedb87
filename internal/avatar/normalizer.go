package avatar

import (
	"fmt"
	"image"
	"io"

	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/disintegration/imaging"
)

// Canonical avatar dimensions. Every stored avatar is a square crop scaled
// to exactly this size.
const (
	avatarWidth  = 250
	avatarHeight = 250
)

// imageNormalizer is the default implementation of [Normalizer]. It decodes
// the upload and produces a center-cropped 250×250 rendition using Lanczos
// resampling.
type imageNormalizer struct {
	logger *logger.Logger
}

// NewNormalizer constructs a [Normalizer].
func NewNormalizer(logger *logger.Logger) Normalizer {
	logger.Debug().Msg("creating avatar normalizer")
	return &imageNormalizer{logger: logger}
}

// Normalize decodes the uploaded image and scales it to the canonical avatar
// dimensions. The aspect ratio is preserved by cropping to the center before
// scaling, so no distortion is introduced.
//
// Returns [ErrUnsupportedImage] if the payload cannot be decoded.
func (n *imageNormalizer) Normalize(upload io.Reader) (image.Image, error) {
	img, err := imaging.Decode(upload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	return imaging.Fill(img, avatarWidth, avatarHeight, imaging.Center, imaging.Lanczos), nil
}
