package avatar

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/disintegration/imaging"
)

// localFileStore is the filesystem-backed implementation of [FileStore].
// Writes go through a temporary file followed by a rename, so readers never
// observe a partially written avatar.
type localFileStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileStore constructs a [FileStore] rooted at dir. The directory is
// created if it does not exist yet.
func NewFileStore(dir string, logger *logger.Logger) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Err(err).Str("func", "NewFileStore").Msg("error creating avatar directory")
		return nil, fmt.Errorf("error creating avatar directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("creating avatar file store")
	return &localFileStore{dir: dir, logger: logger}, nil
}

// Save encodes img in the format implied by fileName's extension and writes
// it to the store. A previously stored avatar with the same name is replaced
// atomically.
//
// Returns [ErrUnsupportedImage] for extensions without a known encoder and
// [ErrSavingAvatar] for I/O failures.
func (s *localFileStore) Save(fileName string, img image.Image) error {
	format, err := imaging.FormatFromFilename(fileName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	tmp, err := os.CreateTemp(s.dir, "upload-*"+filepath.Ext(fileName))
	if err != nil {
		s.logger.Err(err).Str("func", "*localFileStore.Save").Msg("error creating temp avatar file")
		return fmt.Errorf("%w: %w", ErrSavingAvatar, err)
	}
	tmpName := tmp.Name()

	if err := imaging.Encode(tmp, img, format); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSavingAvatar, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSavingAvatar, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, fileName)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSavingAvatar, err)
	}

	return nil
}

// Dir returns the root directory avatars are stored in.
func (s *localFileStore) Dir() string {
	return s.dir
}
