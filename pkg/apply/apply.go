// Package apply commits planned writes to the filesystem.
//
// Each write is independent and fully self-contained: remove whatever
// sits at the destination, make sure its parent directory exists, write
// the new content. There is no ordering between writes and no atomic
// rename; a destination is simply replaced.
package apply

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dots/pkg/errors"
	"github.com/arthur-debert/dots/pkg/logging"
	"github.com/arthur-debert/dots/pkg/types"
)

// Apply commits one planned write. Absence of a pre-existing file at
// the destination is not an error; every other failure carries the
// offending path and the step that failed.
func Apply(fs types.FS, write types.PlannedWrite) error {
	logger := logging.GetLogger("apply")

	if err := fs.Remove(write.Path); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove file").
				WithDetail("path", write.Path)
		}
	} else {
		logger.Info().Str("path", write.Path).Msg("removed existing file")
	}

	dir := filepath.Dir(write.Path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory").
			WithDetail("path", dir)
	}

	if err := fs.WriteFile(write.Path, []byte(write.Contents), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write file").
			WithDetail("path", write.Path)
	}

	logger.Info().Str("path", write.Path).Int("bytes", len(write.Contents)).Msg("wrote file")
	return nil
}

// ApplyAll commits every write, collecting per-write failures instead
// of stopping at the first one.
func ApplyAll(fs types.FS, writes []types.PlannedWrite) []error {
	var errs errors.List
	for _, write := range writes {
		errs.Append(Apply(fs, write))
	}
	return errs.Errors()
}
