package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	siblingMarker   = ".tk"
	maxSiblingSlots = 100
)

// scratch holds the sibling paths used while a target file is replaced.
type scratch struct {
	target string
	temp   string
	backup string
}

func reserveScratch(fs afero.Fs, target string) (scratch, error) {
	temp, err := freeSibling(fs, target, ".tmp")
	if err != nil {
		return scratch{}, err
	}
	backup, err := freeSibling(fs, target, ".bak")
	if err != nil {
		return scratch{}, err
	}
	return scratch{target: target, temp: temp, backup: backup}, nil
}

// writeAtomic writes data next to target and renames it into place, so readers see either
// the old content or the new content.
func writeAtomic(fs afero.Fs, target string, data []byte, perm os.FileMode) error {
	paths, err := reserveScratch(fs, target)
	if err != nil {
		return err
	}

	if err := removeIfExists(fs, paths.temp); err != nil {
		return removeError("temp file", paths.temp, err)
	}
	if err := afero.WriteFile(fs, paths.temp, data, perm); err != nil {
		return err
	}

	exists, err := afero.Exists(fs, target)
	if err != nil {
		return paths.discardTemp(fs, err)
	}
	if !exists {
		return paths.moveIntoPlace(fs)
	}
	return paths.swap(fs)
}

func freeSibling(fs afero.Fs, target string, suffix string) (string, error) {
	base := target + siblingMarker + suffix

	candidate := base
	for slot := 1; slot <= maxSiblingSlots; slot++ {
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s.%d", base, slot)
	}

	return "", fmt.Errorf("no free %s path next to %s", suffix, target)
}

func removeIfExists(fs afero.Fs, path string) error {
	err := fs.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func removeError(kind string, path string, err error) error {
	return fmt.Errorf("failed to remove %s %s: %w", kind, path, err)
}

func (s scratch) discardTemp(fs afero.Fs, cause error) error {
	if err := removeIfExists(fs, s.temp); err != nil {
		return errors.Join(cause, removeError("temp file", s.temp, err))
	}
	return cause
}

func (s scratch) moveIntoPlace(fs afero.Fs) error {
	if err := fs.Rename(s.temp, s.target); err != nil {
		return s.discardTemp(fs, err)
	}
	return nil
}

// swap replaces an existing target. A direct overwrite rename is tried first; filesystems
// that refuse it go through a backup that is restored if the second rename fails.
func (s scratch) swap(fs afero.Fs) error {
	if err := fs.Rename(s.temp, s.target); err == nil {
		return nil
	}

	if err := fs.Rename(s.target, s.backup); err != nil {
		return s.discardTemp(fs, err)
	}

	if err := fs.Rename(s.temp, s.target); err != nil {
		return s.rollback(fs, err)
	}

	if err := removeIfExists(fs, s.backup); err != nil {
		return removeError("backup file", s.backup, err)
	}
	return nil
}

func (s scratch) rollback(fs afero.Fs, cause error) error {
	cause = s.discardTemp(fs, cause)
	if err := fs.Rename(s.backup, s.target); err != nil {
		cause = errors.Join(cause, fmt.Errorf("failed to restore backup %s: %w", s.backup, err))
	}
	return cause
}
