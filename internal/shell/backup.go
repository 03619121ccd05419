package shell

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
)

// EnsureBackup copies source to backup unless backup already exists. An
// existing backup is never overwritten.
func EnsureBackup(source, backup string) (foundation.Change[string], error) {
	if _, err := os.Stat(backup); err == nil {
		slog.Info("Backup file already exists", logfields.Path(backup))
		return foundation.Unmodified(backup), nil
	}
	if err := copyFile(source, backup); err != nil {
		return foundation.Unmodified(backup), err
	}
	slog.Info("Backup created", logfields.Path(backup))
	return foundation.Modified(backup), nil
}

// Restore overwrites target with the content of backup.
func Restore(backup, target string) (foundation.Change[string], error) {
	if err := copyFile(backup, target); err != nil {
		return foundation.Unmodified(target), err
	}
	slog.Info("Restored HTML shell from backup", logfields.Path(target))
	return foundation.Modified(target), nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(filepath.Clean(src))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.WrapError(err, errors.CategoryMissingInput, "copy source not found").WithContext("path", src).Build()
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read copy source").WithContext("path", src).Build()
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(src); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(dst, data, mode); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write copy").WithContext("path", dst).Build()
	}
	return nil
}
