package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"didwallet/internal/domain"
)

const (
	dirMode  os.FileMode = 0o700
	fileMode os.FileMode = 0o600
)

// readFile reads the file at path into b; a missing file is not an error.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("read", path, err)
	}
	return b, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
// Missing parent directories are created.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	if err := os.MkdirAll(dir, dirMode); err != nil {
		return storageErr("mkdir", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return storageErr("create", path, err)
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return storageErr("write", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return storageErr("chmod", path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return storageErr("sync", path, err)
	}
	if err := f.Close(); err != nil {
		return storageErr("close", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return storageErr("rename", path, err)
	}
	return nil
}

// removeFile deletes path; a missing file is not an error.
func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return storageErr("remove", path, err)
	}
	return nil
}

// listDir returns the names of regular, non-hidden files in dir. A missing
// directory lists as empty.
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("list", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// validName reports whether s can be used as a single path element.
func validName(s string) bool {
	if s == "" || s == "." || s == ".." || strings.HasPrefix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}

func storageErr(op, path string, err error) error {
	return &domain.StorageError{Op: op, Path: path, Err: err}
}
