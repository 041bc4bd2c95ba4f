// Copyright (C) 2021-2025 Chronicle Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/lpdigital/go-utils/errutil"
)

// ExtractZipArchive extracts the zip archive into the dest directory, which
// must exist and be writable.
//
// Unless overwrite is true, the extraction is refused before anything is
// written if any file of the archive already exists in dest. Entries whose
// name would escape dest, either lexically or through a symbolic link that
// already exists in dest, are rejected. Symbolic link entries are skipped.
//
// All failures are reported as *errutil.ApplicationError.
func ExtractZipArchive(archive, dest string, overwrite bool) (err error) {
	const op = "fsutil.ExtractZipArchive"
	r, err := zip.OpenReader(archive)
	if err != nil {
		return errutil.Application(op, archive, err)
	}
	defer func() { err = errutil.Append(err, r.Close()) }()
	if err := writableDir(dest); err != nil {
		return errutil.Application(op, dest, err)
	}
	root, err := os.OpenRoot(dest)
	if err != nil {
		return errutil.Application(op, dest, err)
	}
	defer func() { err = errutil.Append(err, root.Close()) }()
	names := make([]string, len(r.File))
	for i, f := range r.File {
		name := filepath.FromSlash(f.Name)
		if !filepath.IsLocal(name) {
			return errutil.Application(op, archive, fmt.Errorf("%w: %q", errUnsafeEntry, f.Name))
		}
		names[i] = name
		if overwrite || f.FileInfo().IsDir() {
			continue
		}
		switch _, err := root.Lstat(name); {
		case err == nil:
			return errutil.Application(op, filepath.Join(dest, name), errTargetExists)
		case !errors.Is(err, fs.ErrNotExist):
			return errutil.Application(op, filepath.Join(dest, name), err)
		}
	}
	for i, f := range r.File {
		if err := extractFile(root, f, names[i]); err != nil {
			return errutil.Application(op, filepath.Join(dest, names[i]), err)
		}
	}
	slog.Debug("Archive extracted", "archive", archive, "dest", dest, "entries", len(r.File))
	return nil
}

// extractFile writes a single entry below root. Every access goes through
// root, so symbolic links cannot lead outside of it.
func extractFile(root *os.Root, f *zip.File, name string) (err error) {
	mode := f.Mode()
	switch {
	case mode.IsDir():
		return mkdirAll(root, name, dirMode(mode))
	case mode&fs.ModeSymlink != 0:
		slog.Debug("Skipping symbolic link entry", "name", f.Name)
		return nil
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := mkdirAll(root, dir, DefaultDirMode); err != nil {
			return err
		}
	}
	perm := mode.Perm()
	if perm == 0 {
		perm = DefaultFileMode
	}
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { err = errutil.Append(err, in.Close()) }()
	out, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		return errutil.Append(err, out.Close())
	}
	return out.Close()
}

// mkdirAll creates the directory name below root along with its parents.
func mkdirAll(root *os.Root, name string, perm fs.FileMode) error {
	var dir string
	for _, part := range strings.Split(name, string(filepath.Separator)) {
		dir = filepath.Join(dir, part)
		err := root.Mkdir(dir, perm)
		if err == nil || errors.Is(err, fs.ErrExist) {
			continue
		}
		return err
	}
	fi, err := root.Stat(name)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return errNotDir
	}
	return nil
}

func dirMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return DefaultDirMode
	}
	return mode.Perm()
}

// writableDir returns an error if path is not a directory in which files
// can be created.
func writableDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return errNotDir
	}
	f, err := os.CreateTemp(path, ".fsutil-probe-*")
	if err != nil {
		return err
	}
	return errutil.Append(f.Close(), os.Remove(f.Name()))
}

var (
	errUnsafeEntry  = errors.New("archive entry escapes the destination")
	errTargetExists = errors.New("file already exists")
)
