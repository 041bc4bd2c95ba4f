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
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/lpdigital/go-utils/errutil"
	"github.com/lpdigital/go-utils/pathutil"
)

// FilesByExtension returns the absolute paths of the files directly inside
// dir whose extension is ext. The leading dot of ext is optional, and an
// empty ext matches files without an extension.
func FilesByExtension(dir, ext string) ([]string, error) {
	return listFiles("fsutil.FilesByExtension", dir, extMatcher(ext), false)
}

// FilesRecursivelyByExtension works like FilesByExtension but searches the
// whole tree below dir. Subdirectories that cannot be read are skipped.
func FilesRecursivelyByExtension(dir, ext string) ([]string, error) {
	return listFiles("fsutil.FilesRecursivelyByExtension", dir, extMatcher(ext), true)
}

// ListFilesByExtension calls FilesRecursivelyByExtension if recursive is true
// and FilesByExtension otherwise.
func ListFilesByExtension(dir, ext string, recursive bool) ([]string, error) {
	if recursive {
		return FilesRecursivelyByExtension(dir, ext)
	}
	return FilesByExtension(dir, ext)
}

// FilesByPattern returns the absolute paths of the files below dir whose
// path relative to dir matches the glob pattern. The relative path always
// uses "/" as the separator, so "**/*.txt" or "{foo,bar}.yml" work on every
// platform.
func FilesByPattern(dir, pattern string) ([]string, error) {
	const op = "fsutil.FilesByPattern"
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errutil.InvalidArgument(op, pattern, err)
	}
	return listFiles(op, dir, func(rel string) bool {
		return g.Match(filepath.ToSlash(rel))
	}, true)
}

// matchFunc reports whether a file, given by its path relative to the
// listed directory, must be returned.
type matchFunc func(rel string) bool

func extMatcher(ext string) matchFunc {
	want := strings.TrimPrefix(ext, ".")
	return func(rel string) bool {
		return pathutil.GetExtension(rel, false) == want
	}
}

func listFiles(op, dir string, match matchFunc, recursive bool) ([]string, error) {
	if dir == "" {
		return nil, errutil.InvalidArgument(op, dir, errEmptyPath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errutil.InvalidArgument(op, dir, err)
	}
	// WalkDir does not follow a symbolic link given as the root.
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, errutil.InvalidArgument(op, dir, err)
	}
	if err := readableDir(root); err != nil {
		return nil, errutil.InvalidArgument(op, dir, err)
	}
	files := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Debug("Skipping unreadable directory", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if path != root && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !isRegular(path, d) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if match(rel) {
			files = append(files, filepath.Join(abs, rel))
		}
		return nil
	})
	if err != nil {
		return nil, errutil.InvalidArgument(op, dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// isRegular reports whether the entry is a regular file or a symbolic link
// to one.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
