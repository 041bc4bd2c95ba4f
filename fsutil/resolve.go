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
	"path/filepath"

	"github.com/lpdigital/go-utils/arrayutil"
	"github.com/lpdigital/go-utils/pathutil"
)

type ResolveOption func(*resolveOptions)

// WithBaseDir adds a directory against which relative paths are tried.
// Directories already added are ignored.
func WithBaseDir(dir string) ResolveOption {
	return func(o *resolveOptions) {
		o.baseDirs = arrayutil.AppendUnique(o.baseDirs, dir)
	}
}

// WithBaseDirs adds several base directories, tried in the given order.
func WithBaseDirs(dirs ...string) ResolveOption {
	return func(o *resolveOptions) {
		o.baseDirs = arrayutil.AppendUnique(o.baseDirs, dirs...)
	}
}

type resolveOptions struct {
	baseDirs []string
}

// ResolveFilepath rewrites *path in place to the canonical absolute form of
// the file it refers to.
//
// A relative path is first tried against every base directory, then against
// the working directory. If nothing exists, *path is replaced by its
// normalized form. A nil pointer is ignored.
func ResolveFilepath(path *string, opts ...ResolveOption) {
	if path == nil {
		return
	}
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}
	if *path != "" && !filepath.IsAbs(*path) {
		for _, dir := range o.baseDirs {
			if dir == "" {
				continue
			}
			if p, ok := pathutil.RealPath(filepath.Join(dir, *path)); ok {
				*path = p
				return
			}
		}
	}
	normalized := pathutil.NormalizePath(*path)
	if p, ok := pathutil.RealPath(normalized); ok {
		*path = p
		return
	}
	*path = normalized
}
