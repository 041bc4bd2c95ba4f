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

package pathutil

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type NormalizeOption func(*normalizeOptions)

// WithSeparator sets the separator used for local paths. The default is the
// platform separator. URL paths always use "/". Only ASCII separators are
// supported, other runes are ignored.
func WithSeparator(sep rune) NormalizeOption {
	return func(o *normalizeOptions) {
		if sep > 0 && sep < utf8.RuneSelf {
			o.sep = byte(sep)
		}
	}
}

// WithTrailingSeparator controls whether a trailing separator is kept. By
// default, it is removed.
func WithTrailingSeparator(keep bool) NormalizeOption {
	return func(o *normalizeOptions) {
		o.keepTrailing = keep
	}
}

type normalizeOptions struct {
	sep          byte
	keepTrailing bool
}

// NormalizePath rewrites a local path or a URL into a canonical textual form.
//
// For URLs with a scheme and a host, the scheme, user info, host and port are
// kept as they are and only the path component is normalized, always using
// "/" as the separator. For local paths, every run of slashes and backslashes
// is replaced by a single separator.
//
// If the separator is the platform separator and the normalized local path
// exists, the result is the same as the one returned by RealPath.
func NormalizePath(path string, opts ...NormalizeOption) string {
	o := normalizeOptions{sep: filepath.Separator}
	for _, opt := range opts {
		opt(&o)
	}
	p, _ := parse(path)
	return p.normalize(o)
}

// RealPath returns the canonical absolute form of the path, with all symbolic
// links resolved. The second return value is false if the path does not
// exist, cannot be reached or is a malformed URL. A "file" URL is resolved
// locally; other URLs only have dot segments removed from their path.
func RealPath(path string) (string, bool) {
	if path == "" || strings.HasPrefix(path, "//") {
		return "", false
	}
	p, err := parse(path)
	if err != nil {
		return "", false
	}
	return p.realPath()
}

// parsedPath is either a localPath or a urlPath.
type parsedPath interface {
	normalize(o normalizeOptions) string
	realPath() (string, bool)
}

// parse classifies the path once. If the path looks like a URL but cannot
// be parsed, it is returned as a local path together with the parse error.
func parse(path string) (parsedPath, error) {
	if !strings.Contains(path, "://") {
		return localPath(path), nil
	}
	u, err := parseURL(path)
	if err != nil {
		return localPath(path), err
	}
	return u, nil
}

type localPath string

func (p localPath) normalize(o normalizeOptions) string {
	s := collapseSeparators(string(p), o.sep)
	trailing := len(s) > 0 && s[len(s)-1] == o.sep
	if !o.keepTrailing {
		s = trimTrailing(s, o.sep)
	}
	if o.sep != filepath.Separator {
		return s
	}
	resolved, ok := localPath(s).realPath()
	if !ok {
		return s
	}
	if o.keepTrailing && trailing && !isRoot(resolved, o.sep) {
		if fi, err := os.Stat(resolved); err == nil && fi.IsDir() {
			resolved += string(o.sep)
		}
	}
	return resolved
}

func (p localPath) realPath() (string, bool) {
	if p == "" {
		return "", false
	}
	abs, err := filepath.Abs(collapseSeparators(string(p), filepath.Separator))
	if err != nil {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", false
	}
	return resolved, true
}

// collapseSeparators replaces every run of slashes and backslashes with
// a single sep.
func collapseSeparators(s string, sep byte) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); i++ {
		if s[i] == '/' || s[i] == '\\' {
			if !inRun {
				b.WriteByte(sep)
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteByte(s[i])
	}
	return b.String()
}

// trimTrailing removes one trailing separator unless the path is a root.
func trimTrailing(s string, sep byte) string {
	if isRoot(s, sep) || len(s) == 0 || s[len(s)-1] != sep {
		return s
	}
	return s[:len(s)-1]
}

// isRoot reports whether s is a lone separator or a drive root ("C:\").
func isRoot(s string, sep byte) bool {
	switch len(s) {
	case 1:
		return s[0] == sep
	case 3:
		return s[1] == ':' && s[2] == sep
	}
	return false
}
