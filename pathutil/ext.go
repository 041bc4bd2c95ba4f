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
	"strings"
)

// GetExtension returns the part of the last path segment that follows the
// last dot. It returns an empty string if the segment has no dot or nothing
// follows it. If withDot is true, a non-empty result is prefixed with a dot.
//
// A name that starts with its only dot, such as ".bashrc", is all extension:
// GetExtension returns "bashrc" and RemoveExtension returns "".
//
// Segments are separated by both slashes and backslashes.
func GetExtension(filename string, withDot bool) string {
	_, name := splitLast(filename)
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	if withDot {
		return name[i:]
	}
	return name[i+1:]
}

// RemoveExtension returns the filename without the extension of its last
// path segment. It returns an empty string if the filename is empty or
// starts with a dot, since the whole name is then an extension.
func RemoveExtension(filename string) string {
	if filename == "" || filename[0] == '.' {
		return ""
	}
	dir, name := splitLast(filename)
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return filename
	}
	return filename[:len(dir)+i]
}

// splitLast splits s after its last slash or backslash.
func splitLast(s string) (dir, name string) {
	i := strings.LastIndexAny(s, `/\`)
	return s[:i+1], s[i+1:]
}
