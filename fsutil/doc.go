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

// Package fsutil provides helpers that work on the local filesystem:
// directory creation, file copy, extension or pattern filtered listings,
// zip extraction and path resolution.
//
// Errors caused by unusable arguments, like an empty path or an unreadable
// source, are *errutil.InvalidArgumentError. Errors caused by the state of
// external resources, like a corrupt archive, are *errutil.ApplicationError.
//
// Listings are always sorted, so the result does not depend on the order in
// which the operating system returns directory entries:
//
//	files, err := fsutil.FilesRecursivelyByExtension("fixtures", ".txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Println(f)
//	}
//
// None of the functions cache filesystem state, and none of them coordinate
// concurrent access to the same path.
package fsutil
