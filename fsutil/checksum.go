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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/lpdigital/go-utils/errutil"
)

// Checksum returns the hex encoded 64-bit xxHash of the file contents.
// The checksum is meant for detecting corrupted copies, not for security.
func Checksum(path string) (sum string, err error) {
	const op = "fsutil.Checksum"
	f, err := os.Open(path)
	if err != nil {
		return "", errutil.InvalidArgument(op, path, err)
	}
	defer func() { err = errutil.Append(err, f.Close()) }()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errutil.InvalidArgument(op, path, err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// VerifyChecksum compares the checksum of the file, as returned by Checksum,
// with want. A mismatch is reported as *errutil.ApplicationError.
func VerifyChecksum(path, want string) error {
	const op = "fsutil.VerifyChecksum"
	got, err := Checksum(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, want) {
		return errutil.Application(op, path, fmt.Errorf("%w: expected %s, got %s", errChecksumMismatch, want, got))
	}
	return nil
}
