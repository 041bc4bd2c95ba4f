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
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/lpdigital/go-utils/errutil"
)

const (
	DefaultDirMode  fs.FileMode = 0o755
	DefaultFileMode fs.FileMode = 0o644
)

type MkdirOption func(*mkdirOptions)

// WithDirMode sets the permission bits of created directories.
func WithDirMode(mode fs.FileMode) MkdirOption {
	return func(o *mkdirOptions) {
		o.mode = mode
	}
}

type mkdirOptions struct {
	mode fs.FileMode
}

// Mkdir creates the directory with all missing parents. If the directory
// already exists and can be read, Mkdir does nothing.
func Mkdir(path string, opts ...MkdirOption) error {
	const op = "fsutil.Mkdir"
	if path == "" {
		return errutil.InvalidArgument(op, path, errEmptyPath)
	}
	o := mkdirOptions{mode: DefaultDirMode}
	for _, opt := range opts {
		opt(&o)
	}
	fi, err := os.Stat(path)
	switch {
	case err == nil && !fi.IsDir():
		return errutil.InvalidArgument(op, path, errNotDir)
	case err == nil:
		if err := readableDir(path); err != nil {
			return errutil.InvalidArgument(op, path, err)
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return errutil.InvalidArgument(op, path, err)
	}
	if err := os.MkdirAll(path, o.mode); err != nil {
		return errutil.InvalidArgument(op, path, err)
	}
	slog.Debug("Directory created", "path", path, "mode", o.mode)
	return nil
}

type CopyOption func(*copyOptions)

// WithFileMode sets the permission bits used when the destination file is
// created.
func WithFileMode(mode fs.FileMode) CopyOption {
	return func(o *copyOptions) {
		o.mode = mode
	}
}

// WithVerify enables comparing the checksums of the source and the
// destination after the copy.
func WithVerify(verify bool) CopyOption {
	return func(o *copyOptions) {
		o.verify = verify
	}
}

type copyOptions struct {
	mode   fs.FileMode
	verify bool
}

// Copy copies the contents of the src file to dst, replacing dst if it
// exists.
func Copy(src, dst string, opts ...CopyOption) (err error) {
	const op = "fsutil.Copy"
	o := copyOptions{mode: DefaultFileMode}
	for _, opt := range opts {
		opt(&o)
	}
	in, err := os.Open(src)
	if err != nil {
		return errutil.InvalidArgument(op, src, err)
	}
	defer func() { err = errutil.Append(err, in.Close()) }()
	srcInfo, err := in.Stat()
	if err != nil {
		return errutil.InvalidArgument(op, src, err)
	}
	if !srcInfo.Mode().IsRegular() {
		return errutil.InvalidArgument(op, src, errNotRegular)
	}
	if dst == "" {
		return errutil.InvalidArgument(op, dst, errEmptyPath)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return errutil.InvalidArgument(op, dst, errSameFile)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, o.mode)
	if err != nil {
		return errutil.InvalidArgument(op, dst, err)
	}
	n, err := io.Copy(out, in)
	if err != nil {
		return errutil.InvalidArgument(op, dst, errutil.Append(err, out.Close()))
	}
	if err := out.Close(); err != nil {
		return errutil.InvalidArgument(op, dst, err)
	}
	slog.Debug("File copied", "src", src, "dst", dst, "bytes", n)
	if o.verify {
		return verifyCopy(src, dst)
	}
	return nil
}

func verifyCopy(src, dst string) error {
	want, err := Checksum(src)
	if err != nil {
		return err
	}
	return VerifyChecksum(dst, want)
}

// readableDir returns an error if path is not a directory whose entries can
// be listed.
func readableDir(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var (
	errEmptyPath        = errors.New("empty path")
	errNotDir           = errors.New("not a directory")
	errNotRegular       = errors.New("not a regular file")
	errSameFile         = errors.New("source and destination are the same file")
	errChecksumMismatch = errors.New("checksum mismatch")
)
