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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpdigital/go-utils/errutil"
)

// tempDir returns a temporary directory with symbolic links resolved, so
// results can be compared with the output of RealPath.
func tempDir(t *testing.T) string {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func skipIfPermissionsIgnored(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
}

// fixtures creates the following tree and returns the root:
//
//	foo/bar.txt
//	foo/foo.txt
//	foo/baz.php
//	foo/backbee.yml
//	foo/noextension
//	foo/sub/deep.txt
//	foo/sub/deeper/last.yml
func fixtures(t *testing.T) string {
	root := tempDir(t)
	for _, name := range []string{
		"foo/bar.txt",
		"foo/foo.txt",
		"foo/baz.php",
		"foo/backbee.yml",
		"foo/noextension",
		"foo/sub/deep.txt",
		"foo/sub/deeper/last.yml",
	} {
		writeFile(t, filepath.Join(root, filepath.FromSlash(name)), name)
	}
	return root
}

func TestMkdir(t *testing.T) {
	root := tempDir(t)

	t.Run("creates parents", func(t *testing.T) {
		path := filepath.Join(root, "a", "b", "c")
		require.NoError(t, Mkdir(path))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	})
	t.Run("existing directory", func(t *testing.T) {
		require.NoError(t, Mkdir(root))
	})
	t.Run("mode", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not supported")
		}
		path := filepath.Join(root, "moded")
		require.NoError(t, Mkdir(path, WithDirMode(0o700)))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	})
	t.Run("empty path", func(t *testing.T) {
		assert.True(t, errutil.IsInvalidArgument(Mkdir("")))
	})
	t.Run("file in the way", func(t *testing.T) {
		path := filepath.Join(root, "file")
		writeFile(t, path, "x")
		err := Mkdir(path)
		assert.True(t, errutil.IsInvalidArgument(err))
		assert.ErrorIs(t, err, errNotDir)
	})
	t.Run("unreadable directory", func(t *testing.T) {
		skipIfPermissionsIgnored(t)
		path := filepath.Join(root, "private")
		require.NoError(t, os.Mkdir(path, 0o000))
		t.Cleanup(func() { _ = os.Chmod(path, 0o755) })
		assert.True(t, errutil.IsInvalidArgument(Mkdir(path)))
		assert.True(t, errutil.IsInvalidArgument(Mkdir(filepath.Join(path, "child"))))
	})
}

func TestCopy(t *testing.T) {
	root := tempDir(t)
	src := filepath.Join(root, "src.txt")
	writeFile(t, src, "hello world")

	t.Run("new file", func(t *testing.T) {
		dst := filepath.Join(root, "dst.txt")
		require.NoError(t, Copy(src, dst))
		b, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(b))
	})
	t.Run("replaces existing", func(t *testing.T) {
		dst := filepath.Join(root, "existing.txt")
		writeFile(t, dst, "a much longer previous content")
		require.NoError(t, Copy(src, dst, WithVerify(true)))
		b, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(b))
	})
	t.Run("file mode", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not supported")
		}
		dst := filepath.Join(root, "moded.txt")
		require.NoError(t, Copy(src, dst, WithFileMode(0o600)))
		fi, err := os.Stat(dst)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	})
	t.Run("missing source", func(t *testing.T) {
		err := Copy(filepath.Join(root, "missing"), filepath.Join(root, "x"))
		assert.True(t, errutil.IsInvalidArgument(err))
	})
	t.Run("directory source", func(t *testing.T) {
		err := Copy(root, filepath.Join(root, "x"))
		assert.ErrorIs(t, err, errNotRegular)
	})
	t.Run("same file", func(t *testing.T) {
		err := Copy(src, src)
		assert.ErrorIs(t, err, errSameFile)
		b, err := os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(b))
	})
	t.Run("missing destination directory", func(t *testing.T) {
		err := Copy(src, filepath.Join(root, "nope", "dst.txt"))
		assert.True(t, errutil.IsInvalidArgument(err))
	})
	t.Run("unreadable source", func(t *testing.T) {
		skipIfPermissionsIgnored(t)
		private := filepath.Join(root, "private.txt")
		writeFile(t, private, "secret")
		require.NoError(t, os.Chmod(private, 0o000))
		err := Copy(private, filepath.Join(root, "y"))
		assert.True(t, errutil.IsInvalidArgument(err))
	})
}

func TestFilesByExtension(t *testing.T) {
	root := fixtures(t)
	foo := filepath.Join(root, "foo")
	in := func(names ...string) []string {
		var paths []string
		for _, n := range names {
			paths = append(paths, filepath.Join(foo, filepath.FromSlash(n)))
		}
		return paths
	}
	tc := []struct {
		name      string
		ext       string
		recursive bool
		want      []string
	}{
		{name: "txt", ext: "txt", want: in("bar.txt", "foo.txt")},
		{name: "dotted", ext: ".txt", want: in("bar.txt", "foo.txt")},
		{name: "php", ext: "php", want: in("baz.php")},
		{name: "no extension", ext: "", want: in("noextension")},
		{name: "unknown", ext: "xml", want: []string{}},
		{name: "recursive txt", ext: "txt", recursive: true, want: in("bar.txt", "foo.txt", "sub/deep.txt")},
		{name: "recursive yml", ext: ".yml", recursive: true, want: in("backbee.yml", "sub/deeper/last.yml")},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListFilesByExtension(foo, tt.ext, tt.recursive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("relative directory", func(t *testing.T) {
		t.Chdir(root)
		got, err := FilesByExtension("foo", "php")
		require.NoError(t, err)
		assert.Equal(t, in("baz.php"), got)
	})
	t.Run("missing directory", func(t *testing.T) {
		_, err := FilesByExtension(filepath.Join(root, "missing"), "txt")
		assert.True(t, errutil.IsInvalidArgument(err))
	})
	t.Run("file instead of directory", func(t *testing.T) {
		_, err := FilesRecursivelyByExtension(filepath.Join(foo, "bar.txt"), "txt")
		assert.True(t, errutil.IsInvalidArgument(err))
	})
	t.Run("empty directory name", func(t *testing.T) {
		_, err := FilesByExtension("", "txt")
		assert.True(t, errutil.IsInvalidArgument(err))
	})
}

func TestFilesByExtensionPermissions(t *testing.T) {
	skipIfPermissionsIgnored(t)
	root := fixtures(t)
	foo := filepath.Join(root, "foo")
	private := filepath.Join(foo, "private")
	writeFile(t, filepath.Join(private, "hidden.txt"), "x")
	require.NoError(t, os.Chmod(private, 0o000))
	t.Cleanup(func() { _ = os.Chmod(private, 0o755) })

	got, err := FilesRecursivelyByExtension(foo, "txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(foo, "bar.txt"),
		filepath.Join(foo, "foo.txt"),
		filepath.Join(foo, "sub", "deep.txt"),
	}, got)

	_, err = FilesByExtension(private, "txt")
	assert.True(t, errutil.IsInvalidArgument(err))
}

func TestFilesBySymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symbolic links require privileges")
	}
	root := fixtures(t)
	foo := filepath.Join(root, "foo")
	require.NoError(t, os.Symlink(filepath.Join(foo, "bar.txt"), filepath.Join(foo, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(foo, "sub"), filepath.Join(foo, "dirlink.txt")))

	got, err := FilesByExtension(foo, "txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(foo, "bar.txt"),
		filepath.Join(foo, "foo.txt"),
		filepath.Join(foo, "link.txt"),
	}, got)
}

func TestFilesInSymlinkedDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symbolic links require privileges")
	}
	root := fixtures(t)
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(filepath.Join(root, "foo"), link))

	got, err := FilesByExtension(link, "txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(link, "bar.txt"),
		filepath.Join(link, "foo.txt"),
	}, got)

	got, err = FilesRecursivelyByExtension(link, "yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(link, "backbee.yml"),
		filepath.Join(link, "sub", "deeper", "last.yml"),
	}, got)

	got, err = FilesByPattern(link, "sub/*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(link, "sub", "deep.txt")}, got)

	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))
	_, err = FilesByExtension(filepath.Join(root, "dangling"), "txt")
	assert.True(t, errutil.IsInvalidArgument(err))
}

func TestFilesByPattern(t *testing.T) {
	root := fixtures(t)
	foo := filepath.Join(root, "foo")
	tc := []struct {
		pattern string
		want    []string
	}{
		{pattern: "*.txt", want: []string{"bar.txt", "foo.txt"}},
		{pattern: "**.txt", want: []string{"bar.txt", "foo.txt", "sub/deep.txt"}},
		{pattern: "sub/**", want: []string{"sub/deep.txt", "sub/deeper/last.yml"}},
		{pattern: "{bar,baz}.*", want: []string{"bar.txt", "baz.php"}},
		{pattern: "noext*", want: []string{"noextension"}},
		{pattern: "*.xml", want: []string{}},
	}
	for _, tt := range tc {
		t.Run(tt.pattern, func(t *testing.T) {
			want := []string{}
			for _, n := range tt.want {
				want = append(want, filepath.Join(foo, filepath.FromSlash(n)))
			}
			got, err := FilesByPattern(foo, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := FilesByPattern(foo, "[")
	assert.True(t, errutil.IsInvalidArgument(err))
}

func TestResolveFilepath(t *testing.T) {
	root := fixtures(t)
	foo := filepath.Join(root, "foo")
	bar := filepath.Join(foo, "bar.txt")

	t.Run("absolute existing", func(t *testing.T) {
		p := bar
		ResolveFilepath(&p)
		assert.Equal(t, bar, p)
	})
	t.Run("base directory", func(t *testing.T) {
		p := "bar.txt"
		ResolveFilepath(&p, WithBaseDir(filepath.Join(root, "missing")), WithBaseDir(foo))
		assert.Equal(t, bar, p)
	})
	t.Run("base directories order", func(t *testing.T) {
		writeFile(t, filepath.Join(foo, "sub", "bar.txt"), "shadow")
		p := "bar.txt"
		ResolveFilepath(&p, WithBaseDirs(filepath.Join(foo, "sub"), foo))
		assert.Equal(t, filepath.Join(foo, "sub", "bar.txt"), p)
	})
	t.Run("working directory", func(t *testing.T) {
		t.Chdir(foo)
		p := "./sub/../bar.txt"
		ResolveFilepath(&p)
		assert.Equal(t, bar, p)
	})
	t.Run("missing file is normalized", func(t *testing.T) {
		p := "missing//dir/"
		ResolveFilepath(&p, WithBaseDir(foo))
		assert.Equal(t, filepath.Join("missing", "dir"), p)
	})
	t.Run("url", func(t *testing.T) {
		p := "https://example.com//a//b/"
		ResolveFilepath(&p)
		assert.Equal(t, "https://example.com/a/b", p)
	})
	t.Run("nil", func(t *testing.T) {
		assert.NotPanics(t, func() { ResolveFilepath(nil) })
	})
}
