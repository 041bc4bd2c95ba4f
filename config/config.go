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

// Package config loads the defaults used by the fsutil command from
// environment variables and an optional HCL file.
//
// Environment variables use the FSUTIL_ prefix:
//
//	FSUTIL_BASE_DIRS    list of base directories, separated like PATH
//	FSUTIL_DIR_MODE     octal mode of created directories (0755)
//	FSUTIL_FILE_MODE    octal mode of copied files (0644)
//	FSUTIL_PRECISION    fractional digits of human readable sizes (2)
//	FSUTIL_VERIFY_COPY  verify copies with checksums (false)
//	FSUTIL_OVERWRITE    overwrite files when extracting archives (false)
//	FSUTIL_LOG_LEVEL    log level (info)
//	FSUTIL_LOG_FORMAT   log format, text or json (text)
//
// A file loaded with LoadFile overrides the values it sets:
//
//	variables {
//	  root = env.HOME
//	  data = "${var.root}/data"
//	}
//
//	base_dirs = [var.data, "/srv/files"]
//	dir_mode  = "0750"
//	log_level = "debug"
package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"

	envconfig "github.com/gobeaver/beaver-kit/config"

	"github.com/lpdigital/go-utils/fsutil"
	"github.com/lpdigital/go-utils/pathutil"
)

// EnvPrefix is the prefix of all environment variables read by Load.
const EnvPrefix = "FSUTIL_"

type Config struct {
	BaseDirs   []string
	DirMode    fs.FileMode
	FileMode   fs.FileMode
	Precision  int
	VerifyCopy bool
	Overwrite  bool
	LogLevel   string
	LogFormat  string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DirMode:   fsutil.DefaultDirMode,
		FileMode:  fsutil.DefaultFileMode,
		Precision: pathutil.DefaultSizePrecision,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load returns the configuration read from the environment. Unset variables
// keep their default value.
func Load() (Config, error) {
	var env envConfig
	if err := envconfig.Load(&env, envconfig.LoadOptions{Prefix: EnvPrefix}); err != nil {
		return Config{}, errLoadFn(err)
	}
	c, err := env.config()
	if err != nil {
		return Config{}, errLoadFn(err)
	}
	return c, nil
}

// MkdirOptions returns the fsutil.Mkdir options matching the configuration.
func (c Config) MkdirOptions() []fsutil.MkdirOption {
	return []fsutil.MkdirOption{fsutil.WithDirMode(c.DirMode)}
}

// CopyOptions returns the fsutil.Copy options matching the configuration.
func (c Config) CopyOptions() []fsutil.CopyOption {
	return []fsutil.CopyOption{
		fsutil.WithFileMode(c.FileMode),
		fsutil.WithVerify(c.VerifyCopy),
	}
}

// ResolveOptions returns the fsutil.ResolveFilepath options matching the
// configuration.
func (c Config) ResolveOptions() []fsutil.ResolveOption {
	return []fsutil.ResolveOption{fsutil.WithBaseDirs(c.BaseDirs...)}
}

type envConfig struct {
	BaseDirs   string `env:"BASE_DIRS"`
	DirMode    string `env:"DIR_MODE,default:0755"`
	FileMode   string `env:"FILE_MODE,default:0644"`
	Precision  int    `env:"PRECISION,default:2"`
	VerifyCopy bool   `env:"VERIFY_COPY,default:false"`
	Overwrite  bool   `env:"OVERWRITE,default:false"`
	LogLevel   string `env:"LOG_LEVEL,default:info"`
	LogFormat  string `env:"LOG_FORMAT,default:text"`
}

func (e envConfig) config() (c Config, err error) {
	c = Config{
		Precision:  e.Precision,
		VerifyCopy: e.VerifyCopy,
		Overwrite:  e.Overwrite,
		LogLevel:   e.LogLevel,
		LogFormat:  e.LogFormat,
	}
	if e.BaseDirs != "" {
		c.BaseDirs = filepath.SplitList(e.BaseDirs)
	}
	if c.DirMode, err = parseMode("DIR_MODE", e.DirMode); err != nil {
		return Config{}, err
	}
	if c.FileMode, err = parseMode("FILE_MODE", e.FileMode); err != nil {
		return Config{}, err
	}
	return c, nil
}

// parseMode parses permission bits written in octal, with or without the
// leading zero.
func parseMode(name, s string) (fs.FileMode, error) {
	m, err := strconv.ParseUint(s, 8, 32)
	if err != nil || m > uint64(fs.ModePerm) {
		return 0, fmt.Errorf("invalid %s value %q: expected octal permission bits", name, s)
	}
	return fs.FileMode(m), nil
}

func formatMode(m fs.FileMode) string {
	return fmt.Sprintf("%04o", uint32(m.Perm()))
}

func errLoadFn(err error) error {
	return fmt.Errorf("config.Load: %w", err)
}
