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

// Package commands implements the fsutil command line interface.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lpdigital/go-utils/config"
	"github.com/lpdigital/go-utils/errutil"
	"github.com/lpdigital/go-utils/logutil"
)

const (
	shortDesc = "Path, file and archive utilities."
	longDesc  = `Path, file and archive utilities.

Defaults are read from FSUTIL_* environment variables and can be
overridden by an HCL file given with --config, then by flags.

Errors caused by invalid arguments exit with code 2, other errors
exit with code 1.`
)

var ErrLogHandlerFailed = errors.New("log handler failed")

// env is shared by all subcommands. It is filled before any of them runs.
type env struct {
	cfg config.Config
}

type rootArgs struct {
	configFile string
	logLevel   string
	logFormat  string
}

func NewRootCmd() *cobra.Command {
	var (
		args rootArgs
		e    env
	)
	cmd := &cobra.Command{
		Use:           "fsutil",
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&args.configFile, "config", "", "Load defaults from this HCL file")
	cmd.PersistentFlags().StringVar(&args.logLevel, "log-level", "", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&args.logFormat, "log-format", "", "Set the log format (text, json)")
	if err := cmd.MarkPersistentFlagFilename("config", "hcl"); err != nil {
		panic(err)
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		cfg, err := loadConfig(args.configFile)
		if err != nil {
			return err
		}
		if cc.Flags().Changed("log-level") {
			cfg.LogLevel = args.logLevel
		}
		if cc.Flags().Changed("log-format") {
			cfg.LogFormat = args.logFormat
		}
		h, err := logutil.CreateHandler(cc.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}
		slog.SetDefault(slog.New(h))
		slog.Debug("Configuration loaded", "file", args.configFile, "baseDirs", cfg.BaseDirs)
		e.cfg = cfg
		return nil
	}

	cmd.AddCommand(
		newNormalizeCmd(),
		newRealPathCmd(),
		newSizeCmd(&e),
		newExtCmd(),
		newResolveCmd(&e),
		newListCmd(),
		newMkdirCmd(&e),
		newCopyCmd(&e),
		newChecksumCmd(),
		newUnzipCmd(&e),
	)
	return cmd
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// ExitCode returns the process exit code for an error returned by the root
// command.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errutil.IsInvalidArgument(err):
		return 2
	default:
		return 1
	}
}
