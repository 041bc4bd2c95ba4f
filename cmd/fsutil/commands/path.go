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

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/lpdigital/go-utils/errutil"
	"github.com/lpdigital/go-utils/fsutil"
	"github.com/lpdigital/go-utils/pathutil"
)

var (
	errNotResolved  = errors.New("path cannot be resolved")
	errBadSeparator = errors.New("separator must be a single ASCII character")
	errNegativeSize = errors.New("size must not be negative")
)

func newNormalizeCmd() *cobra.Command {
	var (
		sep  string
		keep bool
	)
	cmd := &cobra.Command{
		Use:   "normalize PATH...",
		Short: "Print the normalized form of paths or URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			opts := []pathutil.NormalizeOption{pathutil.WithTrailingSeparator(keep)}
			if sep != "" {
				r, size := utf8.DecodeRuneInString(sep)
				if size != len(sep) || r >= utf8.RuneSelf {
					return errutil.InvalidArgument("normalize", sep, errBadSeparator)
				}
				opts = append(opts, pathutil.WithSeparator(r))
			}
			for _, arg := range args {
				fmt.Fprintln(cc.OutOrStdout(), pathutil.NormalizePath(arg, opts...))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sep, "separator", "", "Separator of local paths (default is the platform separator)")
	cmd.Flags().BoolVar(&keep, "keep-trailing", false, "Keep a trailing separator")
	return cmd
}

func newRealPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "realpath PATH...",
		Short: "Print the canonical absolute form of existing paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			for _, arg := range args {
				p, ok := pathutil.RealPath(arg)
				if !ok {
					return fmt.Errorf("%q: %w", arg, errNotResolved)
				}
				fmt.Fprintln(cc.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newSizeCmd(e *env) *cobra.Command {
	var precision int
	cmd := &cobra.Command{
		Use:   "size BYTES...",
		Short: "Print byte counts in a human readable form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			if !cc.Flags().Changed("precision") {
				precision = e.cfg.Precision
			}
			for _, arg := range args {
				n, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return errutil.InvalidArgument("size", arg, err)
				}
				if n < 0 {
					return errutil.InvalidArgument("size", arg, errNegativeSize)
				}
				fmt.Fprintln(cc.OutOrStdout(), pathutil.ReadableFilesize(n, precision))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&precision, "precision", "p", pathutil.DefaultSizePrecision, "Number of fractional digits")
	return cmd
}

func newExtCmd() *cobra.Command {
	var (
		withDot bool
		remove  bool
	)
	cmd := &cobra.Command{
		Use:   "ext FILENAME...",
		Short: "Print the extension of file names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			for _, arg := range args {
				if remove {
					fmt.Fprintln(cc.OutOrStdout(), pathutil.RemoveExtension(arg))
					continue
				}
				fmt.Fprintln(cc.OutOrStdout(), pathutil.GetExtension(arg, withDot))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withDot, "dot", false, "Prefix the extension with a dot")
	cmd.Flags().BoolVar(&remove, "remove", false, "Print the file name without its extension instead")
	cmd.MarkFlagsMutuallyExclusive("dot", "remove")
	return cmd
}

func newResolveCmd(e *env) *cobra.Command {
	var baseDirs []string
	cmd := &cobra.Command{
		Use:   "resolve PATH...",
		Short: "Resolve paths against base directories and the working directory",
		Long: `Resolve paths against base directories and the working directory.

Relative paths are tried against every --base-dir, then against the
configured base directories, then against the working directory. Paths
that do not exist are printed in their normalized form.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			opts := append([]fsutil.ResolveOption{fsutil.WithBaseDirs(baseDirs...)}, e.cfg.ResolveOptions()...)
			for _, arg := range args {
				p := arg
				fsutil.ResolveFilepath(&p, opts...)
				fmt.Fprintln(cc.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&baseDirs, "base-dir", nil, "Directory to resolve relative paths against (repeatable)")
	if err := cmd.MarkFlagDirname("base-dir"); err != nil {
		panic(err)
	}
	return cmd
}
