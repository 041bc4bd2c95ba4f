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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lpdigital/go-utils/arrayutil"
	"github.com/lpdigital/go-utils/fsutil"
)

type listArgs struct {
	ext       string
	glob      string
	recursive bool
	page      int
	limit     int
}

func newListCmd() *cobra.Command {
	var args listArgs
	cmd := &cobra.Command{
		Use:   "ls DIR",
		Short: "List files by extension or glob pattern",
		Long: `List files by extension or glob pattern.

Without --ext and --glob, every file is listed. Paths are absolute and
sorted. With --limit, only one page of --limit files is printed; pages
are numbered from 0 and a summary is written to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, dirs []string) error {
			files, err := listFiles(cc, dirs[0], args)
			if err != nil {
				return err
			}
			if args.limit <= 0 {
				for _, f := range files {
					fmt.Fprintln(cc.OutOrStdout(), f)
				}
				return nil
			}
			entries := make([]arrayutil.Entry[int, string], len(files))
			for i, f := range files {
				entries[i] = arrayutil.Entry[int, string]{Key: i, Value: f}
			}
			p := arrayutil.Paginate(entries, args.page, args.limit)
			for _, f := range p.All() {
				fmt.Fprintln(cc.OutOrStdout(), f)
			}
			fmt.Fprintf(cc.ErrOrStderr(), "page %d of %d, %d files, next page %d\n",
				p.CurrentPageNumber(), p.PageCount(), p.Count(), p.NextPageNumber())
			return nil
		},
	}
	cmd.Flags().StringVar(&args.ext, "ext", "", "Only list files with this extension")
	cmd.Flags().StringVar(&args.glob, "glob", "", "Only list files whose relative path matches this pattern")
	cmd.Flags().BoolVarP(&args.recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().IntVar(&args.page, "page", 0, "Page to print")
	cmd.Flags().IntVar(&args.limit, "limit", 0, "Number of files per page, 0 prints all files")
	cmd.MarkFlagsMutuallyExclusive("ext", "glob")
	return cmd
}

func listFiles(cc *cobra.Command, dir string, args listArgs) ([]string, error) {
	switch {
	case cc.Flags().Changed("ext"):
		return fsutil.ListFilesByExtension(dir, args.ext, args.recursive)
	case args.glob != "":
		return fsutil.FilesByPattern(dir, args.glob)
	case args.recursive:
		return fsutil.FilesByPattern(dir, "**")
	default:
		return fsutil.FilesByPattern(dir, "*")
	}
}

func newMkdirCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir DIR...",
		Short: "Create directories with their parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, dir := range args {
				if err := fsutil.Mkdir(dir, e.cfg.MkdirOptions()...); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCopyCmd(e *env) *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "cp SRC DST",
		Short: "Copy a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			opts := e.cfg.CopyOptions()
			if cc.Flags().Changed("verify") {
				opts = append(opts, fsutil.WithVerify(verify))
			}
			return fsutil.Copy(args[0], args[1], opts...)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Compare checksums after the copy")
	return cmd
}

func newChecksumCmd() *cobra.Command {
	var expect string
	cmd := &cobra.Command{
		Use:   "checksum FILE...",
		Short: "Print the xxHash64 checksum of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			for _, file := range args {
				if expect != "" {
					if err := fsutil.VerifyChecksum(file, expect); err != nil {
						return err
					}
					continue
				}
				sum, err := fsutil.Checksum(file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cc.OutOrStdout(), "%s  %s\n", sum, file)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&expect, "expect", "", "Fail unless every file has this checksum")
	return cmd
}

func newUnzipCmd(e *env) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "unzip ARCHIVE DEST",
		Short: "Extract a zip archive into an existing directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			if !cc.Flags().Changed("overwrite") {
				overwrite = e.cfg.Overwrite
			}
			return fsutil.ExtractZipArchive(args[0], args[1], overwrite)
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace files that already exist in DEST")
	return cmd
}
