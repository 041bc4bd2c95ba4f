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

// Package logutil builds log/slog handlers from textual settings, as found
// in flags, environment variables or configuration files.
package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	TextFormat = "text"
	JSONFormat = "json"
)

// CreateHandler returns a handler writing to w at the given level, in the
// text or JSON format. An empty format selects the text format.
func CreateHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case TextFormat, "":
		return slog.NewTextHandler(w, opts), nil
	case JSONFormat:
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("logutil: unknown log format %q", format)
	}
}

// ParseLevel maps a level name to a slog level. The names are case
// insensitive; "warning" is an alias of "warn" and "trace" of "debug". An
// empty name is the info level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logutil: unknown log level %q", level)
	}
}
