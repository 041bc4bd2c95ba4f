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
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// urlPath is a URL split into three raw parts. Only the path part is ever
// rewritten, the base and the suffix are copied byte for byte.
type urlPath struct {
	base   string // scheme://[userinfo@]host[:port]
	path   string // path component, may contain backslashes
	suffix string // ?query#fragment
	uri    *url.URL
}

// parseURL splits the raw string into the base, path and suffix parts and
// validates the base with net/url. The path is kept raw because net/url
// rejects backslashes following the host.
func parseURL(s string) (*urlPath, error) {
	i := strings.Index(s, "://") + len("://")
	rest := s[i:]
	end := strings.IndexAny(rest, `/\?#`)
	if end < 0 {
		end = len(rest)
	}
	base := s[:i+end]
	u, err := url.Parse(base)
	if err != nil {
		return nil, errParseURLFn(err)
	}
	if u.Scheme == "" {
		return nil, errURLMissingScheme
	}
	if u.Host == "" && u.Scheme != "file" {
		return nil, errURLMissingHost
	}
	p := &urlPath{base: base, uri: u}
	rest = rest[end:]
	if q := strings.IndexAny(rest, "?#"); q >= 0 {
		p.path, p.suffix = rest[:q], rest[q:]
	} else {
		p.path = rest
	}
	return p, nil
}

func (p *urlPath) normalize(o normalizeOptions) string {
	s := collapseSeparators(p.path, '/')
	if !o.keepTrailing {
		s = trimTrailing(s, '/')
	}
	return p.base + s + p.suffix
}

// realPath resolves a "file" URL on the local filesystem. For other schemes
// the host is validated and dot segments are removed from the path.
func (p *urlPath) realPath() (string, bool) {
	if p.uri.Scheme == "file" {
		if h := p.uri.Host; h != "" && h != "localhost" {
			return "", false
		}
		local, err := url.PathUnescape(p.path)
		if err != nil {
			return "", false
		}
		return localPath(local).realPath()
	}
	if !validHost(p.uri.Hostname()) {
		return "", false
	}
	s := collapseSeparators(p.path, '/')
	if s != "" {
		s = path.Clean(s)
	}
	return p.base + s + p.suffix, true
}

// validHost reports whether every dot separated label of the host name is
// non-empty. IPv6 literals are accepted as they are.
func validHost(host string) bool {
	if host == "" {
		return false
	}
	if strings.Contains(host, ":") {
		return true
	}
	for _, label := range strings.Split(strings.TrimSuffix(host, "."), ".") {
		if label == "" {
			return false
		}
	}
	return true
}

var (
	errURLMissingScheme = errors.New("pathutil.parseURL: missing scheme")
	errURLMissingHost   = errors.New("pathutil.parseURL: missing host")
)

func errParseURLFn(err error) error {
	return fmt.Errorf("pathutil.parseURL: %w", err)
}
