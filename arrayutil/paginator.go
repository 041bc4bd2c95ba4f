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

// Package arrayutil provides a paginated view over an ordered, keyed
// collection and small generic slice helpers.
package arrayutil

import (
	"cmp"
	"iter"
	"slices"
)

// Entry is a single key-value pair of an ordered collection.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// FromMap returns the entries of the map sorted by key.
func FromMap[K cmp.Ordered, V any](m map[K]V) []Entry[K, V] {
	out := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// Paginator is a view over one page of a collection. The collection is owned
// by the caller and is never modified. A Paginator must not be used while
// the collection is modified by another goroutine.
type Paginator[K comparable, V any] struct {
	entries []Entry[K, V]
	page    int
	limit   int
}

// Paginate returns a view of the given page, with at most limit entries per
// page. The window of page p starts at entry p*limit, so page 0 holds the
// first limit entries and page 1 the next ones. Any page and limit values
// are accepted; the view of a negative or out of range page is empty.
func Paginate[K comparable, V any](entries []Entry[K, V], page, limit int) Paginator[K, V] {
	return Paginator[K, V]{entries: entries, page: page, limit: limit}
}

// Count returns the number of entries in the whole collection.
func (p Paginator[K, V]) Count() int {
	return len(p.entries)
}

// PageCount returns the number of pages needed to hold the collection.
func (p Paginator[K, V]) PageCount() int {
	if p.limit <= 0 || len(p.entries) == 0 {
		return 0
	}
	return (len(p.entries) + p.limit - 1) / p.limit
}

// All returns an iterator over the entries of the current page, in their
// original order.
func (p Paginator[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range p.Entries() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Entries returns the entries of the current page. The returned slice shares
// memory with the collection.
func (p Paginator[K, V]) Entries() []Entry[K, V] {
	lo, hi := p.window()
	return p.entries[lo:hi:hi]
}

// window returns the bounds of the current page within the collection.
func (p Paginator[K, V]) window() (lo, hi int) {
	n := len(p.entries)
	if p.limit <= 0 || p.page < 0 || p.page > n/p.limit {
		return 0, 0
	}
	lo = p.page * p.limit
	if lo >= n {
		return 0, 0
	}
	return lo, min(lo+p.limit, n)
}

// CurrentPageNumber returns the requested page number, as given.
func (p Paginator[K, V]) CurrentPageNumber() int {
	return p.page
}

// NextPageNumber returns the number of the next page. It returns -1 for an
// empty collection and wraps around to 1 once the last page is reached.
func (p Paginator[K, V]) NextPageNumber() int {
	if len(p.entries) == 0 {
		return -1
	}
	if p.page < p.PageCount() {
		return p.page + 1
	}
	return 1
}

// PreviousPageNumber returns the number of the previous page, or 0 if there
// is none. The result is not bounded by the number of pages.
func (p Paginator[K, V]) PreviousPageNumber() int {
	if len(p.entries) == 0 || p.page <= 1 {
		return 0
	}
	return p.page - 1
}

// IsNextPage reports whether a page follows the current one.
func (p Paginator[K, V]) IsNextPage() bool {
	return len(p.entries) > 0 && p.page < p.PageCount()
}

// IsPreviousPage reports whether a page precedes the current one.
func (p Paginator[K, V]) IsPreviousPage() bool {
	return p.page > 1
}
