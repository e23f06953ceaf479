/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package segmenttrie indexes dot-separated reason prefixes for
// longest-prefix matching on segment boundaries.
package segmenttrie

import (
	"errors"
	"strings"
)

// Trie is a segment-aware prefix index for dot-separated keys (reasons).
// Each node represents one segment; the wildcard "*" matches exactly one
// segment. A deeper match always wins over a shallower one.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix as inserted, kept for Explain.
	pattern string
}

// ErrInvalidPrefix is returned when inserting a prefix that is empty, has
// empty or malformed segments, or consists only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with a dot-separated prefix such as
// "structural.not_allowed" or "format.*". Re-inserting a prefix replaces
// its value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	allWild := true
	for _, s := range segs {
		if !validSegment(s, true) {
			return ErrInvalidPrefix
		}
		if s != "*" {
			allWild = false
		}
	}
	if allWild {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the deepest prefix matching key.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also returns the matched prefix as it was
// inserted. Exact segments are explored before wildcards, so at equal depth
// the exact rule wins.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	var segs []string
	if key != "" {
		segs = strings.Split(key, ".")
		for _, s := range segs {
			if !validSegment(s, false) {
				return zero, false, ""
			}
		}
	}

	var best *Trie[T]
	bestDepth := -1
	var walk func(n *Trie[T], depth int)
	walk = func(n *Trie[T], depth int) {
		if n.hasVal && depth > bestDepth {
			best, bestDepth = n, depth
		}
		if depth == len(segs) {
			return
		}
		if next, ok := n.children[segs[depth]]; ok {
			walk(next, depth+1)
		}
		if next, ok := n.children["*"]; ok {
			walk(next, depth+1)
		}
	}
	walk(t, 0)

	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// validSegment reports whether seg matches [a-z][a-z0-9_]*, or is "*" when
// wildcards are allowed.
func validSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == "*" {
		return true
	}
	if seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
