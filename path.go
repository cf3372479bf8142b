// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import "strings"

// asciiUpper upper-cases only ASCII letters; non-ASCII bytes pass through
// unchanged and are compared byte-wise, per the format's case-folding rule.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func sameName(a, b string) bool {
	return asciiUpper(a) == asciiUpper(b)
}

func findChild(d *Directory, name string) (*Entry, bool) {
	for i := range d.entries {
		if sameName(d.entries[i].name, name) {
			return &d.entries[i], true
		}
	}
	return nil, false
}

// descend walks all but the last of path's "/"-separated components from
// root, requiring every intermediate to resolve to a directory.
func descend(root *Directory, components []string) (*Directory, error) {
	dir := root
	for _, comp := range components[:len(components)-1] {
		entry, ok := findChild(dir, comp)
		if !ok {
			return nil, ErrNotFound
		}
		sub, ok := entry.Dir()
		if !ok {
			return nil, ErrNotFound
		}
		dir = sub
	}
	return dir, nil
}

// FindFile resolves a "/"-separated, case-insensitive (ASCII-only) path to a
// File. Leading/trailing slashes are not stripped; the split sequence is
// used as-is, so callers must not pass an empty string.
func (a *Archive) FindFile(p string) (*File, error) {
	components := strings.Split(p, "/")
	dir, err := descend(a.root, components)
	if err != nil {
		return nil, err
	}
	entry, ok := findChild(dir, components[len(components)-1])
	if !ok {
		return nil, ErrNotFound
	}
	file, ok := entry.File()
	if !ok {
		return nil, ErrNotFound
	}
	return file, nil
}

// FindPath resolves a "/"-separated, case-insensitive (ASCII-only) path to a
// Directory. It descends only the first len(components)-1 components: the
// final component is not itself looked up as a directory. This means
// FindPath("a/b/c") returns the directory reached by descending "a" and "b",
// not a directory named "c" — a known source behavior preserved for
// bit-compatibility, not a bug to "fix" without an explicit contract change.
func (a *Archive) FindPath(p string) (*Directory, error) {
	components := strings.Split(p, "/")
	return descend(a.root, components)
}
