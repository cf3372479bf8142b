// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

/*
Package hpi reads HPI container archives: a flat-file format historically
used to bundle game assets as a tree of files and directories with per-chunk
compression (none, a bespoke LZ77 variant, or DEFLATE). The package is
read-only — creating or writing HPI archives is out of scope — and a single
Archive handle is not safe for concurrent use; callers needing that wrap it.

# Opening

Open an archive and walk its tree:

	a, err := hpi.Open("totala1.hpi")
	if err != nil {
	    return err
	}
	defer a.Close()

	for _, e := range a.Root().Entries() {
	    if f, ok := e.File(); ok {
	        fmt.Println(e.Name(), f.Size, f.Compression)
	    }
	}

# Looking up entries

Lookups are case-insensitive (ASCII-only):

	f, err := a.FindFile("anims/ARMCOM1.3DO")
	if err != nil {
	    return err
	}

FindPath mirrors a known source behavior: it descends only the path's first
n-1 components, so FindPath("a/b/c") returns the directory reached after "a"
and "b", not a directory named "c".

# Extracting

	buf, err := a.ExtractBytes(f)
	if err != nil {
	    return err
	}

Or fill a caller-owned buffer directly:

	buf := make([]byte, f.Size)
	if err := a.Extract(f, buf); err != nil {
	    return err
	}

# Opening from an existing stream

	a, err := hpi.OpenReaderAt(someReaderAt)

The caller keeps ownership of the ReaderAt and must keep it valid for the
Archive's lifetime, since extraction reads lazily.
*/
package hpi
