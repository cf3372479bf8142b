// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import (
	"fmt"
	"io"
	"os"
)

// Archive owns a stream handle, the derived obfuscation key, and the root
// Directory. It is immutable after Open; the stream must remain valid for
// the Archive's lifetime because extraction reads lazily.
type Archive struct {
	r        *obfuscatingReader
	root     *Directory
	inflater inflater
	opts     OpenOptions
	file     *os.File
}

// Open opens an HPI archive by filesystem path and parses its directory tree.
func Open(path string) (*Archive, error) {
	return OpenWithOptions(path, OpenOptions{})
}

// OpenWithOptions opens an HPI archive by filesystem path using explicit options.
func OpenWithOptions(path string, opts OpenOptions) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hpi: %w", err)
	}

	a, err := OpenReaderAtWithOptions(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	a.file = f
	return a, nil
}

// OpenReaderAt parses an HPI archive from an existing io.ReaderAt.
func OpenReaderAt(ra io.ReaderAt) (*Archive, error) {
	return OpenReaderAtWithOptions(ra, OpenOptions{})
}

// OpenReaderAtWithOptions parses an HPI archive from an existing io.ReaderAt
// using explicit options. The caller retains ownership of ra and must keep it
// valid for the Archive's lifetime.
func OpenReaderAtWithOptions(ra io.ReaderAt, opts OpenOptions) (*Archive, error) {
	if ra == nil {
		return nil, ErrNilReaderAt
	}
	opts.applyDefaults()

	r := &obfuscatingReader{ra: ra}
	root, err := parseDirectory(r, opts)
	if err != nil {
		return nil, err
	}

	return &Archive{r: r, root: root, inflater: zlibInflater{}, opts: opts}, nil
}

// Close closes the underlying file if the Archive owns one (i.e. it was
// opened via Open/OpenWithOptions rather than OpenReaderAt).
func (a *Archive) Close() error {
	if a == nil || a.file == nil {
		return nil
	}
	return a.file.Close()
}

// Root returns the archive's root Directory.
func (a *Archive) Root() *Directory {
	if a == nil {
		return nil
	}
	return a.root
}

// Extract fills out with file's decompressed bytes, transparently decrypting
// and decompressing as required. len(out) must be at least file.Size.
// Extraction is atomic from the caller's perspective: either out is filled
// completely or an error is returned and out's contents are indeterminate.
func (a *Archive) Extract(file *File, out []byte) error {
	if file == nil {
		return ErrNotFound
	}
	if uint64(len(out)) < file.Size {
		return fmt.Errorf("%w: have %d want %d", ErrBufferTooSmall, len(out), file.Size)
	}
	dst := out[:file.Size]

	if file.Compression == CompressionNone {
		buf, err := a.r.readDecrypt(int64(file.Offset), int(file.Size))
		if err != nil {
			return fmt.Errorf("read uncompressed file: %w", err)
		}
		copy(dst, buf)
		return nil
	}

	return a.extractCompressed(file, dst, a.opts)
}

// ExtractBytes is a convenience wrapper over Extract that allocates the output buffer.
func (a *Archive) ExtractBytes(file *File) ([]byte, error) {
	buf := make([]byte, file.Size)
	if err := a.Extract(file, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
