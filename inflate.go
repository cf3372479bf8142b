// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// inflater is the narrow interface the chunk pipeline uses for DEFLATE, kept
// separate from compress/zlib so tests can substitute a mock without linking it.
type inflater interface {
	inflate(src []byte, dst []byte) error
}

// zlibInflater calls through to compress/zlib, the standard library's
// implementation of the zlib contract the spec assumes is externally provided.
type zlibInflater struct{}

// inflate performs a one-shot inflate of src into dst. It requires src to be
// fully consumed and dst to be filled exactly; any other outcome is a format error.
func (zlibInflater) inflate(src []byte, dst []byte) error {
	br := bytes.NewReader(src)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInflateError, err)
	}
	defer zr.Close()

	n, err := io.ReadFull(zr, dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrTruncatedInput, err)
	}
	if n != len(dst) {
		return fmt.Errorf("%w: inflated %d of %d bytes", ErrTruncatedInput, n, len(dst))
	}

	// Confirm no trailing garbage remains past the expected decompressed size,
	// that the stream ends with a complete, valid zlib footer, and that no
	// bytes of src follow it.
	var extra [1]byte
	extraN, err := zr.Read(extra[:])
	if extraN > 0 {
		return fmt.Errorf("%w: trailing data after expected output", ErrInflateError)
	}
	if !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: stream did not end cleanly: %v", ErrInflateError, err)
	}
	if br.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes after zlib stream", ErrInflateError, br.Len())
	}

	return nil
}
