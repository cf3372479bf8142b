// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import "errors"

// Sentinel errors for HPI operations. Use errors.Is in callers.
var (
	// ErrBadMagic means the version magic isn't "HAPI" or a chunk magic isn't "SQSH".
	ErrBadMagic = errors.New("hpi: bad magic number")
	// ErrUnsupportedVersion means the version field isn't the one supported archive
	// version, including the recognized-but-unsupported "BANK" saved-game variant.
	ErrUnsupportedVersion = errors.New("hpi: unsupported version")
	// ErrTruncatedName means a name string has no NUL terminator before the directory blob ends.
	ErrTruncatedName = errors.New("hpi: truncated name")
	// ErrOutOfBoundsOffset means a record's derived end exceeds its container.
	ErrOutOfBoundsOffset = errors.New("hpi: offset out of bounds")
	// ErrInvalidCompressionType means a file or chunk compression type isn't in {0,1,2}.
	ErrInvalidCompressionType = errors.New("hpi: invalid compression type")
	// ErrChunkChecksumMismatch means a chunk's computed byte-sum doesn't match its stored checksum.
	ErrChunkChecksumMismatch = errors.New("hpi: chunk checksum mismatch")
	// ErrSizeMismatch means an uncompressed chunk's sizes disagree, or a file's
	// chunk sizes don't sum to its declared size.
	ErrSizeMismatch = errors.New("hpi: size mismatch")
	// ErrOutputOverflow means LZ77 or DEFLATE decoding would exceed the output buffer.
	ErrOutputOverflow = errors.New("hpi: output buffer overflow")
	// ErrTruncatedInput means LZ77 ran out of input before its sentinel, or inflate
	// returned short of the expected decompressed size.
	ErrTruncatedInput = errors.New("hpi: truncated input")
	// ErrInflateError means DEFLATE decoding returned an error or a non-terminal status.
	ErrInflateError = errors.New("hpi: inflate error")
	// ErrNotFound means a lookup found no matching entry.
	ErrNotFound = errors.New("hpi: not found")
	// ErrNilReaderAt means the archive was opened with a nil io.ReaderAt.
	ErrNilReaderAt = errors.New("hpi: readerAt is nil")
	// ErrBufferTooSmall means the caller-provided extraction buffer is smaller than file.Size.
	ErrBufferTooSmall = errors.New("hpi: output buffer smaller than file size")
)
