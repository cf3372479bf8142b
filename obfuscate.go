// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import (
	"fmt"
	"io"
)

// deriveKey rotates the low byte of the header's key field left by 2 bits.
// A zero result means the archive is stored in clear; readDecrypt then
// degenerates to a plain read.
func deriveKey(headerKey uint32) byte {
	h := byte(headerKey)
	return (h << 2) | (h >> 6)
}

// obfuscatingReader layers position-keyed XOR decryption on top of a random-access
// byte stream. Two reads landing at the same absolute offset always decrypt
// identically, because the seed is derived from stream position, not call order.
type obfuscatingReader struct {
	ra  io.ReaderAt
	key byte
}

// readRaw reads n bytes at offset with no transformation applied.
func (r *obfuscatingReader) readRaw(offset int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(io.NewSectionReader(r.ra, offset, int64(n)), buf); err != nil {
		return nil, fmt.Errorf("read %d bytes at %d: %w", n, offset, err)
	}
	return buf, nil
}

// readDecrypt reads n bytes at offset and decrypts them in place. The seed byte
// is the read's own starting offset (the offset argument, not any stream
// cursor), so byte i of the result is decrypted with seed+i mod 256.
func (r *obfuscatingReader) readDecrypt(offset int64, n int) ([]byte, error) {
	buf, err := r.readRaw(offset, n)
	if err != nil {
		return nil, err
	}
	if r.key == 0 {
		return buf, nil
	}

	seed := byte(offset)
	for i := range buf {
		pos := seed + byte(i)
		buf[i] ^= pos ^ r.key
	}
	return buf, nil
}
