// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import "fmt"

const windowSize = 4096

// decodeLZ77 decompresses one chunk's LZ77 payload into dst, returning the
// number of bytes written. Decoding stops at the first back-reference whose
// offset field is zero; that sentinel is the only normal termination.
//
// The window is a 4 KiB ring, write cursor starting at 1 rather than 0 —
// position 0 is reserved so the sentinel offset can never collide with a
// real window position.
func decodeLZ77(src []byte, dst []byte) (int, error) {
	var window [windowSize]byte
	windowPos := 1
	inPos := 0
	outPos := 0

	for {
		if inPos >= len(src) {
			return 0, fmt.Errorf("%w: expected tag byte", ErrTruncatedInput)
		}
		tag := src[inPos]
		inPos++

		for bit := 0; bit < 8; bit++ {
			if tag&1 == 0 {
				if inPos >= len(src) {
					return 0, fmt.Errorf("%w: expected literal byte", ErrTruncatedInput)
				}
				b := src[inPos]
				inPos++

				if outPos >= len(dst) {
					return 0, fmt.Errorf("%w: literal at output position %d", ErrOutputOverflow, outPos)
				}
				dst[outPos] = b
				outPos++

				window[windowPos] = b
				windowPos = (windowPos + 1) % windowSize
			} else {
				if inPos+2 > len(src) {
					return 0, fmt.Errorf("%w: expected window offset/length", ErrTruncatedInput)
				}
				v := uint16(src[inPos]) | uint16(src[inPos+1])<<8
				inPos += 2

				offset := int(v >> 4)
				count := int(v&0x0F) + 2

				if offset == 0 {
					return outPos, nil
				}

				if outPos+count > len(dst) {
					return 0, fmt.Errorf("%w: back-reference of %d bytes at output position %d", ErrOutputOverflow, count, outPos)
				}
				for i := 0; i < count; i++ {
					b := window[offset]
					dst[outPos] = b
					outPos++

					window[windowPos] = b
					offset = (offset + 1) % windowSize
					windowPos = (windowPos + 1) % windowSize
				}
			}

			tag >>= 1
		}
	}
}
