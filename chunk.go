// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import (
	"encoding/binary"
	"fmt"
)

// decodeEncoded applies the reversible per-byte scramble used when a chunk
// header's "encoded" flag is set. It is distinct from the obfuscating reader
// and uses no key, only the byte's intra-chunk index.
func decodeEncoded(buf []byte) {
	for i := range buf {
		idx := byte(i)
		buf[i] = (buf[i] - idx) ^ idx
	}
}

// sumBytes computes the 32-bit unsigned sum of buf's bytes, the checksum
// algorithm used to guard chunk payloads.
func sumBytes(buf []byte) uint32 {
	var sum uint32
	for _, b := range buf {
		sum += uint32(b)
	}
	return sum
}

// parseChunkHeader decodes a 20-byte chunkHeader from a decrypted buffer.
func parseChunkHeader(buf []byte) chunkHeader {
	return chunkHeader{
		Magic:            binary.LittleEndian.Uint32(buf[0:4]),
		Version:          buf[4],
		CompressionType:  buf[5],
		Encoded:          buf[6],
		CompressedSize:   binary.LittleEndian.Uint32(buf[8:12]),
		DecompressedSize: binary.LittleEndian.Uint32(buf[12:16]),
		Checksum:         binary.LittleEndian.Uint32(buf[16:20]),
	}
}

// extractCompressed fills dst (sized file.Size) by walking the chunk pipeline:
// read the chunk-length array, then for each chunk frame/verify/dispatch its
// compressed payload.
func (a *Archive) extractCompressed(file *File, dst []byte, opts OpenOptions) error {
	nChunks := int((file.Size + maxChunkSize - 1) / maxChunkSize)
	if file.Size == 0 {
		nChunks = 0
	}

	offset := int64(file.Offset)
	lenArrayBuf, err := a.r.readDecrypt(offset, nChunks*4)
	if err != nil {
		return fmt.Errorf("read chunk length array: %w", err)
	}
	offset += int64(len(lenArrayBuf))

	// The length array is consumed only as an ordered sequencing hint; actual
	// chunk framing comes from each chunk's own header.
	_ = lenArrayBuf

	scratch := make([]byte, 0, opts.ChunkScratchSize)
	var bufferOffset uint64

	for i := 0; i < nChunks; i++ {
		headerBuf, err := a.r.readDecrypt(offset, chunkHeaderSize)
		if err != nil {
			return fmt.Errorf("read chunk %d header: %w", i, err)
		}
		offset += chunkHeaderSize

		ch := parseChunkHeader(headerBuf)
		if ch.Magic != magicSQSH {
			return fmt.Errorf("%w: chunk %d magic %#x", ErrBadMagic, i, ch.Magic)
		}
		if bufferOffset+uint64(ch.DecompressedSize) > file.Size {
			return fmt.Errorf("%w: chunk %d would extend past file size %d", ErrSizeMismatch, i, file.Size)
		}
		if !CompressionType(ch.CompressionType).valid() {
			return fmt.Errorf("%w: chunk %d compression type %d", ErrInvalidCompressionType, i, ch.CompressionType)
		}

		if cap(scratch) < int(ch.CompressedSize) {
			scratch = make([]byte, ch.CompressedSize)
		} else {
			scratch = scratch[:ch.CompressedSize]
		}
		payload, err := a.r.readDecrypt(offset, int(ch.CompressedSize))
		if err != nil {
			return fmt.Errorf("read chunk %d payload: %w", i, err)
		}
		copy(scratch, payload)
		offset += int64(ch.CompressedSize)

		checksum := sumBytes(scratch)
		if checksum != ch.Checksum {
			return fmt.Errorf("%w: chunk %d computed %#x stored %#x", ErrChunkChecksumMismatch, i, checksum, ch.Checksum)
		}

		if ch.Encoded != 0 {
			decodeEncoded(scratch)
		}

		out := dst[bufferOffset : bufferOffset+uint64(ch.DecompressedSize)]

		switch CompressionType(ch.CompressionType) {
		case CompressionNone:
			if ch.CompressedSize != ch.DecompressedSize {
				return fmt.Errorf("%w: chunk %d uncompressed size %d vs decompressed %d", ErrSizeMismatch, i, ch.CompressedSize, ch.DecompressedSize)
			}
			copy(out, scratch)
		case CompressionLZ77:
			n, err := decodeLZ77(scratch, out)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			if n != len(out) {
				return fmt.Errorf("%w: chunk %d decoded %d of %d bytes", ErrSizeMismatch, i, n, len(out))
			}
		case CompressionZlib:
			if err := a.inflater.inflate(scratch, out); err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
		}

		bufferOffset += uint64(ch.DecompressedSize)
	}

	if bufferOffset != file.Size {
		return fmt.Errorf("%w: total decompressed %d vs file size %d", ErrSizeMismatch, bufferOffset, file.Size)
	}

	return nil
}
