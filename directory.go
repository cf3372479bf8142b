// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import (
	"encoding/binary"
	"fmt"
)

// parseDirectory reads the clear headers, derives the obfuscation key,
// decrypt-reads the directory blob, and recursively materializes the tree
// rooted at the blob's root pathRecord.
func parseDirectory(r *obfuscatingReader, opts OpenOptions) (*Directory, error) {
	verBuf, err := r.readRaw(0, versionRecordSize)
	if err != nil {
		return nil, fmt.Errorf("read version record: %w", err)
	}
	ver := versionRecord{
		Magic:   binary.LittleEndian.Uint32(verBuf[0:4]),
		Version: binary.LittleEndian.Uint32(verBuf[4:8]),
	}
	if ver.Magic != magicHAPI {
		return nil, fmt.Errorf("%w: %#x", ErrBadMagic, ver.Magic)
	}
	if ver.Version == magicBANK {
		return nil, fmt.Errorf("%w: saved-game (BANK) variant", ErrUnsupportedVersion)
	}
	if ver.Version != versionHPI {
		return nil, fmt.Errorf("%w: %#x", ErrUnsupportedVersion, ver.Version)
	}

	hdrBuf, err := r.readRaw(versionRecordSize, headerRecordSize)
	if err != nil {
		return nil, fmt.Errorf("read header record: %w", err)
	}
	hdr := headerRecord{
		DirectorySize:  binary.LittleEndian.Uint32(hdrBuf[0:4]),
		HeaderKey:      binary.LittleEndian.Uint32(hdrBuf[4:8]),
		DirectoryStart: binary.LittleEndian.Uint32(hdrBuf[8:12]),
	}

	r.key = deriveKey(hdr.HeaderKey)

	if hdr.DirectoryStart > hdr.DirectorySize {
		return nil, fmt.Errorf("%w: directory start %d exceeds directory size %d", ErrOutOfBoundsOffset, hdr.DirectoryStart, hdr.DirectorySize)
	}

	blob := make([]byte, hdr.DirectorySize)
	tail, err := r.readDecrypt(int64(hdr.DirectoryStart), int(hdr.DirectorySize-hdr.DirectoryStart))
	if err != nil {
		return nil, fmt.Errorf("read directory blob: %w", err)
	}
	copy(blob[hdr.DirectoryStart:], tail)

	d := &dirParser{blob: blob, maxDepth: opts.MaxDepth}
	return d.parsePath(hdr.DirectoryStart, 0)
}

// dirParser walks the decrypted directory blob, bounds-checking every offset
// against its length and guarding recursion depth.
type dirParser struct {
	blob     []byte
	maxDepth int
}

func (p *dirParser) checkBounds(offset uint32, size uint64) error {
	end := uint64(offset) + size
	if end > uint64(len(p.blob)) {
		return fmt.Errorf("%w: [%d, %d) exceeds directory size %d", ErrOutOfBoundsOffset, offset, end, len(p.blob))
	}
	return nil
}

func (p *dirParser) parsePath(offset uint32, depth int) (*Directory, error) {
	if depth > p.maxDepth {
		return nil, fmt.Errorf("%w: directory recursion exceeded depth %d", ErrOutOfBoundsOffset, p.maxDepth)
	}
	if err := p.checkBounds(offset, pathRecordSize); err != nil {
		return nil, err
	}

	buf := p.blob[offset : offset+pathRecordSize]
	pr := pathRecord{
		EntryCount:      binary.LittleEndian.Uint32(buf[0:4]),
		EntryListOffset: binary.LittleEndian.Uint32(buf[4:8]),
	}

	if err := p.checkBounds(pr.EntryListOffset, uint64(pr.EntryCount)*entryRecordSize); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, pr.EntryCount)
	for i := uint32(0); i < pr.EntryCount; i++ {
		entryOffset := pr.EntryListOffset + i*entryRecordSize
		entry, err := p.parseEntry(entryOffset, depth)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return &Directory{entries: entries}, nil
}

func (p *dirParser) parseEntry(offset uint32, depth int) (Entry, error) {
	if err := p.checkBounds(offset, entryRecordSize); err != nil {
		return Entry{}, err
	}
	buf := p.blob[offset : offset+entryRecordSize]
	er := entryRecord{
		NameOffset: binary.LittleEndian.Uint32(buf[0:4]),
		DataOffset: binary.LittleEndian.Uint32(buf[4:8]),
		IsPath:     buf[8],
	}

	name, err := p.readName(er.NameOffset)
	if err != nil {
		return Entry{}, err
	}

	if er.IsPath != 0 {
		dir, err := p.parsePath(er.DataOffset, depth+1)
		if err != nil {
			return Entry{}, err
		}
		return Entry{name: name, dir: dir}, nil
	}

	if err := p.checkBounds(er.DataOffset, fileRecordSize); err != nil {
		return Entry{}, err
	}
	fbuf := p.blob[er.DataOffset : er.DataOffset+fileRecordSize]
	fr := fileRecord{
		DataOffset:      binary.LittleEndian.Uint32(fbuf[0:4]),
		FileSize:        binary.LittleEndian.Uint32(fbuf[4:8]),
		CompressionType: fbuf[8],
	}
	if !CompressionType(fr.CompressionType).valid() {
		return Entry{}, fmt.Errorf("%w: file %q compression type %d", ErrInvalidCompressionType, name, fr.CompressionType)
	}

	file := &File{
		Offset:      uint64(fr.DataOffset),
		Size:        uint64(fr.FileSize),
		Compression: CompressionType(fr.CompressionType),
	}
	return Entry{name: name, file: file}, nil
}

// readName resolves a name_offset to a NUL-terminated string via a bounded scan.
func (p *dirParser) readName(offset uint32) (string, error) {
	if offset > uint32(len(p.blob)) {
		return "", fmt.Errorf("%w: name offset %d exceeds directory size %d", ErrOutOfBoundsOffset, offset, len(p.blob))
	}
	for i := offset; i < uint32(len(p.blob)); i++ {
		if p.blob[i] == 0 {
			return string(p.blob[offset:i]), nil
		}
	}
	return "", fmt.Errorf("%w: name at offset %d", ErrTruncatedName, offset)
}
