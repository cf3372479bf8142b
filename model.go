// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

// On-disk magic numbers and fixed record sizes, little-endian, packed.
const (
	magicHAPI  = 0x49504148 // "HAPI"
	magicBANK  = 0x4B4E4142 // "BANK" saved-game variant, recognized but unsupported
	magicSQSH  = 0x48535153 // "SQSH" chunk header
	versionHPI = 0x00010000

	versionRecordSize = 8
	headerRecordSize  = 12
	pathRecordSize    = 8
	fileRecordSize    = 9
	entryRecordSize   = 9
	chunkHeaderSize   = 20

	maxChunkSize = 65536
)

// CompressionType is the per-file or per-chunk compression method.
type CompressionType uint8

// Compression methods recognized by the format.
const (
	CompressionNone CompressionType = 0
	CompressionLZ77 CompressionType = 1
	CompressionZlib CompressionType = 2
)

// String returns a short label for use in listings, e.g. "lz77-".
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "null-"
	case CompressionLZ77:
		return "lz77-"
	case CompressionZlib:
		return "zlib-"
	default:
		return "????"
	}
}

func (c CompressionType) valid() bool {
	switch c {
	case CompressionNone, CompressionLZ77, CompressionZlib:
		return true
	default:
		return false
	}
}

// versionRecord is the archive's unencrypted 8-byte leader.
type versionRecord struct {
	Magic   uint32
	Version uint32
}

// headerRecord follows versionRecord, also unencrypted.
type headerRecord struct {
	DirectorySize  uint32
	HeaderKey      uint32
	DirectoryStart uint32
}

// pathRecord describes a directory: an entry count and the offset of its entry list.
type pathRecord struct {
	EntryCount      uint32
	EntryListOffset uint32
}

// fileRecord describes a file's data location, size, and compression method.
type fileRecord struct {
	DataOffset      uint32
	FileSize        uint32
	CompressionType uint8
}

// entryRecord names one child of a directory and points at its body.
type entryRecord struct {
	NameOffset uint32
	DataOffset uint32
	IsPath     uint8
}

// chunkHeader frames one compressed chunk inside a file's data region.
type chunkHeader struct {
	Magic            uint32
	Version          uint8
	CompressionType  uint8
	Encoded          uint8
	CompressedSize   uint32
	DecompressedSize uint32
	Checksum         uint32
}

// File is a pure descriptor for a file entry's on-disk payload; it holds no bytes.
type File struct {
	Offset      uint64
	Size        uint64
	Compression CompressionType
}

// Directory owns an ordered sequence of Entry, mirroring on-disk order.
type Directory struct {
	entries []Entry
}

// Entries returns the directory's entries in parse (on-disk) order.
func (d *Directory) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Entry is a named child of a Directory, exclusively owning a File or a Directory body.
type Entry struct {
	name string
	file *File
	dir  *Directory
}

// Name returns the entry's name as stored in the archive.
func (e *Entry) Name() string { return e.name }

// IsDir reports whether the entry's body is a Directory.
func (e *Entry) IsDir() bool { return e.dir != nil }

// File returns the entry's File body and true, or (nil, false) if the entry is a directory.
func (e *Entry) File() (*File, bool) {
	if e.file == nil {
		return nil, false
	}
	return e.file, true
}

// Dir returns the entry's Directory body and true, or (nil, false) if the entry is a file.
func (e *Entry) Dir() (*Directory, bool) {
	if e.dir == nil {
		return nil, false
	}
	return e.dir, true
}

// OpenOptions configures Open/OpenReaderAt parse behavior.
type OpenOptions struct {
	// MaxDepth bounds directory recursion depth during parse; zero uses the default.
	// The format does not define back-references, but a hostile archive could
	// still construct one, so the walk is depth-guarded rather than unbounded.
	MaxDepth int
	// ChunkScratchSize sets the initial capacity of the scratch buffer used to
	// hold one compressed chunk payload during extraction; a larger payload
	// gets a larger buffer rather than being rejected. Zero uses the default.
	ChunkScratchSize int
}

// Default tuning values for OpenOptions.
const (
	DefaultMaxDepth         = 64
	DefaultChunkScratchSize = maxChunkSize
)

// applyDefaults fills zero-valued open options with defaults.
func (opts *OpenOptions) applyDefaults() {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.ChunkScratchSize <= 0 {
		opts.ChunkScratchSize = DefaultChunkScratchSize
	}
}
