// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package hpi

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeLZ77_LiteralsOnly(t *testing.T) {
	want := []byte("abcd")
	src := []byte{
		byte(0x10), 'a', 'b', 'c', 'd', // bits 0-3 literal, bit4 = 1 -> sentinel
		0x00, 0x00,
	}
	dst := make([]byte, len(want))
	n, err := decodeLZ77(src, dst)
	if err != nil {
		t.Fatalf("decodeLZ77: %v", err)
	}
	if n != len(want) || !bytes.Equal(dst, want) {
		t.Errorf("got %q (n=%d), want %q", dst[:n], n, want)
	}
}

func TestDecodeLZ77_BackReference(t *testing.T) {
	// bit0 literal 'x' (window[1]='x'), bit1 match offset=1 count=2 copies 'x','x',
	// bit2 match with offset=0: the sentinel, all within one tag byte.
	v := uint16(1)<<4 | uint16(0) // offset=1, count = 0+2 = 2
	tag := byte(0)<<0 | byte(1)<<1 | byte(1)<<2
	src := []byte{
		tag, 'x',
		byte(v), byte(v >> 8),
		0x00, 0x00, // sentinel offset/count
	}
	dst := make([]byte, 3)
	n, err := decodeLZ77(src, dst)
	if err != nil {
		t.Fatalf("decodeLZ77: %v", err)
	}
	want := []byte{'x', 'x', 'x'}
	if n != 3 || !bytes.Equal(dst, want) {
		t.Errorf("got %q (n=%d), want %q", dst[:n], n, want)
	}
}

func TestDecodeLZ77_SentinelOnly(t *testing.T) {
	src := []byte{0x01, 0x00, 0x00}
	n, err := decodeLZ77(src, nil)
	if err != nil {
		t.Fatalf("decodeLZ77: %v", err)
	}
	if n != 0 {
		t.Errorf("got n=%d, want 0", n)
	}
}

func TestDecodeLZ77_OutputOverflow(t *testing.T) {
	src := []byte{0x10, 'a', 'b', 'c', 'd', 0x00, 0x00}
	dst := make([]byte, 2) // smaller than the 4 literals being written
	if _, err := decodeLZ77(src, dst); !errors.Is(err, ErrOutputOverflow) {
		t.Fatalf("got %v, want ErrOutputOverflow", err)
	}
}

func TestDecodeLZ77_TruncatedTagByte(t *testing.T) {
	if _, err := decodeLZ77(nil, make([]byte, 1)); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("got %v, want ErrTruncatedInput", err)
	}
}

func TestDecodeLZ77_TruncatedLiteral(t *testing.T) {
	src := []byte{0x00} // tag claims a literal bit0 but supplies no byte for it
	if _, err := decodeLZ77(src, make([]byte, 1)); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("got %v, want ErrTruncatedInput", err)
	}
}

func TestDecodeLZ77_TruncatedMatch(t *testing.T) {
	src := []byte{0x02, 'a', 0x01} // match bit with only one of two offset/count bytes
	if _, err := decodeLZ77(src, make([]byte, 4)); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("got %v, want ErrTruncatedInput", err)
	}
}
