package ctrk

import (
	"errors"
	"testing"
)

func TestReaderLittleEndian(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03, 0x04})
	v, err := r.u16le()
	if err != nil {
		t.Fatalf("u16le: %v", err)
	}
	if v != 0x0201 {
		t.Errorf("u16le = %#x, want 0x0201", v)
	}
	v32, err := r.u16le()
	if err != nil {
		t.Fatalf("u16le #2: %v", err)
	}
	if v32 != 0x0403 {
		t.Errorf("u16le #2 = %#x, want 0x0403", v32)
	}
}

func TestReaderBigEndian(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03, 0x04})
	v, err := r.u32be()
	if err != nil {
		t.Fatalf("u32be: %v", err)
	}
	if v != 0x01020304 {
		t.Errorf("u32be = %#x, want 0x01020304", v)
	}
}

func TestReaderUnexpectedEOF(t *testing.T) {
	r := newReader([]byte{0x01})
	if _, err := r.u16le(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}
	// A failed read must not advance the cursor.
	if r.tell() != 0 {
		t.Errorf("cursor advanced on failed read: tell() = %d", r.tell())
	}
}

func TestReaderBytesBorrow(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}
	r := newReader(src)
	b, err := r.bytes(3)
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if &b[0] != &src[0] {
		t.Errorf("bytes() copied instead of borrowing")
	}
	if r.remaining() != 2 {
		t.Errorf("remaining() = %d, want 2", r.remaining())
	}
}

func TestReaderSeek(t *testing.T) {
	r := newReader([]byte{0xAA, 0xBB, 0xCC})
	r.seek(2)
	v, err := r.u8()
	if err != nil {
		t.Fatalf("u8: %v", err)
	}
	if v != 0xCC {
		t.Errorf("u8 after seek = %#x, want 0xCC", v)
	}
}

func TestReaderFloat64(t *testing.T) {
	// 1.0 as little-endian IEEE-754 double.
	r := newReader([]byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F})
	v, err := r.f64le()
	if err != nil {
		t.Fatalf("f64le: %v", err)
	}
	if v != 1.0 {
		t.Errorf("f64le = %v, want 1.0", v)
	}
}

func TestBE16(t *testing.T) {
	if be16([]byte{0x01, 0x02}) != 0x0102 {
		t.Errorf("be16 mismatch")
	}
}
