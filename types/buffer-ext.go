package types

import (
	"bytes"
	"fmt"
	"io"
)

// BufferInterface is an encoded wire unit. The concrete type tells a decoder
// which framing produced it: *StringBuffer holds a text unit, *BytesBuffer
// holds a binary unit.
type BufferInterface interface {
	io.ReadWriter
	io.ReaderFrom
	io.WriterTo
	io.ByteScanner
	io.ByteWriter
	io.RuneScanner
	io.StringWriter
	WriteRune(rune) (int, error)
	Bytes() []byte
	fmt.Stringer
	Len() int
	Cap() int
	Truncate(int)
	Reset()
	Grow(int)
	Next(int) []byte
	ReadBytes(byte) ([]byte, error)
	ReadString(byte) (string, error)
}

// bytes buffer
type BytesBuffer struct {
	*bytes.Buffer
}

func NewBytesBuffer(buf []byte) BufferInterface {
	return &BytesBuffer{bytes.NewBuffer(buf)}
}

func NewBytesBufferString(s string) BufferInterface {
	return &BytesBuffer{bytes.NewBufferString(s)}
}

// NewBytesBufferReader drains r into a new binary unit.
func NewBytesBufferReader(r io.Reader) (BufferInterface, error) {
	b := NewBytesBuffer(nil)
	if _, err := b.ReadFrom(r); err != nil {
		return nil, err
	}
	return b, nil
}

// string buffer
type StringBuffer struct {
	*bytes.Buffer
}

func NewStringBuffer(buf []byte) BufferInterface {
	return &StringBuffer{bytes.NewBuffer(buf)}
}

func NewStringBufferString(s string) BufferInterface {
	return &StringBuffer{bytes.NewBufferString(s)}
}

// IsText reports whether b is a text unit.
func IsText(b BufferInterface) bool {
	_, ok := b.(*StringBuffer)
	return ok
}
