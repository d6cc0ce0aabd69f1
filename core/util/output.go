package util

import (
	"sort"
)

// store/DataOutput.java

/*
Abstract base class for performing write operations of low-level
binary data types.

DataOutput may only be used from one thread, because it is not thread
safe (it keeps internal state like file position).
*/
type DataOutput interface {
	DataWriter
	WriteInt(i int32) error
	WriteVInt(i int32) error
	WriteLong(i int64) error
	WriteVLong(i int64) error
	WriteString(s string) error
	CopyBytes(input DataInput, numBytes int64) error
	WriteStringStringMap(m map[string]string) error
}

type DataWriter interface {
	WriteByte(b byte) error
	WriteBytes(buf []byte) error
}

type DataOutputImpl struct {
	Writer     DataWriter
	copyBuffer []byte
}

func NewDataOutput(part DataWriter) *DataOutputImpl {
	assert(part != nil)
	return &DataOutputImpl{Writer: part}
}

/*
Writes an int as four bytes.

32-bit unsigned integer written as four bytes, high-order bytes first.
*/
func (out *DataOutputImpl) WriteInt(i int32) error {
	if err := out.Writer.WriteByte(byte(i >> 24)); err != nil {
		return err
	}
	if err := out.Writer.WriteByte(byte(i >> 16)); err != nil {
		return err
	}
	if err := out.Writer.WriteByte(byte(i >> 8)); err != nil {
		return err
	}
	return out.Writer.WriteByte(byte(i))
}

/*
Writes an int in a variable-length format. Writes between one and five
bytes. Smaller values take fewer bytes. Negative numbers are
supported, but should be avoided.

VByte is a variable-length format for positive integers defined where
the high-order bit of each byte indicates whether more bytes remain to
be read. The low-order seven bits are appended as increasingly more
significant bits in the resulting integer value. Thus values from zero
to 127 may be stored in a single byte, values from 128 to 16,383 may
be stored in two bytes, and so on.

This provides compression while still being efficient to decode.
*/
func (out *DataOutputImpl) WriteVInt(i int32) error {
	for (i & ^0x7F) != 0 {
		if err := out.Writer.WriteByte(byte(i&0x7F) | 0x80); err != nil {
			return err
		}
		i = int32(uint32(i) >> 7)
	}
	return out.Writer.WriteByte(byte(i))
}

/*
Writes a long as eight bytes.

64-bit unsigned integer written as eight bytes, high-order bytes first.
*/
func (out *DataOutputImpl) WriteLong(i int64) error {
	if err := out.WriteInt(int32(i >> 32)); err != nil {
		return err
	}
	return out.WriteInt(int32(i))
}

/*
Writes a long in a variable-length format. Writes between one and nine
bytes. Smaller values take fewer bytes. Negative numbers are not
supported.

The format is described further in WriteVInt().
*/
func (out *DataOutputImpl) WriteVLong(i int64) error {
	assert(i >= 0)
	for (i & ^0x7F) != 0 {
		if err := out.Writer.WriteByte(byte(i&0x7F) | 0x80); err != nil {
			return err
		}
		i = int64(uint64(i) >> 7)
	}
	return out.Writer.WriteByte(byte(i))
}

/*
Writes a string.

Writes strings as UTF-8 encoded bytes. First the length, in bytes, is
written as a VInt, followed by the bytes.
*/
func (out *DataOutputImpl) WriteString(s string) error {
	bytes := []byte(s)
	if err := out.WriteVInt(int32(len(bytes))); err != nil {
		return err
	}
	return out.Writer.WriteBytes(bytes)
}

const DATA_OUTPUT_COPY_BUFFER_SIZE = 16384

/* Copy numBytes bytes from input to output. */
func (out *DataOutputImpl) CopyBytes(input DataInput, numBytes int64) error {
	assert(numBytes >= 0)
	left := numBytes
	if out.copyBuffer == nil {
		out.copyBuffer = make([]byte, DATA_OUTPUT_COPY_BUFFER_SIZE)
	}
	for left > 0 {
		toCopy := left
		if toCopy > DATA_OUTPUT_COPY_BUFFER_SIZE {
			toCopy = DATA_OUTPUT_COPY_BUFFER_SIZE
		}
		if err := input.ReadBytes(out.copyBuffer[:toCopy]); err != nil {
			return err
		}
		if err := out.Writer.WriteBytes(out.copyBuffer[:toCopy]); err != nil {
			return err
		}
		left -= toCopy
	}
	return nil
}

/*
Writes a string map.

First the size is written as an int32, followed by each key-value pair
written as two consecutive strings. Keys are written in sorted order
so serialization is reproducible.
*/
func (out *DataOutputImpl) WriteStringStringMap(m map[string]string) error {
	if m == nil {
		return out.WriteInt(0)
	}
	if err := out.WriteInt(int32(len(m))); err != nil {
		return err
	}
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := out.WriteString(k); err != nil {
			return err
		}
		if err := out.WriteString(m[k]); err != nil {
			return err
		}
	}
	return nil
}
