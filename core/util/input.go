package util

import (
	"errors"
)

// store/DataInput.java

/*
Abstract base class for performing read operations of low-level binary
data types.

DataInput may only be used from one thread, because it is not thread
safe (it keeps internal state like file position). To allow
multithreaded use, every DataInput instance must be cloned before used
in another thread. Subclasses must therefore implement Clone(),
returning a new DataInput which operates on the same underlying
resource, but positioned independently.
*/
type DataInput interface {
	ReadByte() (b byte, err error)
	ReadBytes(buf []byte) error
	ReadShort() (n int16, err error)
	ReadInt() (n int32, err error)
	ReadVInt() (n int32, err error)
	ReadLong() (n int64, err error)
	ReadVLong() (n int64, err error)
	ReadString() (s string, err error)
	ReadStringStringMap() (m map[string]string, err error)
	SkipBytes(numBytes int64) error
}

type DataReader interface {
	// Reads and returns a single byte.
	ReadByte() (b byte, err error)
	// Reads a specified number of bytes into an array.
	ReadBytes(buf []byte) error
}

const SKIP_BUFFER_SIZE = 1024

type DataInputImpl struct {
	Reader DataReader
	// This buffer is used to skip over bytes with the default
	// implementation of SkipBytes. An instance member is used instead
	// of a shared buffer so that delegating implementations which
	// update a checksum from the buffer are not corrupted by
	// concurrent use from another routine.
	skipBuffer []byte
}

func NewDataInput(spi DataReader) *DataInputImpl {
	return &DataInputImpl{Reader: spi}
}

func (in *DataInputImpl) ReadShort() (n int16, err error) {
	var b1, b2 byte
	if b1, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	if b2, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	return (int16(b1) << 8) | int16(b2), nil
}

func (in *DataInputImpl) ReadInt() (n int32, err error) {
	var b1, b2, b3, b4 byte
	if b1, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	if b2, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	if b3, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	if b4, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	return (int32(b1) << 24) | (int32(b2) << 16) | (int32(b3) << 8) | int32(b4), nil
}

/*
Reads an int stored in variable-length format. Reads between one and
five bytes. Smaller values take fewer bytes. Negative numbers are not
supported.
*/
func (in *DataInputImpl) ReadVInt() (n int32, err error) {
	var b byte
	if b, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	n = int32(b) & 0x7F
	for shift := uint(7); b >= 128; shift += 7 {
		if shift == 28 {
			if b, err = in.Reader.ReadByte(); err != nil {
				return 0, err
			}
			// Warning: the next ands use 0x0F / 0xF0 - beware copy/paste errors:
			n |= (int32(b) & 0x0F) << 28
			if int32(b)&0xF0 == 0 {
				return n, nil
			}
			return 0, errors.New("Invalid vInt detected (too many bits)")
		}
		if b, err = in.Reader.ReadByte(); err != nil {
			return 0, err
		}
		n |= (int32(b) & 0x7F) << shift
	}
	return n, nil
}

func (in *DataInputImpl) ReadLong() (n int64, err error) {
	d1, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	d2, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	return (int64(d1) << 32) | (int64(d2) & 0xFFFFFFFF), nil
}

/*
Reads a long stored in variable-length format. Reads between one and
nine bytes. Smaller values take fewer bytes. Negative numbers are not
supported.
*/
func (in *DataInputImpl) ReadVLong() (n int64, err error) {
	var b byte
	if b, err = in.Reader.ReadByte(); err != nil {
		return 0, err
	}
	n = int64(b & 0x7F)
	for shift := uint(7); b >= 128; shift += 7 {
		if shift == 63 {
			return 0, errors.New("Invalid vLong detected (negative values disallowed)")
		}
		if b, err = in.Reader.ReadByte(); err != nil {
			return 0, err
		}
		n |= int64(b&0x7F) << shift
	}
	return n, nil
}

/*
Reads a string.

A string is written as a VInt byte length, followed by that many
UTF-8 encoded bytes.
*/
func (in *DataInputImpl) ReadString() (s string, err error) {
	length, err := in.ReadVInt()
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", errors.New("invalid string length (negative)")
	}
	bytes := make([]byte, length)
	if err = in.Reader.ReadBytes(bytes); err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (in *DataInputImpl) ReadStringStringMap() (m map[string]string, err error) {
	count, err := in.ReadInt()
	if err != nil {
		return nil, err
	}
	m = make(map[string]string)
	for i := int32(0); i < count; i++ {
		key, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		value, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		m[key] = value
	}
	return m, nil
}

/*
Skip over numBytes bytes. The contract on this method is that it
should have the same behavior as reading the same number of bytes into
a buffer and discarding its content. Negative values of numBytes are
not supported.
*/
func (in *DataInputImpl) SkipBytes(numBytes int64) (err error) {
	assert2(numBytes >= 0, "numBytes must be >= 0, got %v", numBytes)
	if in.skipBuffer == nil {
		in.skipBuffer = make([]byte, SKIP_BUFFER_SIZE)
	}
	for skipped := int64(0); skipped < numBytes; {
		step := numBytes - skipped
		if step > SKIP_BUFFER_SIZE {
			step = SKIP_BUFFER_SIZE
		}
		if err = in.Reader.ReadBytes(in.skipBuffer[:step]); err != nil {
			return
		}
		skipped += step
	}
	return nil
}
