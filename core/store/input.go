package store

import (
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/ironsweet/gosegment/core/util"
)

// store/IndexInput.java

/*
Abstract base class for input from a file in a Directory. A random
access input stream, used for all index input operations.

IndexInput may only be used from one goroutine, because it is not
thread safe (it keeps internal state like file position). To allow
multi-goroutine use, every IndexInput instance must be cloned before
being used in another goroutine.
*/
type IndexInput interface {
	io.Closer
	util.DataInput
	// Returns the current position in this file, where the next read
	// will occur.
	FilePointer() int64
	// Sets current position in this file, where the next read will
	// occur.
	Seek(pos int64) error
	// The number of bytes in the file.
	Length() int64
	// Returns a clone of this stream, positioned independently.
	Clone() IndexInput
	// Creates a slice of this index input, with the given description,
	// offset and length. The slice is seeked to the beginning.
	Slice(desc string, offset, length int64) (IndexInput, error)
}

// store/ByteArrayIndexInput.java

/* IndexInput backed by a byte slice. */
type BytesInput struct {
	*util.DataInputImpl
	desc  string
	bytes []byte
	pos   int64
}

func NewBytesInput(desc string, bytes []byte) *BytesInput {
	in := &BytesInput{desc: desc, bytes: bytes}
	in.DataInputImpl = util.NewDataInput(in)
	return in
}

func (in *BytesInput) ReadByte() (byte, error) {
	if in.pos >= int64(len(in.bytes)) {
		return 0, errors.New(fmt.Sprintf("read past EOF: %v", in))
	}
	b := in.bytes[in.pos]
	in.pos++
	return b, nil
}

func (in *BytesInput) ReadBytes(buf []byte) error {
	if in.pos+int64(len(buf)) > int64(len(in.bytes)) {
		return errors.New(fmt.Sprintf("read past EOF: %v", in))
	}
	copy(buf, in.bytes[in.pos:in.pos+int64(len(buf))])
	in.pos += int64(len(buf))
	return nil
}

func (in *BytesInput) FilePointer() int64 {
	return in.pos
}

func (in *BytesInput) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(in.bytes)) {
		return errors.New(fmt.Sprintf("seek past EOF: pos=%v vs length=%v (%v)", pos, len(in.bytes), in))
	}
	in.pos = pos
	return nil
}

func (in *BytesInput) Length() int64 {
	return int64(len(in.bytes))
}

func (in *BytesInput) Clone() IndexInput {
	clone := NewBytesInput(in.desc, in.bytes)
	clone.pos = in.pos
	return clone
}

func (in *BytesInput) Slice(desc string, offset, length int64) (IndexInput, error) {
	if offset < 0 || length < 0 || offset+length > int64(len(in.bytes)) {
		return nil, errors.New(fmt.Sprintf(
			"slice() %v out of bounds: offset=%v, length=%v, fileLength=%v: %v",
			desc, offset, length, len(in.bytes), in))
	}
	return NewBytesInput(fmt.Sprintf("%v [slice=%v]", in.desc, desc),
		in.bytes[offset:offset+length]), nil
}

func (in *BytesInput) Close() error {
	return nil
}

func (in *BytesInput) String() string {
	return in.desc
}

// store/BufferedChecksumIndexInput.java

/*
Extension of IndexInput, computing a checksum as it goes. Seeking is
only supported in the forward direction; the skipped bytes still feed
the checksum.
*/
type ChecksumIndexInput interface {
	IndexInput
	// Returns the current checksum value.
	Checksum() int64
}

type bufferedChecksumIndexInput struct {
	*util.DataInputImpl
	main   IndexInput
	digest hash.Hash32
}

func newBufferedChecksumIndexInput(main IndexInput) ChecksumIndexInput {
	in := &bufferedChecksumIndexInput{main: main, digest: crc32.NewIEEE()}
	in.DataInputImpl = util.NewDataInput(in)
	return in
}

func (in *bufferedChecksumIndexInput) ReadByte() (b byte, err error) {
	if b, err = in.main.ReadByte(); err == nil {
		in.digest.Write([]byte{b})
	}
	return b, err
}

func (in *bufferedChecksumIndexInput) ReadBytes(buf []byte) error {
	err := in.main.ReadBytes(buf)
	if err == nil {
		in.digest.Write(buf)
	}
	return err
}

func (in *bufferedChecksumIndexInput) Checksum() int64 {
	return int64(in.digest.Sum32())
}

func (in *bufferedChecksumIndexInput) Close() error {
	return in.main.Close()
}

func (in *bufferedChecksumIndexInput) FilePointer() int64 {
	return in.main.FilePointer()
}

func (in *bufferedChecksumIndexInput) Seek(pos int64) error {
	skip := pos - in.main.FilePointer()
	assert2(skip >= 0, "ChecksumIndexInput cannot seek backwards (pos=%v FilePointer=%v)",
		pos, in.main.FilePointer())
	return in.SkipBytes(skip)
}

func (in *bufferedChecksumIndexInput) Length() int64 {
	return in.main.Length()
}

func (in *bufferedChecksumIndexInput) Clone() IndexInput {
	panic("ChecksumIndexInput cannot be cloned")
}

func (in *bufferedChecksumIndexInput) Slice(desc string, offset, length int64) (IndexInput, error) {
	panic("ChecksumIndexInput cannot be sliced")
}

func (in *bufferedChecksumIndexInput) String() string {
	return fmt.Sprintf("BufferedChecksumIndexInput(%v)", in.main)
}
