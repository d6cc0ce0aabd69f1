package store

import (
	"hash"
	"hash/crc32"
	"io"

	"github.com/ironsweet/gosegment/core/util"
)

// store/IndexOutput.java

/*
Abstract base class for output to a file in a Directory. A random
access output stream, used for all index output operations.

IndexOutput may only be used from one goroutine, because it is not
thread safe (it keeps internal state like file position).
*/
type IndexOutput interface {
	io.Closer
	util.DataOutput
	// Returns the current position in this file, where the next write
	// will occur.
	FilePointer() int64
	// Returns the current checksum of bytes written so far.
	Checksum() int64
}

type IndexOutputImpl struct {
	*util.DataOutputImpl
}

func NewIndexOutput(part util.DataWriter) *IndexOutputImpl {
	return &IndexOutputImpl{util.NewDataOutput(part)}
}

// store/OutputStreamIndexOutput.java

/*
checksumOutput is the common base for concrete outputs: it tracks the
file pointer and maintains a running CRC32 over every byte written,
so WriteFooter can record the checksum without a second pass.
*/
type checksumOutput struct {
	digest  hash.Hash32
	written int64
}

func newChecksumOutput() *checksumOutput {
	return &checksumOutput{digest: crc32.NewIEEE()}
}

func (out *checksumOutput) account(buf []byte) {
	out.digest.Write(buf)
	out.written += int64(len(buf))
}

func (out *checksumOutput) FilePointer() int64 {
	return out.written
}

func (out *checksumOutput) Checksum() int64 {
	return int64(out.digest.Sum32())
}
