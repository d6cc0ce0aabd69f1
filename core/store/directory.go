package store

import (
	"fmt"
	"io"
)

// store/IOContext.java

type IOContextType int

const (
	IO_CONTEXT_TYPE_MERGE IOContextType = iota
	IO_CONTEXT_TYPE_READ
	IO_CONTEXT_TYPE_FLUSH
	IO_CONTEXT_TYPE_DEFAULT
)

/*
IOContext holds additional details on the merge/search context. It is
a hint passed to the Directory; implementations may use it to choose
buffer sizes or read-ahead strategies.
*/
type IOContext struct {
	Type     IOContextType
	ReadOnce bool
}

var (
	IO_CONTEXT_DEFAULT  = IOContext{Type: IO_CONTEXT_TYPE_DEFAULT}
	IO_CONTEXT_READONCE = IOContext{Type: IO_CONTEXT_TYPE_READ, ReadOnce: true}
	IO_CONTEXT_READ     = IOContext{Type: IO_CONTEXT_TYPE_READ}
)

func (ctx IOContext) String() string {
	return fmt.Sprintf("IOContext [type=%v, readOnce=%v]", ctx.Type, ctx.ReadOnce)
}

// store/Directory.java

/*
A Directory is a flat list of files. Files may be written once, when
they are created. Once a file is created it may only be opened for
read, or deleted. Random access is permitted both when reading and
writing.
*/
type Directory interface {
	io.Closer
	// Returns names of all files stored in this directory.
	ListAll() (names []string, err error)
	// Removes an existing file in the directory.
	DeleteFile(name string) error
	// Returns the length of a file in the directory.
	FileLength(name string) (n int64, err error)
	// Creates a new, empty file in the directory with the given name.
	// Returns a stream writing this file.
	CreateOutput(name string, ctx IOContext) (out IndexOutput, err error)
	// Returns a stream reading an existing file.
	OpenInput(name string, ctx IOContext) (in IndexInput, err error)
	// Returns a stream reading an existing file, computing a checksum
	// as it is read.
	OpenChecksumInput(name string, ctx IOContext) (in ChecksumIndexInput, err error)
}

/*
DirectoryImpl provides the derivable parts of a Directory over the
primitive operations.
*/
type DirectoryImpl struct {
	spi    Directory
	IsOpen bool
}

func NewDirectoryImpl(spi Directory) *DirectoryImpl {
	return &DirectoryImpl{spi: spi, IsOpen: true}
}

func (d *DirectoryImpl) OpenChecksumInput(name string, ctx IOContext) (ChecksumIndexInput, error) {
	main, err := d.spi.OpenInput(name, ctx)
	if err != nil {
		return nil, err
	}
	return newBufferedChecksumIndexInput(main), nil
}

func (d *DirectoryImpl) EnsureOpen() {
	assert2(d.IsOpen, "this Directory is closed")
}

func assert(ok bool) {
	assert2(ok, "assert fail")
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
