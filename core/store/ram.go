package store

import (
	"errors"
	"fmt"
	"sync"
)

// store/RAMDirectory.java

/*
A memory-resident Directory implementation.

Warning: this class is not intended to work with huge indexes. It is
optimized for small memory-resident indexes, such as per-segment
scratch space and tests. Materialize large indexes on disk and use a
filesystem directory instead.
*/
type RAMDirectory struct {
	*DirectoryImpl

	fileMap     map[string]*RAMFile
	fileMapLock sync.RWMutex
	sizeInBytes int64 // guarded by fileMapLock
}

func NewRAMDirectory() *RAMDirectory {
	rd := &RAMDirectory{fileMap: make(map[string]*RAMFile)}
	rd.DirectoryImpl = NewDirectoryImpl(rd)
	return rd
}

func (rd *RAMDirectory) ListAll() (names []string, err error) {
	rd.EnsureOpen()
	rd.fileMapLock.RLock()
	defer rd.fileMapLock.RUnlock()
	names = make([]string, 0, len(rd.fileMap))
	for name := range rd.fileMap {
		names = append(names, name)
	}
	return names, nil
}

/* Returns true iff the named file exists in this directory. */
func (rd *RAMDirectory) FileExists(name string) bool {
	rd.EnsureOpen()
	rd.fileMapLock.RLock()
	defer rd.fileMapLock.RUnlock()
	_, ok := rd.fileMap[name]
	return ok
}

func (rd *RAMDirectory) FileLength(name string) (int64, error) {
	rd.EnsureOpen()
	rd.fileMapLock.RLock()
	defer rd.fileMapLock.RUnlock()
	if file, ok := rd.fileMap[name]; ok {
		return int64(len(file.data)), nil
	}
	return 0, errors.New(fmt.Sprintf("file not found: %v", name))
}

func (rd *RAMDirectory) DeleteFile(name string) error {
	rd.EnsureOpen()
	rd.fileMapLock.Lock()
	defer rd.fileMapLock.Unlock()
	if file, ok := rd.fileMap[name]; ok {
		delete(rd.fileMap, name)
		rd.sizeInBytes -= int64(len(file.data))
		return nil
	}
	return errors.New(fmt.Sprintf("file not found: %v", name))
}

func (rd *RAMDirectory) CreateOutput(name string, ctx IOContext) (IndexOutput, error) {
	rd.EnsureOpen()
	file := &RAMFile{directory: rd}
	rd.fileMapLock.Lock()
	if existing, ok := rd.fileMap[name]; ok {
		rd.sizeInBytes -= int64(len(existing.data))
	}
	rd.fileMap[name] = file
	rd.fileMapLock.Unlock()
	return newRAMOutputStream(name, file), nil
}

func (rd *RAMDirectory) OpenInput(name string, ctx IOContext) (IndexInput, error) {
	rd.EnsureOpen()
	rd.fileMapLock.RLock()
	file, ok := rd.fileMap[name]
	rd.fileMapLock.RUnlock()
	if !ok {
		return nil, errors.New(fmt.Sprintf("file not found: %v", name))
	}
	return NewBytesInput(fmt.Sprintf("RAMInputStream(name=%v)", name), file.data), nil
}

/* Return total size in bytes of all files in this directory. */
func (rd *RAMDirectory) RamBytesUsed() int64 {
	rd.EnsureOpen()
	rd.fileMapLock.RLock()
	defer rd.fileMapLock.RUnlock()
	return rd.sizeInBytes
}

/* Closes the store to future operations, releasing associated memory. */
func (rd *RAMDirectory) Close() error {
	rd.IsOpen = false
	rd.fileMapLock.Lock()
	defer rd.fileMapLock.Unlock()
	rd.fileMap = make(map[string]*RAMFile)
	rd.sizeInBytes = 0
	return nil
}

func (rd *RAMDirectory) String() string {
	return "RAMDirectory"
}

// store/RAMFile.java

/* Represents a file in RAM as a byte slice. */
type RAMFile struct {
	data      []byte
	directory *RAMDirectory
}

// store/RAMOutputStream.java

/* A memory-resident IndexOutput implementation. */
type RAMOutputStream struct {
	*IndexOutputImpl
	*checksumOutput
	name   string
	file   *RAMFile
	closed bool
}

func newRAMOutputStream(name string, file *RAMFile) *RAMOutputStream {
	out := &RAMOutputStream{
		checksumOutput: newChecksumOutput(),
		name:           name,
		file:           file,
	}
	out.IndexOutputImpl = NewIndexOutput(out)
	return out
}

func (out *RAMOutputStream) WriteByte(b byte) error {
	return out.WriteBytes([]byte{b})
}

func (out *RAMOutputStream) WriteBytes(buf []byte) error {
	assert2(!out.closed, "RAMOutputStream '%v' is already closed", out.name)
	out.file.data = append(out.file.data, buf...)
	out.account(buf)
	return nil
}

func (out *RAMOutputStream) Close() error {
	if out.closed {
		return nil
	}
	out.closed = true
	dir := out.file.directory
	dir.fileMapLock.Lock()
	dir.sizeInBytes += int64(len(out.file.data))
	dir.fileMapLock.Unlock()
	return nil
}
