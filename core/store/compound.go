package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/op/go-logging"

	"github.com/ironsweet/gosegment/core/codec"
	"github.com/ironsweet/gosegment/core/util"
)

var log = logging.MustGetLogger("store")

// store/CompoundFileDirectory.java
// codecs/lucene50/Lucene50CompoundFormat.java

/*
Compound file format:

	.cfs: the data blob, consisting of all the other segment files for
	systems that frequently run out of file handles.
	.cfe: the compound file's entry table holding all entries in the
	corresponding .cfs file.

Description:

	Compound (.cfs) --> Header, FileData^FileCount, Footer
	Compound Entry Table (.cfe) --> Header, FileCount,
		<FileName, DataOffset, DataLength>^FileCount, Footer
	Header --> IndexHeader
	FileCount --> VInt
	DataOffset, DataLength --> Int64
	FileName --> string
	FileData --> raw file data
	Footer --> CodecFooter

FileCount indicates how many files are contained in this compound
file. The entry table that follows has that many entries. Each
directory entry contains a long pointer to the start of this file's
data section, the file's length, and a string with that file's name
(with the segment name stripped).
*/
const (
	CFD_DATA_CODEC      = "SegmentCompoundData"
	CFD_ENTRY_CODEC     = "SegmentCompoundEntries"
	CFD_VERSION_START   = 0
	CFD_VERSION_CURRENT = CFD_VERSION_START

	COMPOUND_FILE_EXTENSION         = "cfs"
	COMPOUND_FILE_ENTRIES_EXTENSION = "cfe"
)

type FileSlice struct {
	Offset, Length int64
}

/*
Returns the two logical files this format creates for a segment: the
data file and the entry table, in that order. The answer does not
depend on how many files were packed.
*/
func CompoundFileNames(segment string) []string {
	return []string{
		util.SegmentFileName(segment, "", COMPOUND_FILE_EXTENSION),
		util.SegmentFileName(segment, "", COMPOUND_FILE_ENTRIES_EXTENSION),
	}
}

/*
Packs the given files of a segment into a single compound data file
plus an entry table. Files are copied in the caller-provided order;
each entry records the stripped name, the start offset inside the
data stream, and the copied length. Both outputs carry the same
segment id and an empty suffix, and end with a checksum footer, so a
write that fails midway leaves the destination detectably corrupt
rather than silently truncated.
*/
func WriteCompoundFile(dir Directory, segmentID []byte, segment string, files []string, ctx IOContext) (err error) {
	names := CompoundFileNames(segment)
	dataFile, entriesFile := names[0], names[1]

	var data, entries IndexOutput
	var success = false
	defer func() {
		if success {
			err = util.Close(data, entries)
		} else {
			util.CloseWhileSuppressingError(data, entries)
		}
	}()

	if data, err = dir.CreateOutput(dataFile, ctx); err != nil {
		return err
	}
	if entries, err = dir.CreateOutput(entriesFile, ctx); err != nil {
		return err
	}
	if err = codec.WriteIndexHeader(data, CFD_DATA_CODEC, CFD_VERSION_CURRENT, segmentID, ""); err != nil {
		return err
	}
	if err = codec.WriteIndexHeader(entries, CFD_ENTRY_CODEC, CFD_VERSION_CURRENT, segmentID, ""); err != nil {
		return err
	}

	// write number of files
	if err = entries.WriteVInt(int32(len(files))); err != nil {
		return err
	}
	for _, file := range files {
		// write bytes for file
		startOffset := data.FilePointer()
		if err = func() (err error) {
			var in IndexInput
			if in, err = dir.OpenInput(file, IO_CONTEXT_READONCE); err != nil {
				return err
			}
			defer util.CloseWhileSuppressingError(in)
			return data.CopyBytes(in, in.Length())
		}(); err != nil {
			return err
		}
		length := data.FilePointer() - startOffset

		// write entry for file
		if err = entries.WriteString(util.StripSegmentName(file)); err != nil {
			return err
		}
		if err = entries.WriteLong(startOffset); err != nil {
			return err
		}
		if err = entries.WriteLong(length); err != nil {
			return err
		}
	}

	if err = codec.WriteFooter(data); err != nil {
		return err
	}
	if err = codec.WriteFooter(entries); err != nil {
		return err
	}
	success = true
	return nil
}

/*
A read-only Directory view over a compound file. Each logical sub-file
is exposed as a byte-range slice of the single data file; opening a
sub-file only seeks to its recorded offset, it never re-reads the
whole compound file.
*/
type CompoundFileDirectory struct {
	*DirectoryImpl
	sync.Mutex

	directory Directory
	segment   string
	segmentID []byte
	entries   map[string]FileSlice
	handle    IndexInput
	version   int32
}

func OpenCompoundFileDirectory(directory Directory, segment string, segmentID []byte, ctx IOContext) (d *CompoundFileDirectory, err error) {
	d = &CompoundFileDirectory{
		directory: directory,
		segment:   segment,
		segmentID: segmentID,
	}
	d.DirectoryImpl = NewDirectoryImpl(d)

	var success = false
	defer func() {
		if !success {
			util.CloseWhileSuppressingError(d.handle)
		}
	}()

	names := CompoundFileNames(segment)
	if d.handle, err = directory.OpenInput(names[0], ctx); err != nil {
		return nil, err
	}
	if d.entries, err = d.readEntries(directory, names[1]); err != nil {
		return nil, err
	}
	if _, err = codec.CheckIndexHeader(d.handle, CFD_DATA_CODEC,
		CFD_VERSION_START, CFD_VERSION_CURRENT, segmentID, ""); err != nil {
		return nil, err
	}
	// NOTE: the data file is too costly to verify checksum against all
	// the bytes on open, but for now we at least verify proper structure
	// of the checksum footer: which looks for FOOTER_MAGIC +
	// algorithmID. This is cheap and can detect some forms of
	// corruption such as file truncation.
	if _, err = codec.RetrieveChecksum(d.handle); err != nil {
		return nil, err
	}
	success = true
	log.Debugf("opened compound file %v with %v entries", names[0], len(d.entries))
	return d, nil
}

func (d *CompoundFileDirectory) readEntries(dir Directory, entriesFileName string) (mapping map[string]FileSlice, err error) {
	var entriesStream ChecksumIndexInput
	if entriesStream, err = dir.OpenChecksumInput(entriesFileName, IO_CONTEXT_READONCE); err != nil {
		return nil, err
	}
	defer func() {
		err = util.CloseWhileHandlingError(err, entriesStream)
	}()

	var priorErr error
	mapping, priorErr = func() (map[string]FileSlice, error) {
		if d.version, err = codec.CheckIndexHeader(entriesStream, CFD_ENTRY_CODEC,
			CFD_VERSION_START, CFD_VERSION_CURRENT, d.segmentID, ""); err != nil {
			return nil, err
		}
		numEntries, err := entriesStream.ReadVInt()
		if err != nil {
			return nil, err
		}
		m := make(map[string]FileSlice)
		for i := int32(0); i < numEntries; i++ {
			id, err := entriesStream.ReadString()
			if err != nil {
				return nil, err
			}
			if _, ok := m[id]; ok {
				return nil, codec.NewCorruptIndexError(fmt.Sprintf(
					"duplicate cfs entry id=%v", id), entriesStream)
			}
			offset, err := entriesStream.ReadLong()
			if err != nil {
				return nil, err
			}
			length, err := entriesStream.ReadLong()
			if err != nil {
				return nil, err
			}
			m[id] = FileSlice{offset, length}
		}
		return m, nil
	}()
	if err = codec.CheckFooterWithPrior(entriesStream, priorErr); err != nil {
		return nil, err
	}
	return mapping, nil
}

func (d *CompoundFileDirectory) OpenInput(name string, ctx IOContext) (IndexInput, error) {
	d.Lock() // synchronized
	defer d.Unlock()

	d.EnsureOpen()
	id := util.StripSegmentName(name)
	entry, ok := d.entries[id]
	if !ok {
		keys := make([]string, 0, len(d.entries))
		for k := range d.entries {
			keys = append(keys, k)
		}
		return nil, errors.New(fmt.Sprintf(
			"no sub-file with id %v found in compound file (fileName=%v files: %v)", id, name, keys))
	}
	return d.handle.Slice(name, entry.Offset, entry.Length)
}

/*
Fully checksums the data file against its footer. Expensive; the open
path only verifies footer structure.
*/
func (d *CompoundFileDirectory) CheckIntegrity() error {
	d.Lock() // synchronized
	defer d.Unlock()

	d.EnsureOpen()
	_, err := codec.ChecksumEntireFile(d.handle.Clone())
	return err
}

func (d *CompoundFileDirectory) ListAll() (names []string, err error) {
	d.EnsureOpen()
	names = make([]string, 0, len(d.entries))
	for k := range d.entries {
		names = append(names, d.segment+k)
	}
	return names, nil
}

func (d *CompoundFileDirectory) FileLength(name string) (int64, error) {
	d.EnsureOpen()
	if entry, ok := d.entries[util.StripSegmentName(name)]; ok {
		return entry.Length, nil
	}
	return 0, errors.New(fmt.Sprintf("file not found: %v", name))
}

func (d *CompoundFileDirectory) DeleteFile(name string) error {
	panic("not supported by CFS")
}

func (d *CompoundFileDirectory) CreateOutput(name string, ctx IOContext) (IndexOutput, error) {
	panic("not supported by CFS")
}

func (d *CompoundFileDirectory) Close() error {
	d.Lock() // synchronized
	defer d.Unlock()

	if !d.IsOpen {
		// allow double close - usually to be consistent with other closeables
		return nil
	}
	d.IsOpen = false
	return util.Close(d.handle)
}

func (d *CompoundFileDirectory) String() string {
	return fmt.Sprintf("CompoundFileDirectory(segment='%v' in dir=%v)", d.segment, d.directory)
}
