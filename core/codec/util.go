package codec

import (
	"bytes"
	"fmt"
	"hash/crc32"

	"github.com/pkg/errors"

	"github.com/ironsweet/gosegment/core/util"
)

// codecs/CodecUtil.java

/* Constant to identify the start of a codec header. */
const CODEC_MAGIC = 0x3fd76c17

/* Constant to identify the start of a codec footer. */
const FOOTER_MAGIC = ^CODEC_MAGIC

/* Fixed length of the footer: magic, algorithm id, checksum. */
const FOOTER_LENGTH = 16

/* Length in bytes of a segment id. */
const ID_LENGTH = 16

type DataOutput interface {
	util.DataOutput
}

type DataInput interface {
	util.DataInput
}

type IndexOutput interface {
	util.DataOutput
	Checksum() int64
}

type IndexInput interface {
	util.DataInput
	FilePointer() int64
	Seek(pos int64) error
	Length() int64
}

type ChecksumIndexInput interface {
	IndexInput
	Checksum() int64
}

/*
Writes a codec header, which records both a string to identify the
file and a version number. This header can be parsed and validated
with CheckHeader().

CodecHeader --> Magic,CodecName,Version
	Magic --> uint32. This identifies the start of the header. It is
	always CODEC_MAGIC.
	CodecName --> string. This is a string to identify this file.
	Version --> uint32. Records the version of the file.

Note that the length of a codec header depends only upon the name of
the codec, so this length can be computed at any time with
HeaderLength().
*/
func WriteHeader(out DataOutput, codec string, version int32) error {
	assert(out != nil)
	bs := []byte(codec)
	assert2(len(bs) == len(codec) && len(bs) < 128,
		"codec must be simple ASCII, less than 128 characters in length [got %v]", codec)
	if err := out.WriteInt(CODEC_MAGIC); err != nil {
		return err
	}
	if err := out.WriteString(codec); err != nil {
		return err
	}
	return out.WriteInt(version)
}

/*
Writes a codec header for an index file, which records a string to
identify the file, a version number, the unique id of the segment the
file belongs to, and the segment suffix. This header can be parsed
and validated with CheckIndexHeader().

IndexHeader --> CodecHeader,ObjectID,ObjectSuffix
	ObjectID --> 16 raw bytes.
	ObjectSuffix --> SuffixLength (byte), SuffixBytes.
*/
func WriteIndexHeader(out DataOutput, codec string, version int32, id []byte, suffix string) error {
	assert2(len(id) == ID_LENGTH, "Invalid id: %v bytes", len(id))
	if err := WriteHeader(out, codec, version); err != nil {
		return err
	}
	if err := out.WriteBytes(id); err != nil {
		return err
	}
	suffixBytes := []byte(suffix)
	assert2(len(suffixBytes) == len(suffix) && len(suffixBytes) < 256,
		"suffix must be simple ASCII, less than 256 characters in length [got %v]", suffix)
	if err := out.WriteByte(byte(len(suffixBytes))); err != nil {
		return err
	}
	return out.WriteBytes(suffixBytes)
}

/* Computes the length of a codec header. */
func HeaderLength(codec string) int {
	return 9 + len(codec)
}

/* Computes the length of an index header. */
func IndexHeaderLength(codec, suffix string) int {
	return HeaderLength(codec) + ID_LENGTH + 1 + len(suffix)
}

/*
Reads and validates a header previously written with WriteHeader().

When reading a file, supply the expected codec and an expected version
range. A codec name mismatch and an out of range version are reported
as distinct corruption errors; reading fails immediately in both
cases.
*/
func CheckHeader(in DataInput, codec string, minVersion, maxVersion int32) (v int32, err error) {
	// Safety to guard against reading a bogus string:
	actualHeader, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	if actualHeader != CODEC_MAGIC {
		return 0, NewCorruptIndexError(fmt.Sprintf(
			"codec header mismatch: actual header=%v vs expected header=%v",
			actualHeader, int32(CODEC_MAGIC)), in)
	}
	return CheckHeaderNoMagic(in, codec, minVersion, maxVersion)
}

/* Like CheckHeader(), except assumes the magic has already been read. */
func CheckHeaderNoMagic(in DataInput, codec string, minVersion, maxVersion int32) (v int32, err error) {
	actualCodec, err := in.ReadString()
	if err != nil {
		return 0, err
	}
	if actualCodec != codec {
		return 0, NewCorruptIndexError(fmt.Sprintf(
			"codec mismatch: actual codec=%v vs expected codec=%v", actualCodec, codec), in)
	}

	actualVersion, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	if actualVersion < minVersion {
		return 0, NewIndexFormatTooOldError(in, actualVersion, minVersion, maxVersion)
	}
	if actualVersion > maxVersion {
		return 0, NewIndexFormatTooNewError(in, actualVersion, minVersion, maxVersion)
	}

	return actualVersion, nil
}

/*
Reads and validates a header previously written with
WriteIndexHeader(). The segment id and suffix must match the values
the file was written with or reading fails with a corruption error.
*/
func CheckIndexHeader(in DataInput, codec string, minVersion, maxVersion int32, expectedID []byte, expectedSuffix string) (v int32, err error) {
	version, err := CheckHeader(in, codec, minVersion, maxVersion)
	if err != nil {
		return 0, err
	}
	if err = CheckIndexHeaderID(in, expectedID); err != nil {
		return 0, err
	}
	if err = checkIndexHeaderSuffix(in, expectedSuffix); err != nil {
		return 0, err
	}
	return version, nil
}

/* Expert: verifies the incoming stream's segment id matches. */
func CheckIndexHeaderID(in DataInput, expectedID []byte) error {
	id := make([]byte, ID_LENGTH)
	if err := in.ReadBytes(id); err != nil {
		return err
	}
	if !bytes.Equal(id, expectedID) {
		return NewCorruptIndexError(fmt.Sprintf(
			"file mismatch, expected id=%x, got=%x", expectedID, id), in)
	}
	return nil
}

func checkIndexHeaderSuffix(in DataInput, expectedSuffix string) error {
	length, err := in.ReadByte()
	if err != nil {
		return err
	}
	suffixBytes := make([]byte, length)
	if err = in.ReadBytes(suffixBytes); err != nil {
		return err
	}
	if string(suffixBytes) != expectedSuffix {
		return NewCorruptIndexError(fmt.Sprintf(
			"file mismatch, expected suffix=%v, got=%v", expectedSuffix, string(suffixBytes)), in)
	}
	return nil
}

/*
Writes a codec footer, which records both a checksum algorithm ID and
a checksum. This footer can be parsed and validated with CheckFooter().

CodecFooter --> Magic,AlgorithmID,Checksum
	- Magic --> uint32. This identifies the start of the footer. It is
		always FOOTER_MAGIC.
	- AlgorithmID --> uint32. This indicates the checksum algorithm
		used. Currently this is always 0, for zlib-crc32.
	- Checksum --> uint64. The actual checksum value for all previous
		bytes in the stream, including the bytes from Magic and
		AlgorithmID.
*/
func WriteFooter(out IndexOutput) (err error) {
	if err = out.WriteInt(FOOTER_MAGIC); err != nil {
		return
	}
	if err = out.WriteInt(0); err != nil {
		return
	}
	return out.WriteLong(out.Checksum())
}

/* Validates the codec footer previously written by WriteFooter(). */
func CheckFooter(in ChecksumIndexInput) (cs int64, err error) {
	if err = validateFooter(in); err != nil {
		return 0, err
	}
	cs = in.Checksum()
	cs2, err := in.ReadLong()
	if err != nil {
		return 0, err
	}
	if cs != cs2 {
		return 0, NewCorruptIndexError(fmt.Sprintf(
			"checksum failed (hardware problem?): expected=%v actual=%v",
			util.ItoHex(cs2), util.ItoHex(cs)), in)
	}
	if in.FilePointer() != in.Length() {
		return 0, NewCorruptIndexError(fmt.Sprintf(
			"did not read all bytes from file: read %v vs size %v",
			in.FilePointer(), in.Length()), in)
	}
	return cs, nil
}

/*
Validates the codec footer previously written by WriteFooter(), and
optionally surfaces a prior error encountered while reading the file
body.

When priorErr is nil this behaves like CheckFooter(). When priorErr is
non-nil the footer is still consumed and verified, but the prior
error always takes precedence: a secondary checksum mismatch never
masks the root cause, it is attached to the returned error instead.
*/
func CheckFooterWithPrior(in ChecksumIndexInput, priorErr error) error {
	if priorErr == nil {
		_, err := CheckFooter(in)
		return err
	}
	// consume the rest of the body so the footer bytes line up, then
	// report the footer state alongside the root cause
	if _, footerErr := CheckFooter(in); footerErr != nil {
		return errors.Wrapf(priorErr, "checksum status indeterminate (%v)", footerErr)
	}
	return errors.Wrap(priorErr, "checksum passed but file content is corrupt")
}

/*
Returns (but does not validate) the checksum previously written by
WriteFooter(). Seeks to the footer, so this is cheap for any file
size; it catches truncation without the cost of checksumming all
preceding bytes.
*/
func RetrieveChecksum(in IndexInput) (int64, error) {
	if in.Length() < FOOTER_LENGTH {
		return 0, NewCorruptIndexError(fmt.Sprintf(
			"misplaced codec footer (file truncated?): length=%v but footerLength==%v",
			in.Length(), FOOTER_LENGTH), in)
	}
	if err := in.Seek(in.Length() - FOOTER_LENGTH); err != nil {
		return 0, err
	}
	if err := validateFooter(in); err != nil {
		return 0, err
	}
	return in.ReadLong()
}

/*
Clones the incoming stream and fully checksums it against the footer.
This is an expensive full-file pass; use RetrieveChecksum() for the
cheap structural check.
*/
func ChecksumEntireFile(in IndexInput) (int64, error) {
	if in.Length() < FOOTER_LENGTH {
		return 0, NewCorruptIndexError(fmt.Sprintf(
			"misplaced codec footer (file truncated?): length=%v but footerLength==%v",
			in.Length(), FOOTER_LENGTH), in)
	}
	if err := in.Seek(0); err != nil {
		return 0, err
	}
	digest := crc32.NewIEEE()
	buf := make([]byte, 1024)
	// the stored checksum covers everything up to itself, footer magic
	// and algorithm id included
	for remaining := in.Length() - 8; remaining > 0; {
		step := int64(len(buf))
		if step > remaining {
			step = remaining
		}
		if err := in.ReadBytes(buf[:step]); err != nil {
			return 0, err
		}
		digest.Write(buf[:step])
		remaining -= step
	}
	actual := int64(digest.Sum32())

	if err := in.Seek(in.Length() - FOOTER_LENGTH); err != nil {
		return 0, err
	}
	if err := validateFooter(in); err != nil {
		return 0, err
	}
	expected, err := in.ReadLong()
	if err != nil {
		return 0, err
	}
	if actual != expected {
		return 0, NewCorruptIndexError(fmt.Sprintf(
			"checksum failed (hardware problem?): expected=%v actual=%v",
			util.ItoHex(expected), util.ItoHex(actual)), in)
	}
	return actual, nil
}

func validateFooter(in IndexInput) error {
	remaining := in.Length() - in.FilePointer()
	if remaining < FOOTER_LENGTH {
		return NewCorruptIndexError(fmt.Sprintf(
			"misplaced codec footer (file truncated?): remaining=%v, expected=%v",
			remaining, FOOTER_LENGTH), in)
	}
	if remaining > FOOTER_LENGTH {
		return NewCorruptIndexError(fmt.Sprintf(
			"misplaced codec footer (file extended?): remaining=%v, expected=%v",
			remaining, FOOTER_LENGTH), in)
	}

	magic, err := in.ReadInt()
	if err != nil {
		return err
	}
	if magic != FOOTER_MAGIC {
		return NewCorruptIndexError(fmt.Sprintf(
			"codec footer mismatch: actual footer=%v vs expected footer=%v",
			magic, int32(FOOTER_MAGIC)), in)
	}

	algorithmID, err := in.ReadInt()
	if err != nil {
		return err
	}
	if algorithmID != 0 {
		return NewCorruptIndexError(fmt.Sprintf(
			"codec footer mismatch: unknown algorithmID: %v", algorithmID), in)
	}
	return nil
}

/* Checks that the stream is positioned at the end, and returns error if it is not. */
func CheckEOF(in IndexInput) error {
	if in.FilePointer() != in.Length() {
		return NewCorruptIndexError(fmt.Sprintf(
			"did not read all bytes from file: read %v vs size %v",
			in.FilePointer(), in.Length()), in)
	}
	return nil
}

func assert(ok bool) {
	assert2(ok, "assert fail")
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
