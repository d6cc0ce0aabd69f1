package lucene50

import (
	"fmt"

	"github.com/ironsweet/gosegment/core/codec"
	"github.com/ironsweet/gosegment/core/index"
	"github.com/ironsweet/gosegment/core/store"
	"github.com/ironsweet/gosegment/core/util"
)

// lucene50/Lucene50FieldInfosFormat.java

/*
Lucene 5.0 Field Infos format.

Field names are stored in the field info file, with suffix .fnm.

FieldInfos (.fnm) --> IndexHeader, FieldsCount, <FieldName, FieldNumber,
                      FieldBits, IndexOptions, DocValuesBits,
                      DocValuesGen, Attributes>^FieldsCount, Footer

Data types:
- IndexHeader --> CodecHeader with segment id and suffix
- FieldsCount, FieldNumber --> VInt
- FieldName --> string
- FieldBits, IndexOptions, DocValuesBits --> byte
- DocValuesGen --> Int64
- Attributes --> map[string]string
- Footer --> CodecFooter

Field Descriptions:
- FieldsCount: the number of fields in this file.
- FieldName: name of the field as a UTF-8 string.
- FieldNumber: the field's number. Fields are not numbered implicitly
  by their order in the file, instead explicitly.
- FieldBits: a byte containing field options.
  - The low order bit (0x1) is one for fields that have term vectors
    stored, and zero for fields without term vectors.
  - If the second lowest order-bit is set (0x2), norms are omitted for
    the indexed field.
  - If the third lowest-order bit is set (0x4), payloads are stored
    for the indexed field.
- IndexOptions: a byte containing index options.
  - 0: not indexed
  - 1: indexed as DOCS
  - 2: indexed as DOCS_AND_FREQS
  - 3: indexed as DOCS_AND_FREQS_AND_POSITIONS
  - 4: indexed as DOCS_AND_FREQS_AND_POSITIONS_AND_OFFSETS
- DocValuesBits: a byte recording the per-document value type:
  - 0: no DocValues for this field.
  - 1: NumericDocValues.
  - 2: BinaryDocValues.
  - 3: SortedDocValues.
  - 4: SortedSetDocValues.
  - 5: SortedNumericDocValues.
- DocValuesGen: the generation count of the field's DocValues. If this
  is -1, there are no DocValues updates to that field.
- Attributes: a key-value map of codec-private attributes.
*/
const (
	// Extension of field infos
	FI_EXTENSION = "fnm"

	// Codec header
	FI_CODEC_NAME     = "Lucene50FieldInfos"
	FI_FORMAT_START   = 0
	FI_FORMAT_CURRENT = FI_FORMAT_START

	// Field flags
	FI_STORE_TERMVECTOR = 0x1
	FI_OMIT_NORMS       = 0x2
	FI_STORE_PAYLOADS   = 0x4
)

/*
ReadFieldInfos reads the .fnm file of the given segment. Corruption is
detected as early as possible: a negative field number or an invalid
flag combination fails naming the offending field, and the trailing
checksum is always consulted, with any decoding error taking
precedence over a checksum mismatch.
*/
func ReadFieldInfos(dir store.Directory, si *index.SegmentInfo,
	suffix string, ctx store.IOContext) (fis index.FieldInfos, err error) {

	fileName := util.SegmentFileName(si.Name, suffix, FI_EXTENSION)
	input, err := dir.OpenChecksumInput(fileName, ctx)
	if err != nil {
		return fis, err
	}
	defer util.CloseWhileSuppressingError(input)

	var infos []*index.FieldInfo
	_, priorErr := codec.CheckIndexHeader(input,
		FI_CODEC_NAME, FI_FORMAT_START, FI_FORMAT_CURRENT, si.ID(), suffix)
	if priorErr == nil {
		infos, priorErr = readFieldInfoRecords(input)
	}
	if err = codec.CheckFooterWithPrior(input, priorErr); err != nil {
		return fis, err
	}
	return index.NewFieldInfos(infos), nil
}

func readFieldInfoRecords(input store.ChecksumIndexInput) ([]*index.FieldInfo, error) {
	size, err := input.ReadVInt()
	if err != nil {
		return nil, err
	}

	infos := make([]*index.FieldInfo, size)
	for i := range infos {
		name, err := input.ReadString()
		if err != nil {
			return nil, err
		}
		fieldNumber, err := input.ReadVInt()
		if err != nil {
			return nil, err
		}
		if fieldNumber < 0 {
			return nil, codec.NewCorruptIndexError(fmt.Sprintf(
				"invalid field number for field: %v, fieldNumber=%v", name, fieldNumber), input)
		}
		bits, err := input.ReadByte()
		if err != nil {
			return nil, err
		}
		storeTermVector := (bits & FI_STORE_TERMVECTOR) != 0
		omitNorms := (bits & FI_OMIT_NORMS) != 0
		storePayloads := (bits & FI_STORE_PAYLOADS) != 0

		b, err := input.ReadByte()
		if err != nil {
			return nil, err
		}
		indexOptions, err := indexOptionsFromByte(input, b)
		if err != nil {
			return nil, err
		}

		b, err = input.ReadByte()
		if err != nil {
			return nil, err
		}
		docValuesType, err := docValuesTypeFromByte(input, b)
		if err != nil {
			return nil, err
		}
		dvGen, err := input.ReadLong()
		if err != nil {
			return nil, err
		}
		attributes, err := input.ReadStringStringMap()
		if err != nil {
			return nil, err
		}

		infos[i] = index.NewFieldInfo(name, fieldNumber, storeTermVector,
			omitNorms, storePayloads, indexOptions, docValuesType, dvGen, attributes)
		if err = infos[i].CheckConsistency(); err != nil {
			return nil, codec.NewCorruptIndexErrorWithCause(fmt.Sprintf(
				"invalid fieldinfo for field: %v, fieldNumber=%v", name, fieldNumber), input, err)
		}
	}
	return infos, nil
}

/*
WriteFieldInfos writes the .fnm file of the given segment. Each field
is consistency-checked before serializing; an inconsistent record is
never persisted.
*/
func WriteFieldInfos(dir store.Directory, si *index.SegmentInfo,
	suffix string, infos index.FieldInfos, ctx store.IOContext) (err error) {

	fileName := util.SegmentFileName(si.Name, suffix, FI_EXTENSION)
	output, err := dir.CreateOutput(fileName, ctx)
	if err != nil {
		return err
	}

	var success = false
	defer func() {
		if success {
			err = util.CloseWhileHandlingError(err, output)
		} else {
			util.CloseWhileSuppressingError(output)
		}
	}()

	if err = codec.WriteIndexHeader(output, FI_CODEC_NAME, FI_FORMAT_CURRENT, si.ID(), suffix); err != nil {
		return err
	}
	if err = output.WriteVInt(int32(infos.Size())); err != nil {
		return err
	}
	for _, fi := range infos.Values {
		if err = fi.CheckConsistency(); err != nil {
			return err
		}

		if err = output.WriteString(fi.Name); err != nil {
			return err
		}
		if err = output.WriteVInt(fi.Number); err != nil {
			return err
		}

		bits := byte(0x0)
		if fi.HasVectors() {
			bits |= FI_STORE_TERMVECTOR
		}
		if fi.OmitsNorms() {
			bits |= FI_OMIT_NORMS
		}
		if fi.HasPayloads() {
			bits |= FI_STORE_PAYLOADS
		}
		if err = output.WriteByte(bits); err != nil {
			return err
		}

		if err = output.WriteByte(indexOptionsByte(fi.IndexOptions())); err != nil {
			return err
		}
		if err = output.WriteByte(docValuesByte(fi.DocValuesType())); err != nil {
			return err
		}
		if err = output.WriteLong(fi.DocValuesGen()); err != nil {
			return err
		}
		if err = output.WriteStringStringMap(fi.Attributes()); err != nil {
			return err
		}
	}
	if err = codec.WriteFooter(output); err != nil {
		return err
	}
	success = true
	return nil
}

func indexOptionsByte(opts index.IndexOptions) byte {
	n := byte(opts)
	assert2(n <= 4, "unhandled IndexOptions: %v", opts)
	return n
}

func indexOptionsFromByte(resource interface{}, b byte) (index.IndexOptions, error) {
	if b > 4 {
		return 0, codec.NewCorruptIndexError(fmt.Sprintf("invalid IndexOptions byte: %v", b), resource)
	}
	return index.IndexOptions(b), nil
}

func docValuesByte(typ index.DocValuesType) byte {
	n := byte(typ)
	assert2(n <= 5, "unhandled DocValuesType: %v", typ)
	return n
}

func docValuesTypeFromByte(resource interface{}, b byte) (index.DocValuesType, error) {
	if b > 5 {
		return 0, codec.NewCorruptIndexError(fmt.Sprintf("invalid docvalues byte: %v", b), resource)
	}
	return index.DocValuesType(b), nil
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
