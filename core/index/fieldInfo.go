package index

import (
	"errors"
	"fmt"
)

// index/FieldInfo.java

/*
Controls how much information is stored in the postings lists. The
options are ordered: each one includes everything the previous one
stores.
*/
type IndexOptions int

const (
	// Not indexed
	INDEX_OPT_NONE = IndexOptions(0)
	// Only documents are indexed: term frequencies and positions are
	// omitted.
	INDEX_OPT_DOCS = IndexOptions(1)
	// Only documents and term frequencies are indexed: positions are
	// omitted.
	INDEX_OPT_DOCS_AND_FREQS = IndexOptions(2)
	// Indexes documents, frequencies and positions.
	INDEX_OPT_DOCS_AND_FREQS_AND_POSITIONS = IndexOptions(3)
	// Indexes documents, frequencies, positions and offsets.
	INDEX_OPT_DOCS_AND_FREQS_AND_POSITIONS_AND_OFFSETS = IndexOptions(4)
)

/* DocValues types. Note that DocValues is strongly typed. */
type DocValuesType int

const (
	DOC_VALUES_TYPE_NONE           = DocValuesType(0)
	DOC_VALUES_TYPE_NUMERIC        = DocValuesType(1)
	DOC_VALUES_TYPE_BINARY         = DocValuesType(2)
	DOC_VALUES_TYPE_SORTED         = DocValuesType(3)
	DOC_VALUES_TYPE_SORTED_SET     = DocValuesType(4)
	DOC_VALUES_TYPE_SORTED_NUMERIC = DocValuesType(5)
)

/*
Access to the Field Info file that describes document fields and
whether or not they are indexed. Each segment has a separate Field
Info file. Objects of this class are thread-safe for multiple readers,
but only one writer can add documents at a time.
*/
type FieldInfo struct {
	// Field's name
	Name string
	// Internal field number. Field numbers are explicit, not
	// positional: the same field keeps its number across segments.
	Number int32

	docValuesType DocValuesType

	// True if any document indexed term vectors
	storeTermVector bool

	omitNorms     bool
	indexOptions  IndexOptions
	storePayloads bool

	dvGen int64

	attributes map[string]string
}

func NewFieldInfo(name string, number int32, storeTermVector, omitNorms,
	storePayloads bool, indexOptions IndexOptions, docValues DocValuesType,
	dvGen int64, attributes map[string]string) *FieldInfo {

	assert2(number >= 0, "illegal field number: %v for field %v", number, name)
	fi := &FieldInfo{
		Name:          name,
		Number:        number,
		docValuesType: docValues,
		indexOptions:  indexOptions,
		dvGen:         dvGen,
		attributes:    attributes,
	}
	if indexOptions != INDEX_OPT_NONE {
		fi.storeTermVector = storeTermVector
		fi.storePayloads = storePayloads
		fi.omitNorms = omitNorms
	} // for non-indexed fields, leave defaults
	return fi
}

/*
Verifies the field's flags are a legal combination. Returns an error
naming the field if not; codecs run this both before writing a record
and after decoding one, so an inconsistent record is never persisted
and never silently accepted.
*/
func (info *FieldInfo) CheckConsistency() error {
	if info.Number < 0 {
		return errors.New(fmt.Sprintf("field '%v' has invalid field number: %v", info.Name, info.Number))
	}
	if info.indexOptions == INDEX_OPT_NONE {
		if info.storeTermVector {
			return errors.New(fmt.Sprintf("non-indexed field '%v' cannot store term vectors", info.Name))
		}
		if info.storePayloads {
			return errors.New(fmt.Sprintf("non-indexed field '%v' cannot store payloads", info.Name))
		}
		if info.omitNorms {
			return errors.New(fmt.Sprintf("non-indexed field '%v' cannot omit norms", info.Name))
		}
	}
	if info.dvGen != -1 && info.docValuesType == DOC_VALUES_TYPE_NONE {
		return errors.New(fmt.Sprintf("field '%v' cannot have a docvalues update generation without having docvalues", info.Name))
	}
	return nil
}

/* Returns IndexOptions for the field, or INDEX_OPT_NONE if the field is not indexed */
func (info *FieldInfo) IndexOptions() IndexOptions { return info.indexOptions }

/* Returns true if this field is indexed. */
func (info *FieldInfo) IsIndexed() bool { return info.indexOptions != INDEX_OPT_NONE }

/* Returns the docValues type of this field. */
func (info *FieldInfo) DocValuesType() DocValuesType { return info.docValuesType }

/* Returns true if this field has any docValues. */
func (info *FieldInfo) HasDocValues() bool { return info.docValuesType != DOC_VALUES_TYPE_NONE }

/* Sets the docValues generation of this field. */
func (info *FieldInfo) SetDocValuesGen(dvGen int64) {
	info.dvGen = dvGen
}

/*
Returns the docValues generation of this field, or -1 if no docValues
updates exist for it.
*/
func (info *FieldInfo) DocValuesGen() int64 { return info.dvGen }

/* Returns true if norms are explicitly omitted for this field */
func (info *FieldInfo) OmitsNorms() bool { return info.omitNorms }

/* Returns true if this field actually has any norms. */
func (info *FieldInfo) HasNorms() bool { return info.IsIndexed() && !info.omitNorms }

/* Returns true if any payloads exist for this field. */
func (info *FieldInfo) HasPayloads() bool { return info.storePayloads }

/* Returns true if any term vectors exist for this field. */
func (info *FieldInfo) HasVectors() bool { return info.storeTermVector }

/* Get a codec attribute value, or "" if it does not exist. */
func (info *FieldInfo) Attribute(key string) string {
	return info.attributes[key]
}

/*
Puts a codec attribute value.

This is a key-value mapping for the field that the codec can use to
store additional metadata. If a value already exists for the field,
it will be replaced with the new value.
*/
func (info *FieldInfo) PutAttribute(key, value string) {
	if info.attributes == nil {
		info.attributes = make(map[string]string)
	}
	info.attributes[key] = value
}

/* Returns internal codec attributes map. May be nil if no mappings exist. */
func (info *FieldInfo) Attributes() map[string]string { return info.attributes }

func (info *FieldInfo) String() string {
	return fmt.Sprintf("%v-%v, docValuesType=%v, hasVectors=%v, omitNorms=%v, indexOptions=%v, hasPayloads=%v, attributes=%v",
		info.Number, info.Name, info.docValuesType, info.storeTermVector,
		info.omitNorms, info.indexOptions, info.storePayloads, info.attributes)
}
