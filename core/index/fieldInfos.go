package index

import (
	"fmt"
	"sort"
)

// index/FieldInfos.java

/* Collection of FieldInfo(s) (accessible by number or by name). */
type FieldInfos struct {
	HasFreq      bool
	HasProx      bool
	HasPayloads  bool
	HasOffsets   bool
	HasVectors   bool
	HasNorms     bool
	HasDocValues bool

	byNumber map[int32]*FieldInfo
	byName   map[string]*FieldInfo
	Values   []*FieldInfo // sorted by number
}

/*
Constructs a new FieldInfos from an array of FieldInfo objects. Field
numbers and names must be unique within a segment; duplicates are an
argument error rejected before any state is built.
*/
func NewFieldInfos(infos []*FieldInfo) FieldInfos {
	self := FieldInfos{
		byNumber: make(map[int32]*FieldInfo),
		byName:   make(map[string]*FieldInfo),
	}

	numbers := make([]int32, 0, len(infos))
	for _, info := range infos {
		assert2(info.Number >= 0, "illegal field number: %v for field %v", info.Number, info.Name)
		if prev, ok := self.byNumber[info.Number]; ok {
			panic(fmt.Sprintf("duplicate field numbers: %v and %v have: %v", prev.Name, info.Name, info.Number))
		}
		self.byNumber[info.Number] = info
		numbers = append(numbers, info.Number)
		if prev, ok := self.byName[info.Name]; ok {
			panic(fmt.Sprintf("duplicate field names: %v and %v have: %v", prev.Number, info.Number, info.Name))
		}
		self.byName[info.Name] = info

		self.HasVectors = self.HasVectors || info.storeTermVector
		self.HasProx = self.HasProx || info.indexOptions >= INDEX_OPT_DOCS_AND_FREQS_AND_POSITIONS
		self.HasFreq = self.HasFreq || info.IsIndexed() && info.indexOptions != INDEX_OPT_DOCS
		self.HasOffsets = self.HasOffsets || info.indexOptions >= INDEX_OPT_DOCS_AND_FREQS_AND_POSITIONS_AND_OFFSETS
		self.HasNorms = self.HasNorms || info.HasNorms()
		self.HasDocValues = self.HasDocValues || info.docValuesType != DOC_VALUES_TYPE_NONE
		self.HasPayloads = self.HasPayloads || info.storePayloads
	}

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	self.Values = make([]*FieldInfo, len(numbers))
	for i, v := range numbers {
		self.Values[i] = self.byNumber[v]
	}

	return self
}

/* Returns the number of fields */
func (infos FieldInfos) Size() int {
	assert(len(infos.byNumber) == len(infos.byName))
	return len(infos.byNumber)
}

/* Return the FieldInfo object referenced by the field name, or nil. */
func (infos FieldInfos) FieldInfoByName(fieldName string) *FieldInfo {
	return infos.byName[fieldName]
}

/* Return the FieldInfo object referenced by the fieldNumber, or nil. */
func (infos FieldInfos) FieldInfoByNumber(fieldNumber int) *FieldInfo {
	assert2(fieldNumber >= 0, "Illegal field number: %v", fieldNumber)
	return infos.byNumber[int32(fieldNumber)]
}

func (infos FieldInfos) String() string {
	return fmt.Sprintf("FieldInfos(size=%v values=%v)", infos.Size(), infos.Values)
}

func assert(ok bool) {
	assert2(ok, "assert fail")
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
