package lucene50

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsweet/gosegment/core/codec"
	"github.com/ironsweet/gosegment/core/index"
	"github.com/ironsweet/gosegment/core/store"
	"github.com/ironsweet/gosegment/core/util"
)

func newTestSegment() *index.SegmentInfo {
	return index.NewSegmentInfo("_1", index.GenerateSegmentID())
}

func TestFieldInfosRoundTrip(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	si := newTestSegment()

	infos := index.NewFieldInfos([]*index.FieldInfo{
		index.NewFieldInfo("id", 0, false, true, false,
			index.INDEX_OPT_DOCS, index.DOC_VALUES_TYPE_NONE, -1, nil),
		index.NewFieldInfo("body", 1, false, false, true,
			index.INDEX_OPT_DOCS_AND_FREQS_AND_POSITIONS, index.DOC_VALUES_TYPE_NONE, -1, nil),
		index.NewFieldInfo("price", 2, false, false, false,
			index.INDEX_OPT_NONE, index.DOC_VALUES_TYPE_NUMERIC, 4, nil),
		index.NewFieldInfo("tags", 7, true, false, false,
			index.INDEX_OPT_DOCS_AND_FREQS_AND_POSITIONS_AND_OFFSETS,
			index.DOC_VALUES_TYPE_SORTED_SET, -1, map[string]string{"fmt": "v2", "src": "feed"}),
	})

	require.NoError(t, WriteFieldInfos(dir, si, "", infos, store.IO_CONTEXT_DEFAULT))
	read, err := ReadFieldInfos(dir, si, "", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)

	require.Equal(t, infos.Size(), read.Size())
	for _, expected := range infos.Values {
		actual := read.FieldInfoByName(expected.Name)
		require.NotNil(t, actual, "field %v missing after round trip", expected.Name)
		assert.Equal(t, expected.Number, actual.Number)
		assert.Equal(t, expected.HasVectors(), actual.HasVectors())
		assert.Equal(t, expected.OmitsNorms(), actual.OmitsNorms())
		assert.Equal(t, expected.HasPayloads(), actual.HasPayloads())
		assert.Equal(t, expected.IndexOptions(), actual.IndexOptions())
		assert.Equal(t, expected.DocValuesType(), actual.DocValuesType())
		assert.Equal(t, expected.DocValuesGen(), actual.DocValuesGen())
		if len(expected.Attributes()) > 0 {
			assert.Equal(t, expected.Attributes(), actual.Attributes())
		}
	}
	assert.True(t, read.HasOffsets)
	assert.True(t, read.HasVectors)
	assert.True(t, read.HasDocValues)
}

func TestFieldInfosTitleScenario(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	si := newTestSegment()

	title := index.NewFieldInfo("title", 3, true, false, true,
		index.INDEX_OPT_DOCS_AND_FREQS, index.DOC_VALUES_TYPE_SORTED, -1,
		map[string]string{"analyzer": "standard"})
	require.NoError(t, WriteFieldInfos(dir, si, "",
		index.NewFieldInfos([]*index.FieldInfo{title}), store.IO_CONTEXT_DEFAULT))

	read, err := ReadFieldInfos(dir, si, "", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	fi := read.FieldInfoByName("title")
	require.NotNil(t, fi)
	assert.EqualValues(t, 3, fi.Number)
	assert.True(t, fi.HasVectors())
	assert.True(t, fi.HasPayloads())
	assert.False(t, fi.OmitsNorms())
	assert.Equal(t, index.INDEX_OPT_DOCS_AND_FREQS, fi.IndexOptions())
	assert.Equal(t, index.DOC_VALUES_TYPE_SORTED, fi.DocValuesType())
	assert.EqualValues(t, -1, fi.DocValuesGen())
	assert.Equal(t, map[string]string{"analyzer": "standard"}, fi.Attributes())
}

func TestFieldInfosWithSuffix(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	si := newTestSegment()

	infos := index.NewFieldInfos([]*index.FieldInfo{
		index.NewFieldInfo("id", 0, false, false, false,
			index.INDEX_OPT_DOCS, index.DOC_VALUES_TYPE_NONE, -1, nil),
	})
	require.NoError(t, WriteFieldInfos(dir, si, "1", infos, store.IO_CONTEXT_DEFAULT))

	names, err := dir.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"_1_1.fnm"}, names)

	// reading with the wrong suffix must fail on the header
	_, err = ReadFieldInfos(dir, si, "", store.IO_CONTEXT_DEFAULT)
	assert.Error(t, err)

	read, err := ReadFieldInfos(dir, si, "1", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	assert.Equal(t, 1, read.Size())
}

/*
Flipping any single byte of the written file must surface as a header
mismatch, a decoding error, or a checksum failure, never as a silent
wrong-value read.
*/
func TestFieldInfosSingleByteCorruption(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	si := newTestSegment()

	infos := index.NewFieldInfos([]*index.FieldInfo{
		index.NewFieldInfo("title", 3, true, false, true,
			index.INDEX_OPT_DOCS_AND_FREQS, index.DOC_VALUES_TYPE_SORTED, -1,
			map[string]string{"analyzer": "standard"}),
		index.NewFieldInfo("body", 5, false, false, false,
			index.INDEX_OPT_DOCS_AND_FREQS_AND_POSITIONS, index.DOC_VALUES_TYPE_NONE, -1, nil),
	})
	require.NoError(t, WriteFieldInfos(dir, si, "", infos, store.IO_CONTEXT_DEFAULT))

	fileName := util.SegmentFileName(si.Name, "", FI_EXTENSION)
	in, err := dir.OpenInput(fileName, store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	pristine := make([]byte, in.Length())
	require.NoError(t, in.ReadBytes(pristine))
	require.NoError(t, in.Close())

	for pos := range pristine {
		corrupted := make([]byte, len(pristine))
		copy(corrupted, pristine)
		corrupted[pos] ^= 0x01

		out, err := dir.CreateOutput(fileName, store.IO_CONTEXT_DEFAULT)
		require.NoError(t, err)
		require.NoError(t, out.WriteBytes(corrupted))
		require.NoError(t, out.Close())

		_, err = ReadFieldInfos(dir, si, "", store.IO_CONTEXT_DEFAULT)
		assert.Error(t, err, "flipped byte at %v was not detected", pos)
	}
}

func TestFieldInfosRejectsOutOfRangeEnums(t *testing.T) {
	_, err := indexOptionsFromByte("test", 5)
	require.Error(t, err)
	assert.True(t, codec.IsCorrupt(err))

	_, err = docValuesTypeFromByte("test", 6)
	require.Error(t, err)
	assert.True(t, codec.IsCorrupt(err))
}
