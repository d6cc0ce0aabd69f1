package codec_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsweet/gosegment/core/codec"
	"github.com/ironsweet/gosegment/core/store"
)

func writeFile(t *testing.T, dir store.Directory, name string, data []byte) {
	out, err := dir.CreateOutput(name, store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	require.NoError(t, out.WriteBytes(data))
	require.NoError(t, out.Close())
}

func fileBytes(t *testing.T, dir store.Directory, name string) []byte {
	in, err := dir.OpenInput(name, store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in.Close()
	data := make([]byte, in.Length())
	require.NoError(t, in.ReadBytes(data))
	return data
}

func writeSampleFile(t *testing.T, dir store.Directory, name string, payload []byte) {
	out, err := dir.CreateOutput(name, store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	require.NoError(t, codec.WriteHeader(out, "SampleCodec", 1))
	require.NoError(t, out.WriteBytes(payload))
	require.NoError(t, codec.WriteFooter(out))
	require.NoError(t, out.Close())
}

func TestHeaderFooterRoundTrip(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	payload := []byte("some payload bytes")
	writeSampleFile(t, dir, "sample.bin", payload)

	in, err := dir.OpenChecksumInput("sample.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in.Close()

	version, err := codec.CheckHeader(in, "SampleCodec", 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)

	got := make([]byte, len(payload))
	require.NoError(t, in.ReadBytes(got))
	assert.Equal(t, payload, got)

	_, err = codec.CheckFooter(in)
	assert.NoError(t, err)
}

func TestCheckHeaderCodecMismatch(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	writeSampleFile(t, dir, "sample.bin", nil)

	in, err := dir.OpenChecksumInput("sample.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in.Close()

	_, err = codec.CheckHeader(in, "OtherCodec", 0, 2)
	require.Error(t, err)
	assert.True(t, codec.IsCorrupt(err))
	assert.Contains(t, err.Error(), "codec mismatch")
}

func TestCheckHeaderVersionOutOfRange(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	writeSampleFile(t, dir, "sample.bin", nil)

	for _, tc := range []struct {
		name     string
		min, max int32
	}{
		{"too new", 2, 3},
		{"too old", 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in, err := dir.OpenChecksumInput("sample.bin", store.IO_CONTEXT_DEFAULT)
			require.NoError(t, err)
			defer in.Close()
			_, err = codec.CheckHeader(in, "SampleCodec", tc.min, tc.max)
			assert.Error(t, err)
		})
	}
}

func TestIndexHeaderRoundTrip(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	id := make([]byte, codec.ID_LENGTH)
	for i := range id {
		id[i] = byte(i)
	}

	out, err := dir.CreateOutput("seg.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	require.NoError(t, codec.WriteIndexHeader(out, "SampleCodec", 0, id, "sfx"))
	require.NoError(t, codec.WriteFooter(out))
	require.NoError(t, out.Close())

	in, err := dir.OpenChecksumInput("seg.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in.Close()
	_, err = codec.CheckIndexHeader(in, "SampleCodec", 0, 0, id, "sfx")
	require.NoError(t, err)
	_, err = codec.CheckFooter(in)
	assert.NoError(t, err)

	// the wrong segment id must be rejected
	in2, err := dir.OpenChecksumInput("seg.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in2.Close()
	otherID := make([]byte, codec.ID_LENGTH)
	_, err = codec.CheckIndexHeader(in2, "SampleCodec", 0, 0, otherID, "sfx")
	require.Error(t, err)
	assert.True(t, codec.IsCorrupt(err))
}

func TestFooterDetectsFlippedPayloadByte(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	writeSampleFile(t, dir, "sample.bin", []byte("the payload"))

	data := fileBytes(t, dir, "sample.bin")
	data[codec.HeaderLength("SampleCodec")+3] ^= 0x01
	writeFile(t, dir, "sample.bin", data)

	in, err := dir.OpenChecksumInput("sample.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in.Close()
	_, err = codec.CheckHeader(in, "SampleCodec", 0, 2)
	require.NoError(t, err)
	require.NoError(t, in.SkipBytes(int64(len("the payload"))))
	_, err = codec.CheckFooter(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum failed")
}

func TestFooterDetectsTruncation(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	writeSampleFile(t, dir, "sample.bin", []byte("the payload"))

	data := fileBytes(t, dir, "sample.bin")
	writeFile(t, dir, "sample.bin", data[:len(data)-1])

	in, err := dir.OpenInput("sample.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in.Close()
	_, err = codec.RetrieveChecksum(in)
	require.Error(t, err)
	assert.True(t, codec.IsCorrupt(err))
}

func TestCheckFooterPreservesPriorError(t *testing.T) {
	dir := store.NewRAMDirectory()
	defer dir.Close()
	writeSampleFile(t, dir, "sample.bin", []byte("xy"))

	priorErr := errors.New("body decode failed")

	in, err := dir.OpenChecksumInput("sample.bin", store.IO_CONTEXT_DEFAULT)
	require.NoError(t, err)
	defer in.Close()
	_, err = codec.CheckHeader(in, "SampleCodec", 0, 2)
	require.NoError(t, err)
	require.NoError(t, in.SkipBytes(2))

	err = codec.CheckFooterWithPrior(in, priorErr)
	require.Error(t, err)
	// the prior error is the cause, even though the checksum itself passed
	assert.Equal(t, priorErr, errors.Cause(err))
	assert.Contains(t, err.Error(), "body decode failed")
}
