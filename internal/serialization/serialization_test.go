package serialization

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitset-ml/splitset/internal/tensor"
)

func newFloat32Raw(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tns")

	raw := newFloat32Raw(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, tensor.Shape{2, 3})
	meta := map[string]string{"source": "cat.1.jpg"}

	require.NoError(t, WriteSample(path, raw, meta))

	got, gotMeta, err := ReadSample(path)
	require.NoError(t, err)

	assert.True(t, got.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, got.DType())
	assert.Equal(t, raw.AsFloat32(), got.AsFloat32())
	assert.Equal(t, "cat.1.jpg", gotMeta["source"])
}

func TestWriteMultipleTensors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.tns")

	a := newFloat32Raw(t, []float32{1, 2}, tensor.Shape{2})
	b, err := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	require.NoError(t, err)
	copy(b.AsInt64(), []int64{7, 8, 9})

	w, err := NewSampleWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteTensors(map[string]*tensor.RawTensor{"a": a, "b": b}, nil))
	require.NoError(t, w.Close())

	r, err := NewSampleReader(path)
	require.NoError(t, err)
	defer r.Close()

	assert.ElementsMatch(t, []string{"a", "b"}, r.TensorNames())

	gotA, err := r.ReadTensor("a")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, gotA.AsFloat32())

	gotB, err := r.ReadTensor("b")
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8, 9}, gotB.AsInt64())
}

func TestReadMissingTensor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tns")
	raw := newFloat32Raw(t, []float32{1}, tensor.Shape{1})
	require.NoError(t, WriteSample(path, raw, nil))

	r, err := NewSampleReader(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadTensor("nope")
	assert.ErrorIs(t, err, ErrTensorNotFound)
}

func TestPayloadAlignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tns")
	raw := newFloat32Raw(t, []float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, WriteSample(path, raw, map[string]string{"k": "v"}))

	// header size field sits after magic+version+flags
	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, MagicBytes, string(blob[:4]))

	headerSize := int64(binary.LittleEndian.Uint64(blob[12:20]))
	dataOffset := 20 + headerSize
	dataOffset += (HeaderAlignment - dataOffset%HeaderAlignment) % HeaderAlignment
	assert.Zero(t, dataOffset%HeaderAlignment)
	assert.Equal(t, dataOffset+int64(raw.ByteSize()), int64(len(blob)))
}

func TestRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tns")
	require.NoError(t, os.WriteFile(path, []byte("NOPE00000000000000000000"), 0o644))

	_, err := NewSampleReader(path)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestRejectsUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tns")
	raw := newFloat32Raw(t, []float32{1}, tensor.Shape{1})
	require.NoError(t, WriteSample(path, raw, nil))

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(blob[4:8], 99)
	require.NoError(t, os.WriteFile(path, blob, 0o644))

	_, err = NewSampleReader(path)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestRejectsTruncatedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tns")
	raw := newFloat32Raw(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	require.NoError(t, WriteSample(path, raw, nil))

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, blob[:len(blob)-8], 0o644))

	_, err = NewSampleReader(path)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWriterClosedError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tns")
	w, err := NewSampleWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = w.WriteTensors(nil, nil)
	assert.ErrorIs(t, err, ErrWriterClosed)
}

func TestOverwriteExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tns")

	first := newFloat32Raw(t, []float32{1, 1, 1, 1}, tensor.Shape{4})
	require.NoError(t, WriteSample(path, first, nil))

	second := newFloat32Raw(t, []float32{2, 2}, tensor.Shape{2})
	require.NoError(t, WriteSample(path, second, nil))

	got, _, err := ReadSample(path)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 2}, got.AsFloat32())
}
