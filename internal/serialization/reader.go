package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/splitset-ml/splitset/internal/tensor"
)

// SampleReader reads tensors from a .tns file.
type SampleReader struct {
	file       *os.File
	header     Header
	flags      uint32
	dataOffset int64
	dataSize   int64
	closed     bool
}

// NewSampleReader opens a .tns file and validates its header.
func NewSampleReader(path string) (*SampleReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &SampleReader{file: file}
	if err := r.parseHeader(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	r.dataSize = info.Size() - r.dataOffset

	if err := r.validate(); err != nil {
		_ = file.Close()
		return nil, err
	}

	return r, nil
}

func (r *SampleReader) parseHeader() error {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r.file, magic); err != nil {
		return fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return ErrInvalidMagic
	}

	var version uint32
	if err := binary.Read(r.file, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	if version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	if err := binary.Read(r.file, binary.LittleEndian, &r.flags); err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}

	var headerSize uint64
	if err := binary.Read(r.file, binary.LittleEndian, &headerSize); err != nil {
		return fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	pos := int64(4+4+4+8) + int64(headerSize)
	r.dataOffset = pos + (HeaderAlignment-pos%HeaderAlignment)%HeaderAlignment
	return nil
}

// validate checks the header's tensor table against the payload section.
func (r *SampleReader) validate() error {
	if len(r.header.Tensors) > MaxTensors {
		return ErrTooManyTensors
	}

	for _, meta := range r.header.Tensors {
		if meta.Offset < 0 || meta.Size < 0 {
			return fmt.Errorf("%w: tensor %q", ErrNegativeOffset, meta.Name)
		}
		if meta.Offset+meta.Size > r.dataSize {
			return fmt.Errorf("%w: tensor %q", ErrOutOfBounds, meta.Name)
		}

		dtype, ok := stringToDtype(meta.DType)
		if !ok {
			return fmt.Errorf("%w: tensor %q has dtype %q", ErrUnknownDType, meta.Name, meta.DType)
		}
		if want := int64(tensor.Shape(meta.Shape).NumElements() * dtype.Size()); want != meta.Size {
			return fmt.Errorf("%w: tensor %q: header says %d bytes, shape needs %d",
				ErrSizeMismatch, meta.Name, meta.Size, want)
		}
	}
	return nil
}

// TensorNames lists the tensors stored in the file.
func (r *SampleReader) TensorNames() []string {
	names := make([]string, 0, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		names = append(names, meta.Name)
	}
	return names
}

// Metadata returns the header's metadata map.
func (r *SampleReader) Metadata() map[string]string {
	return r.header.Metadata
}

// Meta returns the header entry for a named tensor.
func (r *SampleReader) Meta(name string) (TensorMeta, error) {
	for _, meta := range r.header.Tensors {
		if meta.Name == name {
			return meta, nil
		}
	}
	return TensorMeta{}, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
}

// ReadTensor loads a named tensor from the payload section.
func (r *SampleReader) ReadTensor(name string) (*tensor.RawTensor, error) {
	meta, err := r.Meta(name)
	if err != nil {
		return nil, err
	}

	dtype, _ := stringToDtype(meta.DType) // validated on open

	raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate tensor %q: %w", name, err)
	}

	if _, err := r.file.ReadAt(raw.Data(), r.dataOffset+meta.Offset); err != nil {
		return nil, fmt.Errorf("failed to read tensor %q: %w", name, err)
	}
	return raw, nil
}

// Close closes the underlying file.
func (r *SampleReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// ReadSample loads the single tensor written by WriteSample.
func ReadSample(path string) (*tensor.RawTensor, map[string]string, error) {
	r, err := NewSampleReader(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	raw, err := r.ReadTensor("sample")
	if err != nil {
		return nil, nil, err
	}
	return raw, r.Metadata(), nil
}
