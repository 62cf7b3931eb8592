package dataset

import (
	"fmt"
	"image"
	"os"

	// Register the decoders the transform accepts.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/splitset-ml/splitset/internal/tensor"
)

// LoadImageTensor decodes an image file, resizes it to size x size and
// converts it to a channel-first [3, size, size] float32 tensor with values
// normalized to [0, 1].
func LoadImageTensor(path string, size int) (*tensor.RawTensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(resized, resized.Rect, src, src.Bounds(), draw.Over, nil)

	raw, err := tensor.NewRaw(tensor.Shape{3, size, size}, tensor.Float32, tensor.CPU)
	if err != nil {
		return nil, err
	}

	data := raw.AsFloat32()
	plane := size * size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			offset := resized.PixOffset(x, y)
			idx := y*size + x
			data[idx] = float32(resized.Pix[offset]) / 255.0
			data[plane+idx] = float32(resized.Pix[offset+1]) / 255.0
			data[2*plane+idx] = float32(resized.Pix[offset+2]) / 255.0
		}
	}

	return raw, nil
}
