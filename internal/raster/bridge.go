package raster

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage converts a decoded image into a Buffer. Grayscale images map
// to single-channel uint8/uint16 buffers; everything else becomes a
// three-channel uint8 buffer (alpha is dropped, matching the processing
// contract which only covers intensity channels).
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	if h < 1 || w < 1 {
		return nil, fmt.Errorf("empty image bounds %v", bounds)
	}

	switch src := img.(type) {
	case *image.Gray:
		buf, err := New(Uint8, h, w, 1)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				buf.setSample(y*w+x, float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
		return buf, nil
	case *image.Gray16:
		buf, err := New(Uint16, h, w, 1)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				buf.setSample(y*w+x, float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
		return buf, nil
	default:
		buf, err := New(Uint8, h, w, 3)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				i := (y*w + x) * 3
				buf.setSample(i, float64(r>>8))
				buf.setSample(i+1, float64(g>>8))
				buf.setSample(i+2, float64(b>>8))
			}
		}
		return buf, nil
	}
}

// ToImage converts a Buffer back into an image for encoding. Float kinds
// are scaled from [0,1] onto the 8-bit range.
func ToImage(buf *Buffer) (image.Image, error) {
	if buf == nil {
		return nil, fmt.Errorf("nil buffer")
	}
	h, w := buf.Height(), buf.Width()

	switch {
	case buf.Channels() == 1 && buf.Kind() == Uint16:
		img := image.NewGray16(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray16(x, y, color.Gray16{Y: uint16(buf.At(y, x, 0))})
			}
		}
		return img, nil
	case buf.Channels() == 1:
		img := image.NewGray(image.Rect(0, 0, w, h))
		scale := 255 / buf.Kind().Max()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(buf.At(y, x, 0)*scale + 0.5)})
			}
		}
		return img, nil
	case buf.Channels() == 3 || buf.Channels() == 4:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		scale := 255 / buf.Kind().Max()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				a := uint8(255)
				if buf.Channels() == 4 {
					a = uint8(buf.At(y, x, 3)*scale + 0.5)
				}
				img.SetNRGBA(x, y, color.NRGBA{
					R: uint8(buf.At(y, x, 0)*scale + 0.5),
					G: uint8(buf.At(y, x, 1)*scale + 0.5),
					B: uint8(buf.At(y, x, 2)*scale + 0.5),
					A: a,
				})
			}
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported channel count for image conversion: %d", buf.Channels())
	}
}
