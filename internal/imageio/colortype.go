package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/dkoosis/stew/internal/format"
)

// ErrUnsupportedColorType is returned when the output format cannot store
// the image's color type and automatic adjustment is disabled.
var ErrUnsupportedColorType = errors.New("color type not supported by output format")

// ColorType classifies the channels an image actually uses.
type ColorType int

const (
	Gray ColorType = iota
	GrayAlpha
	RGB
	RGBA
)

func (c ColorType) String() string {
	switch c {
	case Gray:
		return "gray"
	case GrayAlpha:
		return "gray+alpha"
	case RGB:
		return "rgb"
	default:
		return "rgba"
	}
}

// ColorTypeOf returns the color type of img. Images of a color model with an
// alpha channel count as opaque when every pixel is opaque.
func ColorTypeOf(img image.Image) ColorType {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return Gray
	case *image.Alpha, *image.Alpha16:
		return GrayAlpha
	case *image.YCbCr, *image.CMYK:
		return RGB
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return RGB
		}
		return RGBA
	default:
		return RGBA
	}
}

// supported lists the color types a format can store; a nil entry means all.
var supported = map[format.Format][]ColorType{
	format.JPEG: {Gray, RGB},
	format.PBM:  {Gray},
	format.PGM:  {Gray},
	format.PPM:  {RGB},
}

// AdjustColorType returns img converted to a color type f supports. When
// adjust is false an unsupported color type is an error instead.
func AdjustColorType(img image.Image, f format.Format, adjust bool) (image.Image, error) {
	allowed, restricted := supported[f]
	if !restricted {
		return img, nil
	}
	ct := ColorTypeOf(img)
	for _, a := range allowed {
		if a == ct {
			return img, nil
		}
	}
	if !adjust {
		return nil, fmt.Errorf("%w: %s cannot store %s images (automatic color type adjustment is disabled)",
			ErrUnsupportedColorType, f, ct)
	}

	if allowed[0] == Gray && (len(allowed) == 1 || ct == GrayAlpha) {
		return toGray(img), nil
	}
	return toRGB(img), nil
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// toRGB drops the alpha channel, keeping the unpremultiplied color.
func toRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = 0xff
			dst.Set(x, y, c)
		}
	}
	return dst
}
