// Package operations implements the image transforms that run between
// decoding and encoding.
package operations

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"

	"github.com/dkoosis/stew/internal/config"
)

// Operation transforms an image. Implementations return a new image and
// leave the input untouched.
type Operation interface {
	Name() string
	Apply(img image.Image) (image.Image, error)
}

// Error reports a failed operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("operation %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Applier runs operations in order.
type Applier struct{}

// Apply runs ops on img in order and stops at the first failure. On failure
// the partially transformed image is discarded.
func (Applier) Apply(img image.Image, ops []Operation, _ config.Config) (image.Image, error) {
	for _, op := range ops {
		out, err := op.Apply(img)
		if err != nil {
			return nil, &Error{Op: op.Name(), Err: err}
		}
		img = out
	}
	return img, nil
}

// draw runs a single gift filter.
func draw(img image.Image, f gift.Filter) image.Image {
	g := gift.New(f)
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// Blur applies a gaussian blur.
type Blur struct{ Sigma float32 }

func (Blur) Name() string { return "blur" }

func (o Blur) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.GaussianBlur(o.Sigma)), nil
}

// Brighten changes brightness by Percent, in [-100,100].
type Brighten struct{ Percent float32 }

func (Brighten) Name() string { return "brighten" }

func (o Brighten) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.Brightness(o.Percent)), nil
}

// Contrast changes contrast by Percent, in [-100,100].
type Contrast struct{ Percent float32 }

func (Contrast) Name() string { return "contrast" }

func (o Contrast) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.Contrast(o.Percent)), nil
}

// Crop keeps the rectangle between the top-left corner (LX, LY) and the
// bottom-right corner (RX, RY), relative to the image origin.
type Crop struct{ LX, LY, RX, RY int }

func (Crop) Name() string { return "crop" }

func (o Crop) Apply(img image.Image) (image.Image, error) {
	b := img.Bounds()
	r := image.Rect(o.LX, o.LY, o.RX, o.RY).Add(b.Min)
	if o.LX >= o.RX || o.LY >= o.RY {
		return nil, fmt.Errorf("selection (%d,%d)-(%d,%d) is empty", o.LX, o.LY, o.RX, o.RY)
	}
	if !r.In(b) {
		return nil, fmt.Errorf("selection (%d,%d)-(%d,%d) is outside the %dx%d image",
			o.LX, o.LY, o.RX, o.RY, b.Dx(), b.Dy())
	}
	return draw(img, gift.Crop(r)), nil
}

// Filter3x3 convolves the image with a 3x3 kernel given in row-major order.
type Filter3x3 struct{ Kernel [9]float32 }

func (Filter3x3) Name() string { return "filter3x3" }

func (o Filter3x3) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.Convolution(o.Kernel[:], false, false, false, 0)), nil
}

// FlipHorizontal mirrors the image left to right.
type FlipHorizontal struct{}

func (FlipHorizontal) Name() string { return "flip-horizontal" }

func (FlipHorizontal) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.FlipHorizontal()), nil
}

// FlipVertical mirrors the image top to bottom.
type FlipVertical struct{}

func (FlipVertical) Name() string { return "flip-vertical" }

func (FlipVertical) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.FlipVertical()), nil
}

// Grayscale converts the image to a single luminance channel.
type Grayscale struct{}

func (Grayscale) Name() string { return "grayscale" }

func (Grayscale) Apply(img image.Image) (image.Image, error) {
	g := gift.New(gift.Grayscale())
	dst := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst, nil
}

// HueRotate rotates the hue by Degrees.
type HueRotate struct{ Degrees float32 }

func (HueRotate) Name() string { return "hue-rotate" }

func (o HueRotate) Apply(img image.Image) (image.Image, error) {
	shift := float32(math.Mod(float64(o.Degrees), 360))
	if shift > 180 {
		shift -= 360
	} else if shift < -180 {
		shift += 360
	}
	return draw(img, gift.Hue(shift)), nil
}

// Invert inverts all color channels.
type Invert struct{}

func (Invert) Name() string { return "invert" }

func (Invert) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.Invert()), nil
}

// Resize scales the image to exactly Width x Height with a Lanczos filter.
type Resize struct{ Width, Height uint }

func (Resize) Name() string { return "resize" }

func (o Resize) Apply(img image.Image) (image.Image, error) {
	if o.Width == 0 || o.Height == 0 {
		return nil, fmt.Errorf("cannot resize to %dx%d", o.Width, o.Height)
	}
	return resize.Resize(o.Width, o.Height, img, resize.Lanczos3), nil
}

// Rotate90 rotates the image 90 degrees clockwise.
type Rotate90 struct{}

func (Rotate90) Name() string { return "rotate90" }

func (Rotate90) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.Rotate270()), nil
}

// Rotate180 rotates the image half a turn.
type Rotate180 struct{}

func (Rotate180) Name() string { return "rotate180" }

func (Rotate180) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.Rotate180()), nil
}

// Rotate270 rotates the image 270 degrees clockwise.
type Rotate270 struct{}

func (Rotate270) Name() string { return "rotate270" }

func (Rotate270) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.Rotate90()), nil
}

// Unsharpen sharpens the image with an unsharp mask.
type Unsharpen struct{ Sigma, Threshold float32 }

func (Unsharpen) Name() string { return "unsharpen" }

func (o Unsharpen) Apply(img image.Image) (image.Image, error) {
	return draw(img, gift.UnsharpMask(o.Sigma, 1, o.Threshold)), nil
}
