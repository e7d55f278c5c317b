// Package imageio reads images into memory and writes them back out in the
// format chosen for a run.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	// Registered decoders.
	_ "golang.org/x/image/webp"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/term"

	"github.com/dkoosis/stew/internal/config"
	"github.com/dkoosis/stew/internal/format"
)

// ErrNoInput is returned when no input path is given and standard input is
// an interactive terminal.
var ErrNoInput = errors.New("no input: use --input FILE or pipe an image on stdin")

// Codec decodes from a path or Stdin and encodes to a path or Stdout.
type Codec struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// Decode reads and decodes the image at path, or from Stdin if path is "".
// The input file is closed before Decode returns.
func (c *Codec) Decode(path string) (image.Image, error) {
	data, src, err := c.read(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}
	return img, nil
}

func (c *Codec) read(path string) ([]byte, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, path, nil
	}

	if isTerminal(c.Stdin) {
		return nil, "stdin", ErrNoInput
	}
	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return nil, "stdin", fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, "stdin", ErrNoInput
	}
	return data, "stdin", nil
}

// Encode writes img in format f to path, or to Stdout if path is "".
// Unless cfg disables it, the image is first converted to a color type the
// format supports. Nothing is written if encoding fails.
func (c *Codec) Encode(img image.Image, f format.Format, cfg config.Config, path string) error {
	img, err := AdjustColorType(img, f, !cfg.DisableColorTypeAdjustment())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encode(&buf, img, f, cfg.EncodingSettings()); err != nil {
		return fmt.Errorf("encoding %s: %w", f, err)
	}

	if path == "" {
		if _, err := buf.WriteTo(c.Stdout); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func encode(w io.Writer, img image.Image, f format.Format, settings config.FormatEncodingSettings) error {
	switch f {
	case format.BMP:
		return bmp.Encode(w, img)
	case format.GIF:
		return gif.Encode(w, img, nil)
	case format.ICO:
		return encodeICO(w, img)
	case format.JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: settings.JPEG.Quality()})
	case format.PNG:
		return png.Encode(w, img)
	case format.PBM, format.PGM, format.PPM, format.PAM:
		return encodePNM(w, img, f, settings.PNM)
	case format.TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %s", format.ErrUnknownFormat, f)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
