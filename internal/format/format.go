// Package format names the image encodings stew can write and decides which
// one a run uses.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dkoosis/stew/internal/config"
)

// Format is an output encoding.
type Format int

const (
	BMP Format = iota
	GIF
	ICO
	JPEG
	PNG
	PBM
	PGM
	PPM
	PAM
	TIFF
)

// Default is used when neither a forced format nor the output extension
// determines the encoding.
const Default = BMP

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

var names = map[Format]string{
	BMP:  "bmp",
	GIF:  "gif",
	ICO:  "ico",
	JPEG: "jpeg",
	PNG:  "png",
	PBM:  "pbm",
	PGM:  "pgm",
	PPM:  "ppm",
	PAM:  "pam",
	TIFF: "tiff",
}

// aliases maps case-folded names and extensions to formats.
var aliases = map[string]Format{
	"bmp":  BMP,
	"gif":  GIF,
	"ico":  ICO,
	"jpeg": JPEG,
	"jpg":  JPEG,
	"png":  PNG,
	"pbm":  PBM,
	"pgm":  PGM,
	"ppm":  PPM,
	"pam":  PAM,
	"tiff": TIFF,
	"tif":  TIFF,
}

func (f Format) String() string {
	if n, ok := names[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsPNM reports whether f belongs to the PNM family.
func (f Format) IsPNM() bool {
	return f == PBM || f == PGM || f == PPM || f == PAM
}

// Parse looks up a format by name, ignoring case. "jpg" and "tif" are
// accepted as aliases.
func Parse(name string) (Format, error) {
	if f, ok := aliases[fold(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w %q (supported: BMP, GIF, ICO, JPEG, PNG, PBM, PGM, PPM, PAM, TIFF)", ErrUnknownFormat, name)
}

// FromExtension infers the format from the extension of path.
func FromExtension(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	f, ok := aliases[fold(ext)]
	return f, ok
}

// fold case-folds s. Casers are stateful, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Decider picks the output format for a run.
type Decider struct{}

// Decide returns the forced output format if one is set, otherwise the
// format implied by the output path's extension, otherwise Default.
// A forced format that is not recognised is an error.
func (Decider) Decide(cfg config.Config) (Format, error) {
	if forced, ok := cfg.ForcedOutputFormat(); ok {
		return Parse(forced)
	}
	if out, ok := cfg.Output(); ok {
		if f, ok := FromExtension(out); ok {
			return f, nil
		}
	}
	return Default, nil
}
