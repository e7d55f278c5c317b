// Package cli declares the command-line flags shared by stew tools and
// extracts the raw options the config package resolves.
package cli

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/dkoosis/stew/internal/config"
)

// Flag names of the shared skeleton.
const (
	FlagOutputFormat               = "output-format"
	FlagLicense                    = "license"
	FlagDepLicenses                = "dep-licenses"
	FlagJPEGQuality                = "jpeg-encoding-quality"
	FlagPNMASCII                   = "pnm-encoding-ascii"
	FlagDisableColorTypeAdjustment = "disable-automatic-color-type-adjustment"
	FlagInput                      = "input"
	FlagOutput                     = "output"
)

// NewFlagSet returns a flag set for the tool called name with the shared
// flags registered. Parse errors are returned, not fatal; usage and errors
// go to output.
func NewFlagSet(name string, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.StringP(FlagOutputFormat, "f", "",
		"Force the output image format to `FORMAT`, regardless of the extension of the output path.\n"+
			"Supported: BMP, GIF, ICO, JPEG, PNG, PBM, PGM, PPM, PAM and TIFF.")
	fs.Bool(FlagLicense, false, "Display the license of this software.")
	fs.Bool(FlagDepLicenses, false, "Display the licenses of the dependencies this software relies on.")
	fs.String(FlagJPEGQuality, "",
		"Set the JPEG quality to `QUALITY`, a whole number from 1 up to and including 100.\n"+
			"Only used when the output format is JPEG.")
	fs.Bool(FlagPNMASCII, false,
		"Use ascii encoding for the PNM output formats PBM, PGM and PPM. Does not apply to PAM.")
	fs.Bool(FlagDisableColorTypeAdjustment, false,
		"Do not convert the image to a color type the output format supports; fail instead.")
	fs.StringP(FlagInput, "i", "",
		"Input image path `FILE_INPUT`. When given, stdin is ignored.")
	fs.StringP(FlagOutput, "o", "",
		"Output image path `FILE_OUTPUT`. When given, nothing is written to stdout.")
	return fs
}

// RawOptions reads the shared flags from a parsed flag set. Only flags the
// user set explicitly are reported; value flags that were not set stay nil.
func RawOptions(fs *pflag.FlagSet) config.RawOptions {
	return config.RawOptions{
		ForcedOutputFormat:         stringIfChanged(fs, FlagOutputFormat),
		JPEGQuality:                stringIfChanged(fs, FlagJPEGQuality),
		License:                    boolIfChanged(fs, FlagLicense),
		DepLicenses:                boolIfChanged(fs, FlagDepLicenses),
		PNMASCII:                   boolIfChanged(fs, FlagPNMASCII),
		DisableColorTypeAdjustment: boolIfChanged(fs, FlagDisableColorTypeAdjustment),
		Input:                      stringIfChanged(fs, FlagInput),
		Output:                     stringIfChanged(fs, FlagOutput),
	}
}

// ExplicitBools reports the layered boolean flags the user set, including an
// explicit --flag=false.
func ExplicitBools(fs *pflag.FlagSet) config.ExplicitBools {
	return config.ExplicitBools{
		PNMASCII:                   boolPtrIfChanged(fs, FlagPNMASCII),
		DisableColorTypeAdjustment: boolPtrIfChanged(fs, FlagDisableColorTypeAdjustment),
	}
}

func boolPtrIfChanged(fs *pflag.FlagSet, name string) *bool {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

func stringIfChanged(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func boolIfChanged(fs *pflag.FlagSet, name string) bool {
	if !fs.Changed(name) {
		return false
	}
	v, err := fs.GetBool(name)
	return err == nil && v
}
