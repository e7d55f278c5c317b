package config

import (
	"strconv"
)

// JPEG quality bounds and default.
const (
	MinJPEGQuality     = 1
	MaxJPEGQuality     = 100
	DefaultJPEGQuality = 80
)

// JPEGSettings holds JPEG encoder settings. The zero value is not valid;
// use NewJPEGSettings.
type JPEGSettings struct {
	quality int
}

// NewJPEGSettings validates the raw --jpeg-encoding-quality value.
// A nil quality selects DefaultJPEGQuality.
func NewJPEGSettings(quality *string) (JPEGSettings, error) {
	if quality == nil {
		return JPEGSettings{quality: DefaultJPEGQuality}, nil
	}

	q, err := strconv.Atoi(*quality)
	if err != nil || q < MinJPEGQuality || q > MaxJPEGQuality {
		return JPEGSettings{}, &ValidationError{
			Flag:   "jpeg-encoding-quality",
			Value:  *quality,
			Reason: "must be an integer between 1 and 100 (inclusive)",
		}
	}
	return JPEGSettings{quality: q}, nil
}

// Quality returns the JPEG quality, always within [1,100].
func (s JPEGSettings) Quality() int { return s.quality }

// PNMSettings holds settings for the PNM family. ASCII applies to PBM, PGM
// and PPM; PAM is always written in binary.
type PNMSettings struct {
	ASCII bool
}

// NewPNMSettings returns the settings for the --pnm-encoding-ascii flag.
func NewPNMSettings(ascii bool) PNMSettings {
	return PNMSettings{ASCII: ascii}
}

// FormatEncodingSettings aggregates the settings of every format family.
// Only the family matching the output format is consulted on export.
type FormatEncodingSettings struct {
	JPEG JPEGSettings
	PNM  PNMSettings
}

// ResolveEncodingSettings validates and combines the per-format settings.
func ResolveEncodingSettings(jpegQuality *string, pnmASCII bool) (FormatEncodingSettings, error) {
	jpeg, err := NewJPEGSettings(jpegQuality)
	if err != nil {
		return FormatEncodingSettings{}, err
	}
	return FormatEncodingSettings{
		JPEG: jpeg,
		PNM:  NewPNMSettings(pnmASCII),
	}, nil
}
