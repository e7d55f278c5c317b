package config

import (
	"strconv"
)

// Sources of a resolved option, from highest to lowest priority.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// Environment variables consulted by ResolveRawOptions.
const (
	EnvOutputFormat               = "STEW_OUTPUT_FORMAT"
	EnvJPEGQuality                = "STEW_JPEG_QUALITY"
	EnvPNMASCII                   = "STEW_PNM_ASCII"
	EnvDisableColorTypeAdjustment = "STEW_DISABLE_COLOR_TYPE_ADJUSTMENT"
	EnvDebug                      = "STEW_DEBUG"
)

// Env looks up an environment variable; os.Getenv satisfies it.
type Env func(key string) string

// Sources records where each layered option came from (for debugging).
type Sources struct {
	OutputFormat               string
	JPEGQuality                string
	PNMASCII                   string
	DisableColorTypeAdjustment string
}

// ExplicitBools holds boolean flags as given on the command line; nil means
// the flag was not given, so an explicit false still outranks env and file.
type ExplicitBools struct {
	PNMASCII                   *bool
	DisableColorTypeAdjustment *bool
}

// ResolveRawOptions layers environment and file values beneath the options
// given on the command line. cli must contain only flags the user set
// explicitly. Boolean flags in explicit win over env and file even when
// false; without an entry a true boolean in cli counts as set. file may be nil.
//
// Licenses, input and output are taken from cli only.
func ResolveRawOptions(cli RawOptions, explicit ExplicitBools, env Env, file *FileConfig) (RawOptions, Sources) {
	if env == nil {
		env = func(string) string { return "" }
	}
	if file == nil {
		file = &FileConfig{}
	}

	resolved := cli
	var src Sources

	resolved.ForcedOutputFormat, src.OutputFormat = resolveString(
		cli.ForcedOutputFormat, env(EnvOutputFormat), file.OutputFormat)

	var fileQuality *string
	if file.JPEGQuality != nil {
		q := strconv.Itoa(*file.JPEGQuality)
		fileQuality = &q
	}
	resolved.JPEGQuality, src.JPEGQuality = resolveString(
		cli.JPEGQuality, env(EnvJPEGQuality), fileQuality)

	resolved.PNMASCII, src.PNMASCII = resolveBool(
		cli.PNMASCII, explicit.PNMASCII, env(EnvPNMASCII), file.PNMASCII)

	resolved.DisableColorTypeAdjustment, src.DisableColorTypeAdjustment = resolveBool(
		cli.DisableColorTypeAdjustment, explicit.DisableColorTypeAdjustment, env(EnvDisableColorTypeAdjustment), file.DisableColorTypeAdjustment)

	return resolved, src
}

// resolveString applies CLI > env > file for an optional value.
func resolveString(cli *string, env string, file *string) (*string, string) {
	if cli != nil {
		return cli, SourceCLI
	}
	if env != "" {
		return &env, SourceEnv
	}
	if file != nil && *file != "" {
		v := *file
		return &v, SourceFile
	}
	return nil, SourceDefault
}

// resolveBool applies CLI > env > file for a presence flag. An unparseable
// env value is ignored.
func resolveBool(cli bool, explicit *bool, env string, file *bool) (bool, string) {
	if explicit != nil {
		return *explicit, SourceCLI
	}
	if cli {
		return true, SourceCLI
	}
	if env != "" {
		if b, err := strconv.ParseBool(env); err == nil {
			return b, SourceEnv
		}
	}
	if file != nil {
		return *file, SourceFile
	}
	return false, SourceDefault
}
