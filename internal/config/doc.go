// Package config turns raw invocation options into the single Config that
// governs one stew run.
//
// # Resolution
//
// Raw options are gathered from several sources before a Config is built.
// Values are taken in the following order (highest to lowest priority):
//
//  1. CLI flags (--output-format, --jpeg-encoding-quality, ...)
//  2. Environment variables (STEW_OUTPUT_FORMAT, STEW_JPEG_QUALITY, ...)
//  3. YAML config file (.stew.yaml in the working directory, or
//     ~/.config/stew/.stew.yaml)
//  4. Defaults applied by Build
//
// Build is pure: the same RawOptions, tool name and items always produce an
// equal Config. All validation of user input happens in Build and is reported
// as an error, never a panic.
//
// # Output precedence
//
// The output path is the first set value of the ordered list
// [--output, tool-specific output alias]. The input path follows the same rule
// with [--input, tool-specific input alias]. An unset output means the image is
// written to standard output in the default format.
//
// # Environment Variables
//
//   - STEW_OUTPUT_FORMAT: forced output format
//   - STEW_JPEG_QUALITY: JPEG quality, 1 to 100
//   - STEW_PNM_ASCII: "true" or "1" to use ascii PNM encoding
//   - STEW_DISABLE_COLOR_TYPE_ADJUSTMENT: "true" or "1" to disable adjustment
//   - STEW_DEBUG: any non-empty value enables debug logging
package config
