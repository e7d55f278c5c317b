package config

import "slices"

// Item is a tool-specific configuration entry. Build carries items through
// unchanged and never interprets them.
type Item struct {
	Key   string
	Value string
}

// RawOptions holds the options of one invocation before validation.
// A nil pointer means the option was not given.
type RawOptions struct {
	ForcedOutputFormat *string
	JPEGQuality        *string

	License                    bool
	DepLicenses                bool
	PNMASCII                   bool
	DisableColorTypeAdjustment bool

	Input       *string
	InputAlias  *string
	Output      *string
	OutputAlias *string
}

// Config is the resolved configuration of one run. It is built once by Build
// and is read-only afterwards; accessors return copies of slice fields.
type Config struct {
	toolName                   string
	licenses                   []License
	forcedOutputFormat         *string
	disableColorTypeAdjustment bool
	encoding                   FormatEncodingSettings
	input                      *string
	output                     *string
	applicationSpecific        []Item
}

// Build resolves raw into a Config. The only failure is an invalid encoding
// setting; the validator's error is returned as-is.
func Build(raw RawOptions, toolName string, items []Item) (Config, error) {
	encoding, err := ResolveEncodingSettings(raw.JPEGQuality, raw.PNMASCII)
	if err != nil {
		return Config{}, err
	}

	return Config{
		toolName:                   toolName,
		licenses:                   SelectLicenses(raw.License, raw.DepLicenses),
		forcedOutputFormat:         copyString(raw.ForcedOutputFormat),
		disableColorTypeAdjustment: raw.DisableColorTypeAdjustment,
		encoding:                   encoding,
		input:                      firstSet(raw.Input, raw.InputAlias),
		output:                     firstSet(raw.Output, raw.OutputAlias),
		applicationSpecific:        slices.Clone(items),
	}, nil
}

// firstSet returns a copy of the first candidate holding a non-empty value.
// Candidates are listed from highest to lowest precedence.
func firstSet(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return copyString(c)
		}
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ToolName returns the caller-supplied tool identity.
func (c Config) ToolName() string { return c.toolName }

// Licenses returns the license-display targets in display order.
func (c Config) Licenses() []License { return slices.Clone(c.licenses) }

// ForcedOutputFormat returns the format override, if any.
func (c Config) ForcedOutputFormat() (string, bool) { return deref(c.forcedOutputFormat) }

// DisableColorTypeAdjustment reports whether automatic color type
// adjustment before encoding is turned off.
func (c Config) DisableColorTypeAdjustment() bool { return c.disableColorTypeAdjustment }

// EncodingSettings returns the per-format encoding settings.
func (c Config) EncodingSettings() FormatEncodingSettings { return c.encoding }

// Input returns the input path. When unset the image is read from standard input.
func (c Config) Input() (string, bool) { return deref(c.input) }

// Output returns the output path. When unset the image is written to standard
// output in the default format.
func (c Config) Output() (string, bool) { return deref(c.output) }

// ApplicationSpecific returns the tool-specific items in the order given to Build.
func (c Config) ApplicationSpecific() []Item { return slices.Clone(c.applicationSpecific) }

// Lookup returns the values of all items with the given key, in order.
func (c Config) Lookup(key string) []string {
	var values []string
	for _, item := range c.applicationSpecific {
		if item.Key == key {
			values = append(values, item.Value)
		}
	}
	return values
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
