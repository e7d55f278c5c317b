// stew converts images between formats, optionally transforming them on the
// way.
//
// Usage:
//
//	stew -i photo.jpg -o photo.png
//	stew photo.jpg photo.pgm --pnm-encoding-ascii
//	cat photo.png | stew -x "resize 64 64; grayscale" -f jpeg > thumb.jpg
//	stew --license --dep-licenses
//
// The output format is taken from --output-format, else from the output
// file's extension, else BMP.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/dkoosis/stew/internal/cli"
	"github.com/dkoosis/stew/internal/config"
	"github.com/dkoosis/stew/internal/operations"
	"github.com/dkoosis/stew/internal/pipeline"
	"github.com/dkoosis/stew/internal/version"
)

const toolName = "stew"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet(toolName, stderr)
	scripts := fs.StringArrayP("apply-operations", "x", nil,
		"Apply the operations `SCRIPT`, e.g. \"blur 1.5; flip-horizontal\". May be repeated.")
	opsFiles := fs.StringArray("operations-file", nil,
		"Apply the operations listed in the YAML `FILE`. May be repeated; applied after scripts.")
	configPath := fs.String("config", "", "Read defaults from `FILE` instead of .stew.yaml.")
	showVersion := fs.BoolP("version", "V", false, "Print version information and exit.")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [OPTIONS] [INPUT_FILE [OUTPUT_FILE]]\n\nOptions:\n", toolName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String(toolName))
		return 0
	}

	if fs.NArg() > 2 {
		fmt.Fprintf(stderr, "%s: too many arguments (expected at most INPUT_FILE and OUTPUT_FILE)\n", toolName)
		return 2
	}

	logger := newLogger(stderr)

	raw := cli.RawOptions(fs)
	if fs.NArg() > 0 {
		in := fs.Arg(0)
		raw.InputAlias = &in
	}
	if fs.NArg() > 1 {
		out := fs.Arg(1)
		raw.OutputAlias = &out
	}

	fileCfg, path, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		return 1
	}
	if path != "" {
		logger.Debug("loaded config file", "path", path)
	}

	raw, sources := config.ResolveRawOptions(raw, cli.ExplicitBools(fs), os.Getenv, fileCfg)
	logger.Debug("resolved options",
		"output_format", sources.OutputFormat,
		"jpeg_quality", sources.JPEGQuality,
		"pnm_ascii", sources.PNMASCII,
		"disable_color_type_adjustment", sources.DisableColorTypeAdjustment)

	var items []config.Item
	for _, s := range *scripts {
		items = append(items, config.Item{Key: operations.ItemScript, Value: s})
	}
	for _, f := range *opsFiles {
		items = append(items, config.Item{Key: operations.ItemFile, Value: f})
	}

	cfg, err := config.Build(raw, toolName, items)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, sources.Attribute(err, path))
		return 1
	}

	p := pipeline.New(toolName, stdin, stdout, stderr, logger)

	if len(cfg.Licenses()) > 0 {
		p.RunLicenses(cfg)
		return 0
	}

	ops, err := operations.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		return 1
	}

	if err := p.Run(cfg, ops); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		return 1
	}
	return 0
}

// newLogger returns a debug logger on w when STEW_DEBUG is set, and a
// logger that stays silent otherwise.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelError + 4
	if os.Getenv(config.EnvDebug) != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
