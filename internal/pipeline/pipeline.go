// Package pipeline sequences a stew run: import, transform, decide the
// output format, export. It also drives the license-display run, which does
// no image I/O.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/dkoosis/stew/internal/config"
	"github.com/dkoosis/stew/internal/format"
	"github.com/dkoosis/stew/internal/imageio"
	"github.com/dkoosis/stew/internal/license"
	"github.com/dkoosis/stew/internal/operations"
)

// DefaultFormatAdvisory is written before decoding when no output path is set.
const DefaultFormatAdvisory = "The default output format is BMP. Use --output-format <FORMAT> to specify a different output format."

// Decoder reads an image from path, or from standard input when path is "".
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// Transformer applies operations in order.
type Transformer interface {
	Apply(img image.Image, ops []operations.Operation, cfg config.Config) (image.Image, error)
}

// FormatDecider picks the output format.
type FormatDecider interface {
	Decide(cfg config.Config) (format.Format, error)
}

// Encoder writes img to path, or to standard output when path is "".
type Encoder interface {
	Encode(img image.Image, f format.Format, cfg config.Config, path string) error
}

// LicenseRenderer displays one license text.
type LicenseRenderer interface {
	Render(l config.License)
}

// Pipeline holds the collaborators of a run.
type Pipeline struct {
	Decoder     Decoder
	Transformer Transformer
	Decider     FormatDecider
	Encoder     Encoder
	Licenses    LicenseRenderer

	// Diagnostics receives the default-format advisory.
	Diagnostics io.Writer
	Logger      *slog.Logger
}

// New returns a Pipeline wired to the standard streams and the built-in
// codecs, operations and license texts.
func New(toolName string, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) *Pipeline {
	codec := &imageio.Codec{Stdin: stdin, Stdout: stdout}
	return &Pipeline{
		Decoder:     codec,
		Transformer: operations.Applier{},
		Decider:     format.Decider{},
		Encoder:     codec,
		Licenses:    license.NewRenderer(stdout, toolName),
		Diagnostics: stderr,
		Logger:      logger,
	}
}

// Run executes the image pipeline. Each stage's error is returned unchanged
// and ends the run.
func (p *Pipeline) Run(cfg config.Config, ops []operations.Operation) error {
	log := p.logger()

	output, hasOutput := cfg.Output()
	if !hasOutput && p.Diagnostics != nil {
		fmt.Fprintln(p.Diagnostics, DefaultFormatAdvisory)
	}

	input, _ := cfg.Input()
	log.Debug("import", "input", describe(input, "stdin"))
	img, err := p.Decoder.Decode(input)
	if err != nil {
		return err
	}

	log.Debug("transform", "operations", len(ops), "bounds", img.Bounds().String())
	img, err = p.Transformer.Apply(img, ops, cfg)
	if err != nil {
		return err
	}

	f, err := p.Decider.Decide(cfg)
	if err != nil {
		return err
	}

	log.Debug("export", "format", f.String(), "output", describe(output, "stdout"))
	return p.Encoder.Encode(img, f, cfg, output)
}

// RunLicenses renders every license selected in cfg, in order.
func (p *Pipeline) RunLicenses(cfg config.Config) {
	for _, l := range cfg.Licenses() {
		p.Licenses.Render(l)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}

func describe(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
