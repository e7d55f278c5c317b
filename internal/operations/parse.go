package operations

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/stew/internal/config"
)

// Keys of the config items that carry operation sources.
const (
	ItemScript = "operations.script"
	ItemFile   = "operations.file"
)

var (
	// ErrUnknownOperation is returned for an operation name that does not exist.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrArguments is returned for a wrong number or kind of arguments.
	ErrArguments = errors.New("invalid arguments")
)

type builder struct {
	arity int
	build func(args []string) (Operation, error)
}

var builders = map[string]builder{
	"blur": {1, func(a []string) (Operation, error) {
		sigma, err := parseFloat(a[0], 0, 1e4)
		return Blur{Sigma: sigma}, err
	}},
	"brighten": {1, func(a []string) (Operation, error) {
		p, err := parseFloat(a[0], -100, 100)
		return Brighten{Percent: p}, err
	}},
	"contrast": {1, func(a []string) (Operation, error) {
		p, err := parseFloat(a[0], -100, 100)
		return Contrast{Percent: p}, err
	}},
	"crop": {4, func(a []string) (Operation, error) {
		var c [4]int
		for i, s := range a {
			v, err := strconv.ParseUint(s, 10, 31)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a pixel coordinate", ErrArguments, s)
			}
			c[i] = int(v)
		}
		return Crop{LX: c[0], LY: c[1], RX: c[2], RY: c[3]}, nil
	}},
	"filter3x3": {9, func(a []string) (Operation, error) {
		var k [9]float32
		for i, s := range a {
			v, err := parseFloat(s, -1e6, 1e6)
			if err != nil {
				return nil, err
			}
			k[i] = v
		}
		return Filter3x3{Kernel: k}, nil
	}},
	"flip-horizontal": {0, func([]string) (Operation, error) { return FlipHorizontal{}, nil }},
	"flip-vertical":   {0, func([]string) (Operation, error) { return FlipVertical{}, nil }},
	"grayscale":       {0, func([]string) (Operation, error) { return Grayscale{}, nil }},
	"hue-rotate": {1, func(a []string) (Operation, error) {
		d, err := parseFloat(a[0], -1e6, 1e6)
		return HueRotate{Degrees: d}, err
	}},
	"invert": {0, func([]string) (Operation, error) { return Invert{}, nil }},
	"resize": {2, func(a []string) (Operation, error) {
		var wh [2]uint
		for i, s := range a {
			v, err := strconv.ParseUint(s, 10, 31)
			if err != nil || v == 0 {
				return nil, fmt.Errorf("%w: %q is not a positive size", ErrArguments, s)
			}
			wh[i] = uint(v)
		}
		return Resize{Width: wh[0], Height: wh[1]}, nil
	}},
	"rotate90":  {0, func([]string) (Operation, error) { return Rotate90{}, nil }},
	"rotate180": {0, func([]string) (Operation, error) { return Rotate180{}, nil }},
	"rotate270": {0, func([]string) (Operation, error) { return Rotate270{}, nil }},
	"unsharpen": {2, func(a []string) (Operation, error) {
		sigma, err := parseFloat(a[0], 0, 1e4)
		if err != nil {
			return nil, err
		}
		threshold, err := parseFloat(a[1], 0, 1e4)
		return Unsharpen{Sigma: sigma, Threshold: threshold}, err
	}},
}

func parseFloat(s string, lo, hi float64) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%w: %q is not a number in [%g, %g]", ErrArguments, s, lo, hi)
	}
	return float32(v), nil
}

// New builds the named operation from textual arguments.
func New(name string, args []string) (Operation, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}
	if len(args) != b.arity {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrArguments, name, b.arity, len(args))
	}
	op, err := b.build(args)
	if err != nil {
		return nil, err
	}
	return op, nil
}

// Parse reads an operations script: statements separated by ';', each an
// operation name followed by its arguments, e.g. "blur 1.5; flip-horizontal".
func Parse(script string) ([]Operation, error) {
	var ops []Operation
	for i, stmt := range strings.Split(script, ";") {
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}
		op, err := New(fields[0], fields[1:])
		if err != nil {
			return nil, fmt.Errorf("statement %d %q: %w", i+1, strings.TrimSpace(stmt), err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// fileEntry is one operation in a YAML operations file.
type fileEntry struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`
}

// LoadFile reads a YAML list of operations:
//
//	- op: blur
//	  args: [1.5]
//	- op: flip-horizontal
func LoadFile(path string) ([]Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading operations file %s: %w", path, err)
	}
	var entries []fileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing operations file %s: %w", path, err)
	}

	ops := make([]Operation, 0, len(entries))
	for i, e := range entries {
		op, err := New(e.Op, e.Args)
		if err != nil {
			return nil, fmt.Errorf("operations file %s: entry %d: %w", path, i+1, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// FromConfig collects the operations referenced by cfg's items: scripts
// first, then operation files, each in the order they were given.
func FromConfig(cfg config.Config) ([]Operation, error) {
	var ops []Operation
	for _, script := range cfg.Lookup(ItemScript) {
		parsed, err := Parse(script)
		if err != nil {
			return nil, err
		}
		ops = append(ops, parsed...)
	}
	for _, path := range cfg.Lookup(ItemFile) {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		ops = append(ops, loaded...)
	}
	return ops, nil
}
