package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/stew/internal/config"
	"github.com/dkoosis/stew/internal/format"
	"github.com/dkoosis/stew/internal/operations"
)

// recorder implements every collaborator and logs calls in order.
type recorder struct {
	calls      []string
	diag       *bytes.Buffer
	decodeErr  error
	applyErr   error
	decideErr  error
	encodeErr  error
	decodePath string
	encodePath string
	encodeFmt  format.Format
	licenses   []config.License
}

func (r *recorder) Decode(path string) (image.Image, error) {
	r.calls = append(r.calls, "decode")
	if r.diag != nil && r.diag.Len() > 0 {
		r.calls = append(r.calls, "advisory-before-decode")
	}
	r.decodePath = path
	if r.decodeErr != nil {
		return nil, r.decodeErr
	}
	return image.NewGray(image.Rect(0, 0, 2, 2)), nil
}

func (r *recorder) Apply(img image.Image, ops []operations.Operation, _ config.Config) (image.Image, error) {
	r.calls = append(r.calls, "apply")
	if r.applyErr != nil {
		return nil, r.applyErr
	}
	return img, nil
}

func (r *recorder) Decide(cfg config.Config) (format.Format, error) {
	r.calls = append(r.calls, "decide")
	if r.decideErr != nil {
		return 0, r.decideErr
	}
	return format.Decider{}.Decide(cfg)
}

func (r *recorder) Encode(_ image.Image, f format.Format, _ config.Config, path string) error {
	r.calls = append(r.calls, "encode")
	r.encodeFmt = f
	r.encodePath = path
	return r.encodeErr
}

func (r *recorder) Render(l config.License) {
	r.calls = append(r.calls, "license:"+l.String())
	r.licenses = append(r.licenses, l)
}

func newRecorded() (*Pipeline, *recorder) {
	diag := &bytes.Buffer{}
	r := &recorder{diag: diag}
	return &Pipeline{
		Decoder: r, Transformer: r, Decider: r, Encoder: r, Licenses: r,
		Diagnostics: diag,
	}, r
}

func build(t *testing.T, raw config.RawOptions) config.Config {
	t.Helper()
	cfg, err := config.Build(raw, "stew", nil)
	require.NoError(t, err)
	return cfg
}

func strp(s string) *string { return &s }

func TestRun_StagesInOrder(t *testing.T) {
	p, r := newRecorded()
	cfg := build(t, config.RawOptions{Input: strp("in.jpg"), Output: strp("out.png")})

	require.NoError(t, p.Run(cfg, nil))

	assert.Equal(t, []string{"decode", "apply", "decide", "encode"}, r.calls)
	assert.Equal(t, "in.jpg", r.decodePath)
	assert.Equal(t, "out.png", r.encodePath)
	assert.Equal(t, format.PNG, r.encodeFmt)
	assert.Empty(t, r.diag.String(), "no advisory when an output is set")
}

func TestRun_EmitsAdvisoryBeforeDecode_When_NoOutput(t *testing.T) {
	p, r := newRecorded()

	require.NoError(t, p.Run(build(t, config.RawOptions{}), nil))

	assert.Equal(t, []string{"decode", "advisory-before-decode", "apply", "decide", "encode"}, r.calls)
	assert.Equal(t, DefaultFormatAdvisory+"\n", r.diag.String())
	assert.Empty(t, r.decodePath, "stdin")
	assert.Empty(t, r.encodePath, "stdout")
	assert.Equal(t, format.BMP, r.encodeFmt)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		setup     func(r *recorder)
		wantCalls []string
	}{
		{"decode", func(r *recorder) { r.decodeErr = boom }, []string{"decode"}},
		{"apply", func(r *recorder) { r.applyErr = boom }, []string{"decode", "apply"}},
		{"decide", func(r *recorder) { r.decideErr = boom }, []string{"decode", "apply", "decide"}},
		{"encode", func(r *recorder) { r.encodeErr = boom }, []string{"decode", "apply", "decide", "encode"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := newRecorded()
			tt.setup(r)
			err := p.Run(build(t, config.RawOptions{Output: strp("x.png")}), nil)
			assert.Same(t, boom, err, "errors are surfaced unchanged")
			assert.Equal(t, tt.wantCalls, r.calls)
		})
	}
}

func TestRunLicenses_RendersInOrderWithoutImageIO(t *testing.T) {
	p, r := newRecorded()
	cfg := build(t, config.RawOptions{License: true, DepLicenses: true})

	p.RunLicenses(cfg)

	assert.Equal(t, []string{"license:this-software", "license:dependencies"}, r.calls)
	assert.Equal(t, []config.License{config.ThisSoftware, config.Dependencies}, r.licenses)
	assert.Empty(t, r.diag.String())
}

func TestNew_ConvertsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	require.NoError(t, os.WriteFile(in, buf.Bytes(), 0o600))

	out := filepath.Join(dir, "out.pgm")
	cfg, err := config.Build(config.RawOptions{Input: &in, Output: &out, PNMASCII: true}, "stew", nil)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	p := New("stew", strings.NewReader(""), &stdout, &stderr, nil)
	require.NoError(t, p.Run(cfg, []operations.Operation{operations.Rotate90{}}))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "P2\n2 3\n255\n"), string(got))
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}
