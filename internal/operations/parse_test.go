package operations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/stew/internal/config"
)

func TestParse(t *testing.T) {
	ops, err := Parse("blur 1; flip-horizontal")
	require.NoError(t, err)
	assert.Equal(t, []Operation{Blur{Sigma: 1}, FlipHorizontal{}}, ops)

	ops, err = Parse("  crop 0 0 2 1 ;; resize 10 20; hue-rotate -90; unsharpen 1.5 2;")
	require.NoError(t, err)
	assert.Equal(t, []Operation{
		Crop{LX: 0, LY: 0, RX: 2, RY: 1},
		Resize{Width: 10, Height: 20},
		HueRotate{Degrees: -90},
		Unsharpen{Sigma: 1.5, Threshold: 2},
	}, ops)

	ops, err = Parse("")
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		script  string
		wantErr error
		wantMsg string
	}{
		{"sharpen 1", ErrUnknownOperation, `statement 1 "sharpen 1"`},
		{"invert; blur", ErrArguments, `statement 2 "blur"`},
		{"blur x", ErrArguments, `"x" is not a number`},
		{"brighten 101", ErrArguments, "[-100, 100]"},
		{"resize 0 10", ErrArguments, "not a positive size"},
		{"crop 0 0 -1 1", ErrArguments, "not a pixel coordinate"},
		{"filter3x3 1 2 3", ErrArguments, "takes 9 argument(s), got 3"},
	}
	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			_, err := Parse(tt.script)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yaml")
	content := "- op: blur\n  args: [1.5]\n- op: rotate90\n- op: crop\n  args: [0, 0, 1, 1]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ops, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Operation{Blur{Sigma: 1.5}, Rotate90{}, Crop{RX: 1, RY: 1}}, ops)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- op: explode\n"), 0o600))
	_, err = LoadFile(bad)
	require.ErrorIs(t, err, ErrUnknownOperation)
	assert.Contains(t, err.Error(), "entry 1")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- op: invert\n"), 0o600))

	cfg, err := config.Build(config.RawOptions{}, "stew", []config.Item{
		{Key: ItemFile, Value: path},
		{Key: ItemScript, Value: "grayscale"},
		{Key: "unrelated", Value: "x"},
	})
	require.NoError(t, err)

	ops, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, []Operation{Grayscale{}, Invert{}}, ops)
}
