package imageio

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/stew/internal/config"
	"github.com/dkoosis/stew/internal/format"
)

func checker() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		if i%2 == 0 {
			img.Pix[i] = 0xff
		}
	}
	return img
}

func encodePNMString(t *testing.T, img image.Image, f format.Format, ascii bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encodePNM(&buf, img, f, config.NewPNMSettings(ascii)))
	return buf.String()
}

func TestEncodePNM_ASCII(t *testing.T) {
	assert.Equal(t, "P1\n3 2\n0 1 0\n1 0 1\n", encodePNMString(t, checker(), format.PBM, true))
	assert.Equal(t, "P2\n3 2\n255\n255 0 255\n0 255 0\n", encodePNMString(t, checker(), format.PGM, true))

	rgb := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgb.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 0xff})
	assert.Equal(t, "P3\n1 1\n255\n1 2 3\n", encodePNMString(t, rgb, format.PPM, true))
}

func TestEncodePNM_Binary(t *testing.T) {
	assert.Equal(t, "P4\n3 2\n\x40\xa0", encodePNMString(t, checker(), format.PBM, false))
	assert.Equal(t, "P5\n3 2\n255\n\xff\x00\xff\x00\xff\x00", encodePNMString(t, checker(), format.PGM, false))
}

func TestEncodePNM_PAMIgnoresASCII(t *testing.T) {
	out := encodePNMString(t, checker(), format.PAM, true)
	assert.True(t, strings.HasPrefix(out, "P7\nWIDTH 3\nHEIGHT 2\nDEPTH 1\nMAXVAL 255\nTUPLTYPE GRAYSCALE\nENDHDR\n"), out)
	assert.Len(t, out, len("P7\nWIDTH 3\nHEIGHT 2\nDEPTH 1\nMAXVAL 255\nTUPLTYPE GRAYSCALE\nENDHDR\n")+6)
}

func TestEncodePNM_WrapsLongASCIILines(t *testing.T) {
	wide := image.NewGray(image.Rect(0, 0, 40, 1))
	out := encodePNMString(t, wide, format.PGM, true)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), maxLineWidth)
	}
	assert.Equal(t, 40, strings.Count(out[len("P2\n40 1\n255\n"):], "0"))
}

func TestDecodePNM_ReadsEncoderOutput(t *testing.T) {
	for _, tt := range []struct {
		f     format.Format
		ascii bool
	}{
		{format.PBM, true}, {format.PBM, false},
		{format.PGM, true}, {format.PGM, false},
		{format.PAM, false},
	} {
		data := encodePNMString(t, checker(), tt.f, tt.ascii)
		img, name, err := image.Decode(strings.NewReader(data))
		require.NoError(t, err, "%s ascii=%t", tt.f, tt.ascii)
		assert.Equal(t, "pnm", name)
		assert.Equal(t, checker().Pix, img.(*image.Gray).Pix, "%s ascii=%t", tt.f, tt.ascii)
	}
}

func TestDecodePNM_Color(t *testing.T) {
	img, _, err := image.Decode(strings.NewReader("P3\n# comment\n2 1\n15\n15 0 0  0 15 0\n"))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.At(1, 0))

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.Set(0, 0, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
	img, _, err = image.Decode(strings.NewReader(encodePNMString(t, translucent, format.PAM, false)))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 9, G: 8, B: 7, A: 6}, img.At(0, 0))

	cfg, name, err := image.DecodeConfig(strings.NewReader("P6\n7 5\n255\n"))
	require.NoError(t, err)
	assert.Equal(t, "pnm", name)
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
}

func TestDecodePNM_Malformed(t *testing.T) {
	for _, in := range []string{
		"P5\n0 3\n255\n",
		"P2\n1 1\n255\n300\n",
		"P6\n2 2\n255\n\x01\x02",
		"P7\nWIDTH 1\nHEIGHT 1\nDEPTH 9\nMAXVAL 255\nENDHDR\n",
		"P1\n2 1\n0 2\n",
	} {
		_, _, err := image.Decode(strings.NewReader(in))
		assert.Error(t, err, "%q", in)
	}
}

func TestDecodePNM_RejectsHugeDimensions(t *testing.T) {
	for _, in := range []string{
		"P5\n4000000000 4000000000\n255\n\x00",
		"P6\n40000 40000\n255\n\x00",
		"P7\nWIDTH 9223372036854775807\nHEIGHT 2\nDEPTH 4\nMAXVAL 255\nENDHDR\n",
	} {
		c := &Codec{Stdin: strings.NewReader(in)}
		var err error
		require.NotPanics(t, func() { _, err = c.Decode("") }, "%q", in)
		assert.ErrorIs(t, err, errBadPNM, "%q", in)
	}
}
