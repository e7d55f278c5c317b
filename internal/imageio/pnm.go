package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/dkoosis/stew/internal/config"
	"github.com/dkoosis/stew/internal/format"
)

// maxLineWidth is the longest line written in ascii PNM rasters.
const maxLineWidth = 70

func init() {
	for _, magic := range []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7"} {
		image.RegisterFormat("pnm", magic, decodePNM, decodePNMConfig)
	}
}

// encodePNM writes img as PBM, PGM, PPM or PAM. settings.ASCII selects the
// plain variants P1 to P3; PAM is always binary.
func encodePNM(w io.Writer, img image.Image, f format.Format, settings config.PNMSettings) error {
	bw := bufio.NewWriter(w)
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	var err error
	switch f {
	case format.PBM:
		err = writePBM(bw, img, settings.ASCII)
	case format.PGM:
		magic := "P5"
		if settings.ASCII {
			magic = "P2"
		}
		fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, width, height)
		err = writeSamples(bw, img, settings.ASCII, func(c color.Color) []uint8 {
			return []uint8{color.GrayModel.Convert(c).(color.Gray).Y}
		})
	case format.PPM:
		magic := "P6"
		if settings.ASCII {
			magic = "P3"
		}
		fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, width, height)
		err = writeSamples(bw, img, settings.ASCII, func(c color.Color) []uint8 {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			return []uint8{n.R, n.G, n.B}
		})
	case format.PAM:
		err = writePAM(bw, img)
	default:
		return fmt.Errorf("%w: %s is not a PNM format", format.ErrUnknownFormat, f)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

func writePBM(w *bufio.Writer, img image.Image, ascii bool) error {
	b := img.Bounds()
	black := func(x, y int) bool {
		return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y < 0x80
	}

	if ascii {
		fmt.Fprintf(w, "P1\n%d %d\n", b.Dx(), b.Dy())
		lw := &lineWriter{w: w}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if black(x, y) {
					lw.token("1")
				} else {
					lw.token("0")
				}
			}
			lw.endRow()
		}
		return lw.err
	}

	fmt.Fprintf(w, "P4\n%d %d\n", b.Dx(), b.Dy())
	row := make([]byte, (b.Dx()+7)/8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		clear(row)
		for x := b.Min.X; x < b.Max.X; x++ {
			if black(x, y) {
				i := x - b.Min.X
				row[i/8] |= 0x80 >> (i % 8)
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeSamples(w *bufio.Writer, img image.Image, ascii bool, samples func(color.Color) []uint8) error {
	b := img.Bounds()
	lw := &lineWriter{w: w}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			for _, s := range samples(img.At(x, y)) {
				if ascii {
					lw.token(strconv.Itoa(int(s)))
				} else if err := w.WriteByte(s); err != nil {
					return err
				}
			}
		}
		if ascii {
			lw.endRow()
		}
	}
	return lw.err
}

func writePAM(w *bufio.Writer, img image.Image) error {
	b := img.Bounds()
	var (
		depth    int
		tupl     string
		samplesF func(color.Color) []uint8
	)
	switch ColorTypeOf(img) {
	case Gray:
		depth, tupl = 1, "GRAYSCALE"
		samplesF = func(c color.Color) []uint8 {
			return []uint8{color.GrayModel.Convert(c).(color.Gray).Y}
		}
	case GrayAlpha:
		depth, tupl = 2, "GRAYSCALE_ALPHA"
		samplesF = func(c color.Color) []uint8 {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			g := color.GrayModel.Convert(color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}).(color.Gray)
			return []uint8{g.Y, n.A}
		}
	case RGB:
		depth, tupl = 3, "RGB"
		samplesF = func(c color.Color) []uint8 {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			return []uint8{n.R, n.G, n.B}
		}
	default:
		depth, tupl = 4, "RGB_ALPHA"
		samplesF = func(c color.Color) []uint8 {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			return []uint8{n.R, n.G, n.B, n.A}
		}
	}

	fmt.Fprintf(w, "P7\nWIDTH %d\nHEIGHT %d\nDEPTH %d\nMAXVAL 255\nTUPLTYPE %s\nENDHDR\n",
		b.Dx(), b.Dy(), depth, tupl)
	return writeSamples(w, img, false, samplesF)
}

// lineWriter writes whitespace-separated tokens, wrapping at maxLineWidth
// and at the end of every raster row.
type lineWriter struct {
	w   *bufio.Writer
	n   int
	err error
}

func (l *lineWriter) token(s string) {
	if l.err != nil {
		return
	}
	if l.n > 0 && l.n+1+len(s) > maxLineWidth {
		l.err = l.w.WriteByte('\n')
		l.n = 0
	} else if l.n > 0 {
		l.err = l.w.WriteByte(' ')
		l.n++
	}
	if l.err == nil {
		_, l.err = l.w.WriteString(s)
		l.n += len(s)
	}
}

func (l *lineWriter) endRow() {
	if l.err == nil && l.n > 0 {
		l.err = l.w.WriteByte('\n')
		l.n = 0
	}
}

// pnmHeader is the parsed header of any PNM variant.
type pnmHeader struct {
	magic         string
	width, height int
	depth         int
	maxval        int
}

var errBadPNM = errors.New("pnm: malformed header")

func decodePNMConfig(r io.Reader) (image.Config, error) {
	h, err := readPNMHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: h.colorModel(), Width: h.width, Height: h.height}, nil
}

func (h *pnmHeader) colorModel() color.Model {
	if h.depth == 1 {
		return color.GrayModel
	}
	return color.NRGBAModel
}

func decodePNM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readPNMHeader(br)
	if err != nil {
		return nil, err
	}

	switch h.magic {
	case "P1":
		return decodePlainPBM(br, h)
	case "P4":
		return decodeRawPBM(br, h)
	}

	ascii := h.magic == "P2" || h.magic == "P3"
	next := func() (int, error) {
		if ascii {
			tok, err := readToken(br)
			if err != nil {
				return 0, err
			}
			v, err := strconv.Atoi(tok)
			if err != nil || v > h.maxval || v < 0 {
				return 0, fmt.Errorf("pnm: bad sample %q", tok)
			}
			return v, nil
		}
		if h.maxval < 256 {
			c, err := br.ReadByte()
			return int(c), err
		}
		hi, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		lo, err := br.ReadByte()
		return int(hi)<<8 | int(lo), err
	}
	scale := func(v int) uint8 { return uint8(v * 255 / h.maxval) }

	rect := image.Rect(0, 0, h.width, h.height)
	if h.depth == 1 {
		img := image.NewGray(rect)
		for i := range img.Pix {
			v, err := next()
			if err != nil {
				return nil, fmt.Errorf("pnm: reading raster: %w", err)
			}
			img.Pix[i] = scale(v)
		}
		return img, nil
	}

	img := image.NewNRGBA(rect)
	px := make([]int, h.depth)
	for i := 0; i < len(img.Pix); i += 4 {
		for j := range px {
			v, err := next()
			if err != nil {
				return nil, fmt.Errorf("pnm: reading raster: %w", err)
			}
			px[j] = v
		}
		switch h.depth {
		case 2:
			g := scale(px[0])
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = g, g, g, scale(px[1])
		case 3:
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = scale(px[0]), scale(px[1]), scale(px[2]), 0xff
		default:
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = scale(px[0]), scale(px[1]), scale(px[2]), scale(px[3])
		}
	}
	return img, nil
}

func decodePlainPBM(br *bufio.Reader, h *pnmHeader) (image.Image, error) {
	img := image.NewGray(image.Rect(0, 0, h.width, h.height))
	for i := range img.Pix {
		c, err := skipSpace(br)
		if err != nil {
			return nil, fmt.Errorf("pnm: reading raster: %w", err)
		}
		switch c {
		case '0':
			img.Pix[i] = 0xff
		case '1':
			img.Pix[i] = 0
		default:
			return nil, fmt.Errorf("pnm: bad bit %q", c)
		}
	}
	return img, nil
}

func decodeRawPBM(br *bufio.Reader, h *pnmHeader) (image.Image, error) {
	img := image.NewGray(image.Rect(0, 0, h.width, h.height))
	row := make([]byte, (h.width+7)/8)
	for y := 0; y < h.height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("pnm: reading raster: %w", err)
		}
		for x := 0; x < h.width; x++ {
			if row[x/8]&(0x80>>(x%8)) == 0 {
				img.Pix[y*img.Stride+x] = 0xff
			}
		}
	}
	return img, nil
}

func readPNMHeader(br *bufio.Reader) (*pnmHeader, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, errBadPNM
	}
	h := &pnmHeader{magic: string(magic), maxval: 1}

	if h.magic == "P7" {
		return readPAMHeader(br, h)
	}

	fields := []*int{&h.width, &h.height}
	if h.magic != "P1" && h.magic != "P4" {
		fields = append(fields, &h.maxval)
	}
	for _, f := range fields {
		tok, err := readToken(br)
		if err != nil {
			return nil, errBadPNM
		}
		if *f, err = strconv.Atoi(tok); err != nil {
			return nil, errBadPNM
		}
	}
	// readToken consumed the single whitespace byte that ends the header.

	switch h.magic {
	case "P1", "P2", "P4", "P5":
		h.depth = 1
	case "P3", "P6":
		h.depth = 3
	default:
		return nil, errBadPNM
	}
	return h, h.validate()
}

func readPAMHeader(br *bufio.Reader, h *pnmHeader) (*pnmHeader, error) {
	h.maxval = 0
	for {
		key, err := readToken(br)
		if err != nil {
			return nil, errBadPNM
		}
		if key == "ENDHDR" {
			break
		}
		val, err := readToken(br)
		if err != nil {
			return nil, errBadPNM
		}
		switch key {
		case "WIDTH":
			h.width, err = strconv.Atoi(val)
		case "HEIGHT":
			h.height, err = strconv.Atoi(val)
		case "DEPTH":
			h.depth, err = strconv.Atoi(val)
		case "MAXVAL":
			h.maxval, err = strconv.Atoi(val)
		}
		if err != nil {
			return nil, errBadPNM
		}
	}
	if h.depth < 1 || h.depth > 4 {
		return nil, fmt.Errorf("pnm: unsupported PAM depth %d", h.depth)
	}
	return h, h.validate()
}

// maxPNMSamples bounds width*height*depth so a header alone cannot make the
// decoder allocate without limit.
const maxPNMSamples = 1 << 30

func (h *pnmHeader) validate() error {
	if h.width <= 0 || h.height <= 0 || h.maxval <= 0 || h.maxval > 0xffff {
		return errBadPNM
	}
	if h.depth <= 0 || h.width > maxPNMSamples/h.height/h.depth {
		return errBadPNM
	}
	return nil
}

// skipSpace returns the next byte that is neither whitespace nor part of a
// comment.
func skipSpace(br *bufio.Reader) (byte, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		case '#':
			if _, err := br.ReadString('\n'); err != nil {
				return 0, err
			}
			continue
		}
		return c, nil
	}
}

// readToken returns the next whitespace-delimited token, skipping comments.
// The delimiter following the token is consumed.
func readToken(br *bufio.Reader) (string, error) {
	c, err := skipSpace(br)
	if err != nil {
		return "", err
	}
	tok := []byte{c}
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return string(tok), nil
		}
		if err != nil {
			return "", err
		}
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return string(tok), nil
		}
		tok = append(tok, c)
	}
}
