package imageio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
)

const maxICOSize = 256

// encodeICO writes img as a single-entry icon with a PNG payload.
func encodeICO(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > maxICOSize || b.Dy() > maxICOSize {
		return fmt.Errorf("ico: image is %dx%d, icons are at most %dx%d",
			b.Dx(), b.Dy(), maxICOSize, maxICOSize)
	}

	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return err
	}

	header := struct {
		Reserved, Type, Count uint16
		Width, Height         uint8
		Colors, Reserved2     uint8
		Planes, BitCount      uint16
		Size, Offset          uint32
	}{
		Type:     1,
		Count:    1,
		Width:    uint8(b.Dx() % maxICOSize), // 0 encodes 256
		Height:   uint8(b.Dy() % maxICOSize),
		Planes:   1,
		BitCount: 32,
		Size:     uint32(payload.Len()),
		Offset:   22,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	_, err := payload.WriteTo(w)
	return err
}
