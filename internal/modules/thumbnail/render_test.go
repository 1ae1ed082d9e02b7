package thumbnail

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1200, 800))
	for y := 0; y < 800; y++ {
		for x := 0; x < 1200; x++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	thumb, err := Render(encodePNG(t, src))
	require.NoError(t, err)
	require.Equal(t, Dimensions{1200, 800}, thumb.Original)
	require.Equal(t, Dimensions{367, 245}, thumb.Size)
	require.True(t, strings.HasPrefix(thumb.DataURL, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(thumb.DataURL, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	require.Equal(t, thumb.Bytes, raw)
	out, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 367, out.Bounds().Dx())
	require.Equal(t, 245, out.Bounds().Dy())
}

func TestRenderFillsTransparencyWithWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))

	thumb, err := Render(encodePNG(t, src))
	require.NoError(t, err)
	require.Equal(t, Dimensions{40, 40}, thumb.Size)

	out, err := jpeg.Decode(bytes.NewReader(thumb.Bytes))
	require.NoError(t, err)
	r, g, b, _ := out.At(20, 20).RGBA()
	require.Greater(t, r>>8, uint32(240))
	require.Greater(t, g>>8, uint32(240))
	require.Greater(t, b>>8, uint32(240))
}

func TestRenderRejectsGarbage(t *testing.T) {
	_, err := Render([]byte("not an image"))
	require.Error(t, err)
}

// hugePNG is a valid PNG whose header claims width x height. Only the
// header is meant to be read.
func hugePNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1)))
	// signature(8) length(4) "IHDR"(4) width(4) height(4) ... crc after 13 data bytes
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestRenderRejectsTooManyPixels(t *testing.T) {
	data := hugePNG(t, 12000, 12000)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 12000, cfg.Width)

	_, err = Render(data)
	require.ErrorIs(t, err, ErrTooManyPixels)

	_, err = RenderLimited(encodePNG(t, image.NewGray(image.Rect(0, 0, 100, 100))), 9999)
	require.ErrorIs(t, err, ErrTooManyPixels)

	thumb, err := RenderLimited(encodePNG(t, image.NewGray(image.Rect(0, 0, 100, 100))), 10000)
	require.NoError(t, err)
	require.Equal(t, Dimensions{100, 100}, thumb.Size)
}
