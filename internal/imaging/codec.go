package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"strings"

	"github.com/chai2010/webp"
)

// Codec encodes an image at a given lossy quality (1-100).
type Codec interface {
	Encode(w io.Writer, img image.Image, quality int) error
	ContentType() string
	Extension() string
}

type WebPCodec struct{}

func (WebPCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality), Lossless: false})
}

func (WebPCodec) ContentType() string { return "image/webp" }
func (WebPCodec) Extension() string   { return ".webp" }

type JPEGCodec struct{}

func (JPEGCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

func (JPEGCodec) ContentType() string { return "image/jpeg" }
func (JPEGCodec) Extension() string   { return ".jpg" }

// CodecByName maps the IMAGE_FORMAT setting to a codec. Empty means webp.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "webp":
		return WebPCodec{}, nil
	case "jpeg", "jpg":
		return JPEGCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", name)
	}
}
