// Package imaging shrinks uploaded images so they fit a size budget.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrCompression = errors.New("image compression failed")

const (
	DefaultMaxSizeKB    = 500
	DefaultMaxWidth     = 1200
	DefaultStartQuality = 80
	DefaultQualityStep  = 5
	DefaultMinQuality   = 10
)

// Policy is the compression budget plus the quality schedule.
// Quality starts at StartQuality and drops by QualityStep; a level at or
// below MinQuality is never attempted.
type Policy struct {
	MaxSizeKB    int
	MaxWidth     int
	StartQuality int
	QualityStep  int
	MinQuality   int
	Codec        Codec
}

func DefaultPolicy() Policy {
	return Policy{
		MaxSizeKB:    DefaultMaxSizeKB,
		MaxWidth:     DefaultMaxWidth,
		StartQuality: DefaultStartQuality,
		QualityStep:  DefaultQualityStep,
		MinQuality:   DefaultMinQuality,
		Codec:        WebPCodec{},
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxSizeKB <= 0 {
		p.MaxSizeKB = d.MaxSizeKB
	}
	if p.MaxWidth <= 0 {
		p.MaxWidth = d.MaxWidth
	}
	if p.StartQuality <= 0 || p.StartQuality > 100 {
		p.StartQuality = d.StartQuality
	}
	if p.QualityStep <= 0 {
		p.QualityStep = d.QualityStep
	}
	if p.MinQuality <= 0 {
		p.MinQuality = d.MinQuality
	}
	if p.Codec == nil {
		p.Codec = d.Codec
	}
	return p
}

// Qualities returns the quality levels Compress tries, in order.
func (p Policy) Qualities() []int {
	p = p.withDefaults()
	var levels []int
	for q := p.StartQuality; q > p.MinQuality; q -= p.QualityStep {
		levels = append(levels, q)
	}
	if len(levels) == 0 {
		levels = append(levels, p.StartQuality)
	}
	return levels
}

// ContentType is the MIME type of everything Compress produces under p.
func (p Policy) ContentType() string {
	return p.withDefaults().Codec.ContentType()
}

// Compress decodes buf, scales it down to MaxWidth and re-encodes it at
// decreasing quality until the output fits MaxSizeKB. When no level fits, the
// encoding at the lowest attempted quality is returned.
func Compress(buf []byte, p Policy) ([]byte, error) {
	p = p.withDefaults()

	src, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCompression, err)
	}
	img := Resize(src, p.MaxWidth)

	limit := p.MaxSizeKB * 1024
	var out []byte
	for _, q := range p.Qualities() {
		var enc bytes.Buffer
		if err := p.Codec.Encode(&enc, img, q); err != nil {
			return nil, fmt.Errorf("%w: encode at quality %d: %v", ErrCompression, q, err)
		}
		out = enc.Bytes()
		if len(out) <= limit {
			return out, nil
		}
	}
	return out, nil
}

// Resize scales img so its width is at most maxWidth, keeping the aspect
// ratio. Smaller images are returned unchanged.
func Resize(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth <= 0 || w <= maxWidth {
		return img
	}

	newH := h * maxWidth / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
