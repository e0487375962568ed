package qr

import (
	"Lost-Found-Registry/domain"
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the width and height of the rendered image in pixels.
	DefaultSize = 300
	// DefaultMargin is the quiet zone around the symbol, in modules.
	DefaultMargin = 1
)

type (
	Artifact struct {
		PNG    []byte
		Base64 string
	}

	Generator interface {
		Generate(text string) (*Artifact, error)
	}

	generator struct {
		size   int
		margin int
		level  qrcode.RecoveryLevel
	}
)

func NewGenerator() Generator {
	return &generator{
		size:   DefaultSize,
		margin: DefaultMargin,
		level:  qrcode.Highest,
	}
}

// Generate renders text as a black-on-white PNG QR code at the highest error
// correction level.
func (g *generator) Generate(text string) (*Artifact, error) {
	q, err := qrcode.New(text, g.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
	}
	q.DisableBorder = true

	img, err := g.draw(q.Bitmap())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactGeneration, err)
	}

	return &Artifact{
		PNG:    buf.Bytes(),
		Base64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// draw paints the module grid with whole-pixel modules, centred on the canvas.
// Pixels left over from the integer division widen the quiet zone.
func (g *generator) draw(bitmap [][]bool) (image.Image, error) {
	modules := len(bitmap) + 2*g.margin
	scale := g.size / modules
	if scale < 1 {
		return nil, fmt.Errorf("%w: %d modules do not fit in %dpx", domain.ErrArtifactGeneration, modules, g.size)
	}
	offset := (g.size-scale*modules)/2 + g.margin*scale

	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, g.size, g.size), palette)

	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0, y0 := offset+x*scale, offset+y*scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(x0+dx, y0+dy, 1)
				}
			}
		}
	}
	return img, nil
}
