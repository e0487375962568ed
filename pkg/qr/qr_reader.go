package qr

import (
	"Lost-Found-Registry/domain"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/image/draw"
)

// MaxDimension bounds the width and height of an uploaded image before decoding.
const MaxDimension = 1024

// MaxPixels caps the decoded size of an upload; the header is checked first so
// oversized images are refused without allocating their pixels.
const MaxPixels = 40_000_000

var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type (
	// Reader turns an uploaded QR image back into the token text it encodes.
	Reader interface {
		Read(r io.Reader) (string, error)
	}

	reader struct{}
)

func NewReader() Reader {
	return &reader{}
}

func (rd *reader) Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableArtifact, err)
	}

	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return "", fmt.Errorf("%w: unsupported image format %s", domain.ErrUnreadableArtifact, detected)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableArtifact, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: image is %dx%d pixels", domain.ErrUnreadableArtifact, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableArtifact, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(downscale(img, MaxDimension))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableArtifact, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := gozxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableArtifact, err)
	}

	return result.GetText(), nil
}

// downscale keeps phone photos of a printed code to a size the detector handles quickly.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW, newH = max(newW, 1), max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
