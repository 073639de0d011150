package avatar

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
)

const (
	// MaxUploadBytes espelha o limite aceito no upload (5MB).
	MaxUploadBytes = 5 * 1024 * 1024

	maxDim  = 512
	quality = 85
)

// Normalize decodifica o upload (png/jpeg/gif/webp), reduz para no máximo
// 512px no maior lado e reencoda como webp. O que vai para o asset store é
// sempre o resultado daqui, nunca os bytes crus do cliente.
func Normalize(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", httperr.ErrValidation("empty_upload")
	}
	if len(data) > MaxUploadBytes {
		return nil, "", httperr.ErrValidation("file_too_large")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", httperr.ErrValidation("unsupported_image")
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "image/webp", nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
