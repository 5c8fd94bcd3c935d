package img

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

type Prepared struct {
	Bytes         []byte
	MIME          string
	Width, Height int
}

// PrepareForOCR: open (EXIF aware) → downscale so the larger side is at most
// maxDim → opaque JPEG bytes. Smaller images pass through unresized.
func PrepareForOCR(path string, maxDim, quality int) (Prepared, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Prepared{}, err
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if maxDim > 0 && max(w, h) > maxDim {
		if w >= h {
			src = imaging.Resize(src, maxDim, 0, imaging.Lanczos)
		} else {
			src = imaging.Resize(src, 0, maxDim, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, forceOpaque(src), &jpeg.Options{Quality: clamp(quality, 40, 95)}); err != nil {
		return Prepared{}, err
	}
	return Prepared{
		Bytes:  buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  src.Bounds().Dx(),
		Height: src.Bounds().Dy(),
	}, nil
}

// convert alpha to white (tesseract dislikes transparency)
func forceOpaque(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	bg := color.White
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				dst.Set(x, y, bg)
			} else {
				dst.SetRGBA(x, y, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), 0xff})
			}
		}
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
