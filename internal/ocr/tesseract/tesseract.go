// Package tesseract implements ocr.Engine on the gosseract client.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/riandy/ocrhost/internal/ocr"
)

type Engine struct {
	langs []string
}

// New builds a Tesseract-backed engine. lang is a "+"-separated tessdata
// list, e.g. "eng" or "eng+ind".
func New(lang string) *Engine {
	var langs []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return &Engine{langs: langs}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs line-level OCR on one encoded image. A fresh client per call;
// gosseract clients are not safe for concurrent reuse.
func (e *Engine) Recognize(ctx context.Context, image []byte) ([]ocr.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := gosseract.NewClient()
	defer c.Close()

	if len(e.langs) > 0 {
		if err := c.SetLanguage(e.langs...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil || len(boxes) == 0 {
		// box iteration unavailable; fall back to the flat text path
		text, terr := c.Text()
		if terr != nil {
			if err != nil {
				return nil, fmt.Errorf("bounding boxes: %w", err)
			}
			return nil, fmt.Errorf("recognize text: %w", terr)
		}
		return ocr.NormalizeText(text), nil
	}

	frags := make([]ocr.Fragment, 0, len(boxes))
	for _, b := range boxes {
		frags = append(frags, ocr.Fragment{
			Text:       b.Word,
			Confidence: b.Confidence,
			HasBox:     true,
			MinX:       b.Box.Min.X,
			MinY:       b.Box.Min.Y,
			MaxX:       b.Box.Max.X,
			MaxY:       b.Box.Max.Y,
		})
	}
	return ocr.Normalize(frags), nil
}
