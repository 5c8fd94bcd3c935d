// Package ocr defines the engine contract and the stable result shape for
// third-party OCR providers. The interface is small so engines can be backed
// by native libraries or remote APIs without leaking provider types upward.
package ocr

import "context"

// Span is one recognized text region in its JSON-friendly form:
// {"text": ..., "score": ..., "box": [[x,y] x 4]}. Score is nil when the
// provider reports no confidence; Box is nil when no geometry is known.
type Span struct {
	Text  string   `json:"text"`
	Score *float64 `json:"score"`
	Box   [][2]int `json:"box"`
}

// Fragment is one raw detection as reported by an OCR library, before
// normalization. Confidence is on the library's 0-100 scale; negative means
// unknown.
type Fragment struct {
	Text                   string
	Confidence             float64
	HasBox                 bool
	MinX, MinY, MaxX, MaxY int
}

// Engine is the provider contract: one encoded image in, spans out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) ([]Span, error)
}
