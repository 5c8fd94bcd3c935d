package ocr

import "strings"

// Normalize maps raw library fragments into stable spans. Whitespace-only
// fragments are dropped, confidences are rescaled from 0-100 to 0-1, and
// boxes become four clockwise integer corners starting top-left.
func Normalize(frags []Fragment) []Span {
	out := make([]Span, 0, len(frags))
	for _, f := range frags {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		sp := Span{Text: text}
		if f.Confidence >= 0 {
			score := clampScore(f.Confidence / 100.0)
			sp.Score = &score
		}
		if f.HasBox {
			sp.Box = corners(f.MinX, f.MinY, f.MaxX, f.MaxY)
		}
		out = append(out, sp)
	}
	return out
}

// NormalizeText handles providers that only return a flat string: one span
// per non-empty line, no score, no geometry.
func NormalizeText(text string) []Span {
	var out []Span
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Span{Text: line})
	}
	return out
}

// JoinedText flattens spans into the page text shown on the index page.
func JoinedText(spans []Span) string {
	lines := make([]string, 0, len(spans))
	for _, sp := range spans {
		if sp.Text != "" {
			lines = append(lines, sp.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func corners(minX, minY, maxX, maxY int) [][2]int {
	return [][2]int{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
