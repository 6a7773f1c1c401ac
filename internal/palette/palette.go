// Package palette assigns deterministic, visually distinct colors to labels.
package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// goldenAngle (degrees) spreads consecutive hues maximally apart: each step
// lands far from every earlier hue, so even short prefixes of the wheel are
// well separated.
const goldenAngle = 137.50776405003785

// Fixed saturation and value keep every color mid-tone and legible on both
// light and dark chart backgrounds.
const (
	saturation = 0.65
	value      = 0.92
)

// Assign maps each label to a hex color by walking the hue wheel in
// golden-angle steps from the label's position. It is a pure function of the
// ordered label sequence: no randomness, identical output across calls.
// Duplicate labels keep the color of their last occurrence.
func Assign(labels []string) map[string]string {
	colors := make(map[string]string, len(labels))
	for i, label := range labels {
		colors[label] = ColorAt(i)
	}
	return colors
}

// ColorAt returns the hex color for wheel position i.
func ColorAt(i int) string {
	hue := math.Mod(float64(i)*goldenAngle, 360)
	return colorful.Hsv(hue, saturation, value).Hex()
}
