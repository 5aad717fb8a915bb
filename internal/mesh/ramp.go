package mesh

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// rampStop is a colour at a position along the ramp's U axis.
type rampStop struct {
	at    float32
	color color.RGBA
}

// elevationRamp runs from peaks at U=0 down to deep ocean at U=1.
var elevationRamp = []rampStop{
	{0.00, color.RGBA{R: 250, G: 250, B: 250, A: 255}},
	{0.15, color.RGBA{R: 140, G: 130, B: 120, A: 255}},
	{0.35, color.RGBA{R: 70, G: 120, B: 50, A: 255}},
	{0.50, color.RGBA{R: 110, G: 160, B: 70, A: 255}},
	{0.58, color.RGBA{R: 220, G: 205, B: 150, A: 255}},
	{0.62, color.RGBA{R: 60, G: 130, B: 190, A: 255}},
	{1.00, color.RGBA{R: 10, G: 30, B: 90, A: 255}},
}

// borderShade darkens the border row.
const borderShade = 0.6

// RampImage renders the two-row elevation ramp the mesh texture coordinates
// address: the interior row on top, the darker plate border row below.
func RampImage(width int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, 2))
	for x := range width {
		u := float32(0)
		if width > 1 {
			u = float32(x) / float32(width-1)
		}
		c := rampColor(u)
		img.SetRGBA(x, 0, c)
		img.SetRGBA(x, 1, color.RGBA{
			R: uint8(float32(c.R) * borderShade),
			G: uint8(float32(c.G) * borderShade),
			B: uint8(float32(c.B) * borderShade),
			A: c.A,
		})
	}
	return img
}

func rampColor(u float32) color.RGBA {
	for i := 1; i < len(elevationRamp); i++ {
		next := elevationRamp[i]
		if u > next.at {
			continue
		}
		prev := elevationRamp[i-1]
		t := (u - prev.at) / (next.at - prev.at)
		return color.RGBA{
			R: lerp8(prev.color.R, next.color.R, t),
			G: lerp8(prev.color.G, next.color.G, t),
			B: lerp8(prev.color.B, next.color.B, t),
			A: 255,
		}
	}
	return elevationRamp[len(elevationRamp)-1].color
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}

// WriteRampPNG saves RampImage(width) to path.
func WriteRampPNG(path string, width int) error {
	if width <= 0 {
		return fmt.Errorf("ramp width must be positive, got %d", width)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, RampImage(width)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
