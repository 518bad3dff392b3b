package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// barImage draws bright vertical bars on a black background. Each bar
// produces one tall edge component for the detector to count.
func barImage(w, h int, bars []image.Rectangle) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, bar := range bars {
		for y := bar.Min.Y; y < bar.Max.Y; y++ {
			for x := bar.Min.X; x < bar.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestGradientDetector_BlankImage(t *testing.T) {
	d := NewGradientDetector()

	img := image.NewGray(image.Rect(0, 0, 100, 100))

	assert.Equal(t, 0, d.Detect(img))
}

func TestGradientDetector_TinyImage(t *testing.T) {
	d := NewGradientDetector()

	img := image.NewGray(image.Rect(0, 0, 4, 4))

	assert.Equal(t, 0, d.Detect(img))
}

func TestGradientDetector_SingleFigure(t *testing.T) {
	d := NewGradientDetector()

	img := barImage(100, 60, []image.Rectangle{
		image.Rect(20, 10, 30, 50),
	})

	assert.Equal(t, 1, d.Detect(img))
}

func TestGradientDetector_TwoFigures(t *testing.T) {
	d := NewGradientDetector()

	img := barImage(120, 60, []image.Rectangle{
		image.Rect(10, 10, 20, 50),
		image.Rect(70, 10, 80, 50),
	})

	assert.Equal(t, 2, d.Detect(img))
}

func TestGradientDetector_WideBlobIsNotAPerson(t *testing.T) {
	d := NewGradientDetector()

	// wider than tall, fails the aspect filter
	img := barImage(120, 60, []image.Rectangle{
		image.Rect(10, 20, 90, 35),
	})

	assert.Equal(t, 0, d.Detect(img))
}

func TestGradientDetector_SpeckIsIgnored(t *testing.T) {
	d := NewGradientDetector()

	// too small to clear the minimum component area
	img := barImage(100, 100, []image.Rectangle{
		image.Rect(50, 50, 52, 55),
	})

	assert.Equal(t, 0, d.Detect(img))
}
