// Package detect counts person-like figures in still images with a
// classical pipeline: grayscale, gradient magnitude, thresholding and
// connected-component labeling. It trades accuracy for having no native
// dependencies, which keeps the worker a single static binary.
package detect

import (
	"image"
)

// Detector counts people in a decoded image
type Detector interface {
	// Method Detect returns the number of person-like figures found in the image.
	//
	// Implementations must be safe for concurrent use and must not retain the image.
	Detect(img image.Image) int
}

const (
	// gradientThreshold separates edge pixels from background in the
	// Sobel magnitude map (0..255 scale)
	gradientThreshold = 48
	// minComponentArea drops specks and texture noise
	minComponentArea = 64
	// minAspect/maxAspect keep components that are taller than wide,
	// the rough silhouette of a standing person
	minAspect = 1.2
	maxAspect = 6.0
)

// GradientDetector finds person-like figures by segmenting high-gradient
// regions and filtering the resulting blobs by size and aspect ratio.
type GradientDetector struct {
	threshold int
	minArea   int
}

// NewGradientDetector creates a detector with the default tuning
func NewGradientDetector() *GradientDetector {
	return &GradientDetector{
		threshold: gradientThreshold,
		minArea:   minComponentArea,
	}
}

// Detect implements Detector
func (d *GradientDetector) Detect(img image.Image) int {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 8 || h < 8 {
		return 0
	}

	gray := toGray(img)
	edges := sobelMask(gray, w, h, d.threshold)

	count := 0
	for _, c := range components(edges, w, h) {
		if c.area < d.minArea {
			continue
		}
		bw := c.maxX - c.minX + 1
		bh := c.maxY - c.minY + 1
		aspect := float64(bh) / float64(bw)
		if aspect >= minAspect && aspect <= maxAspect {
			count++
		}
	}
	return count
}

// toGray flattens the image into a row-major luminance buffer
func toGray(img image.Image) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// BT.601 luma weights on 16-bit channel values
			lum := (299*r + 587*g + 114*b) / 1000
			gray[y*w+x] = uint8(lum >> 8)
		}
	}
	return gray
}

// sobelMask marks pixels whose Sobel gradient magnitude exceeds the threshold
func sobelMask(gray []uint8, w, h, threshold int) []bool {
	mask := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			tl := int(gray[(y-1)*w+x-1])
			tc := int(gray[(y-1)*w+x])
			tr := int(gray[(y-1)*w+x+1])
			ml := int(gray[y*w+x-1])
			mr := int(gray[y*w+x+1])
			bl := int(gray[(y+1)*w+x-1])
			bc := int(gray[(y+1)*w+x])
			br := int(gray[(y+1)*w+x+1])

			gx := -tl - 2*ml - bl + tr + 2*mr + br
			gy := -tl - 2*tc - tr + bl + 2*bc + br
			if gx < 0 {
				gx = -gx
			}
			if gy < 0 {
				gy = -gy
			}
			// |gx|+|gy| approximates the magnitude without a sqrt
			if (gx+gy)/4 > threshold {
				mask[y*w+x] = true
			}
		}
	}
	return mask
}

type component struct {
	area                   int
	minX, minY, maxX, maxY int
}

// components labels 4-connected regions of the mask with an iterative
// flood fill. Recursion would blow the stack on large uniform regions.
func components(mask []bool, w, h int) []component {
	visited := make([]bool, w*h)
	var result []component
	var stack []int

	for start := 0; start < w*h; start++ {
		if !mask[start] || visited[start] {
			continue
		}

		c := component{minX: w, minY: h, maxX: -1, maxY: -1}
		stack = append(stack[:0], start)
		visited[start] = true

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x, y := idx%w, idx/w
			c.area++
			if x < c.minX {
				c.minX = x
			}
			if x > c.maxX {
				c.maxX = x
			}
			if y < c.minY {
				c.minY = y
			}
			if y > c.maxY {
				c.maxY = y
			}

			if x > 0 && mask[idx-1] && !visited[idx-1] {
				visited[idx-1] = true
				stack = append(stack, idx-1)
			}
			if x < w-1 && mask[idx+1] && !visited[idx+1] {
				visited[idx+1] = true
				stack = append(stack, idx+1)
			}
			if y > 0 && mask[idx-w] && !visited[idx-w] {
				visited[idx-w] = true
				stack = append(stack, idx-w)
			}
			if y < h-1 && mask[idx+w] && !visited[idx+w] {
				visited[idx+w] = true
				stack = append(stack, idx+w)
			}
		}

		result = append(result, c)
	}
	return result
}
