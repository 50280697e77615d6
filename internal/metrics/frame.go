package metrics

import "image"

// FrameBrightness is the mean luma of img in [0, 255].
func FrameBrightness(img *image.RGBA) float64 {
	if img == nil {
		return 0
	}
	n := len(img.Pix) / 4
	if n == 0 {
		return 0
	}
	var sum int
	for i := 0; i+2 < len(img.Pix); i += 4 {
		sum += luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
	}
	return float64(sum) / float64(n)
}

// FrameCoverage is the fraction of pixels whose luma exceeds threshold.
func FrameCoverage(img *image.RGBA, threshold int) float64 {
	if img == nil {
		return 0
	}
	n := len(img.Pix) / 4
	if n == 0 {
		return 0
	}
	lit := 0
	for i := 0; i+2 < len(img.Pix); i += 4 {
		if luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) > threshold {
			lit++
		}
	}
	return float64(lit) / float64(n)
}

func luma(r, g, b uint8) int {
	return (299*int(r) + 587*int(g) + 114*int(b)) / 1000
}
