package meistercharts

import "math"

// SnapCorrection returns the smallest offset that moves translation onto the
// nearest whole pixel, or 0 when snapping is disabled.
//
// The remainder is taken with floored modulo so negative translations round
// to their nearest pixel as well: -10.7 is corrected by -0.3 to -11.
func SnapCorrection(translation float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	remainder := translation - math.Floor(translation)
	if remainder < 0.5 {
		return -remainder
	}
	return 1 - remainder
}

// SnapCorrectionPhysical is SnapCorrection for a logical translation that
// has to land on a device pixel. The result is in logical pixels.
func SnapCorrectionPhysical(translation, devicePixelRatio float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	ratio := validRatio(devicePixelRatio)
	return SnapCorrection(translation*ratio, true) / ratio
}

// SnapPosition rounds a logical coordinate to the nearest device pixel.
func SnapPosition(value, devicePixelRatio float64) float64 {
	ratio := validRatio(devicePixelRatio)
	return math.Round(value*ratio) / ratio
}

// SnapSize rounds a logical extent up to whole device pixels. Filled regions
// are never shrunk: a gap is more visible than a fraction of a pixel of
// overdraw.
func SnapSize(value, devicePixelRatio float64) float64 {
	ratio := validRatio(devicePixelRatio)
	return math.Ceil(value*ratio) / ratio
}

// PhysicalSize converts a logical size to whole device pixels, rounding up.
func PhysicalSize(s Size, devicePixelRatio float64) (w, h int) {
	ratio := validRatio(devicePixelRatio)
	return int(math.Ceil(s.Width * ratio)), int(math.Ceil(s.Height * ratio))
}

func validRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return r
}
