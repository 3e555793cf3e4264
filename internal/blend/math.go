package blend

import "math"

// mix returns round(d*(1-a) + s*255*a), clamped to a byte.
// a must already be clamped to [0, 1].
func mix(d byte, s, a float64) byte {
	return roundByte(float64(d)*(1-a) + clampUnit(s)*255*a)
}

// unitToByte maps [0, 1] to [0, 255] with round-to-nearest.
func unitToByte(x float64) byte {
	return roundByte(clampUnit(x) * 255)
}

func roundByte(x float64) byte {
	v := math.Round(x)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

// clampUnit restricts x to [0, 1]. NaN maps to 0.
func clampUnit(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
