package vmath

import "math"

func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func Clamp(x, lo, hi float32) float32 {
	return max(lo, min(hi, x))
}

// Sgn returns -1, 0 or 1.
func Sgn(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// PingPong bounces t between 0 and length.
func PingPong(t, length float32) float32 {
	t = Repeat(t, length*2)
	return length - Abs(t-length)
}

// Repeat wraps t into [0, length).
func Repeat(t, length float32) float32 {
	return Clamp(t-float32(math.Floor(float64(t/length)))*length, 0, length)
}

func SmoothStep(t float32) float32 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

func SmootherStep(t float32) float32 {
	t = Clamp(t, 0, 1)
	return t * t * t * (t*(t*6-15) + 10)
}

// NearlyEqual compares with an absolute tolerance.
func NearlyEqual(a, b, eps float32) bool {
	return Abs(a-b) <= eps
}
