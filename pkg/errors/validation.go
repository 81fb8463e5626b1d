package errors

import "math"

// MaxWidth bounds the flag width. Beyond it raster sinks would allocate
// gigabytes and the float64 geometry stops being meaningful for output.
const MaxWidth = 100000.0

// MaxScale bounds the raster scale factor.
const MaxScale = 16.0

// MaxSupersample bounds the raster supersampling factor.
const MaxSupersample = 16

// ValidateWidth checks that w is a usable flag width: finite, strictly
// positive and no larger than [MaxWidth].
func ValidateWidth(w float64) error {
	switch {
	case math.IsNaN(w):
		return New(ErrCodeInvalidWidth, "width must be a number, got NaN")
	case math.IsInf(w, 0):
		return New(ErrCodeInvalidWidth, "width must be finite, got %v", w)
	case w <= 0:
		return New(ErrCodeInvalidWidth, "width must be positive, got %v", w)
	case w > MaxWidth:
		return New(ErrCodeInvalidWidth, "width too large (max %.0f), got %v", MaxWidth, w)
	}
	return nil
}

// ValidateScale checks a raster scale factor.
func ValidateScale(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return New(ErrCodeInvalidScale, "scale must be a positive number, got %v", s)
	}
	if s > MaxScale {
		return New(ErrCodeInvalidScale, "scale too large (max %.0f), got %v", MaxScale, s)
	}
	return nil
}

// ValidateSupersample checks a raster supersampling factor. Zero is allowed
// and means "use the default".
func ValidateSupersample(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidScale, "supersample must not be negative, got %d", n)
	}
	if n > MaxSupersample {
		return New(ErrCodeInvalidScale, "supersample too large (max %d), got %d", MaxSupersample, n)
	}
	return nil
}
