package kernel

const (
	// thresholdEpsilon floors the brightness denominator so near-black
	// pixels produce a saturated zero instead of a division fault.
	thresholdEpsilon = 1e-4

	// prefilterClamp bounds the dynamic range fed into the bloom chain.
	prefilterClamp = 20.0
)

// Curve holds the derived soft-knee threshold parameters:
// x = threshold, y = threshold - knee, z = 2*knee, w = 0.25/knee.
type Curve [4]float32

// ThresholdCurve derives the curve parameters from a brightness threshold
// and knee width. knee must be positive; bloom.Params.Validate enforces
// that before a curve reaches the kernel.
func ThresholdCurve(threshold, knee float32) Curve {
	return Curve{threshold, threshold - knee, 2 * knee, 0.25 / knee}
}

// QuadraticThreshold attenuates colors at or below the threshold toward
// zero along a quadratic knee, passing bright colors through near-unscaled.
// The returned scale factor is always in [0, 1].
func QuadraticThreshold(c RGB, curve Curve) RGB {
	brightness := c.MaxComponent()

	rq := clamp32(brightness-curve[1], 0, curve[2])
	rq = curve[3] * rq * rq

	scale := max(rq, brightness-curve[0]) / max(brightness, thresholdEpsilon)
	return c.Scale(scale)
}

// Prefilter clamps the incoming HDR color and applies the threshold curve.
// Used by the prefilter pass that seeds mip 0 of the bloom pyramid.
func Prefilter(c RGB, curve Curve) RGB {
	return QuadraticThreshold(clampRGB(c, prefilterClamp), curve)
}
