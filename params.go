package bloom

import (
	"errors"
	"fmt"

	"github.com/gogpu/bloom/kernel"
)

// Parameter validation errors.
var (
	// ErrInvalidThreshold is returned for a negative brightness threshold.
	ErrInvalidThreshold = errors.New("bloom: threshold must be >= 0")

	// ErrInvalidKnee is returned for a non-positive knee; the curve
	// derivation divides by the knee.
	ErrInvalidKnee = errors.New("bloom: knee must be > 0")

	// ErrInvalidIntensity is returned for a negative bloom intensity.
	ErrInvalidIntensity = errors.New("bloom: intensity must be >= 0")

	// ErrInvalidCombineConstant is returned when the combine constant is
	// outside [0, 1].
	ErrInvalidCombineConstant = errors.New("bloom: combine constant must be in [0, 1]")
)

// Params holds the per-frame tunables of the effect.
type Params struct {
	// Threshold is the brightness above which pixels contribute fully
	// to the bloom, in linear scene units.
	Threshold float32

	// Knee is the width of the soft transition below the threshold.
	// Must be positive.
	Knee float32

	// Intensity scales the bloom contribution in the final composite.
	Intensity float32

	// CombineConstant interpolates the composite behavior between
	// pure-additive (0) and pure-replace (1).
	CombineConstant float32
}

// DefaultParams returns the stock look: threshold 1.0 with a 0.2 knee,
// full-strength additive bloom.
func DefaultParams() Params {
	return Params{
		Threshold:       1.0,
		Knee:            0.2,
		Intensity:       1.0,
		CombineConstant: 0.0,
	}
}

// Validate reports the first invalid field, or nil.
func (p Params) Validate() error {
	if p.Threshold < 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidThreshold, p.Threshold)
	}
	if p.Knee <= 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidKnee, p.Knee)
	}
	if p.Intensity < 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidIntensity, p.Intensity)
	}
	if p.CombineConstant < 0 || p.CombineConstant > 1 {
		return fmt.Errorf("%w (got %v)", ErrInvalidCombineConstant, p.CombineConstant)
	}
	return nil
}

// uniforms derives the kernel parameter block from the params.
func (p Params) uniforms(tm kernel.Tonemap) kernel.Uniforms {
	return kernel.Uniforms{
		Curve:           kernel.ThresholdCurve(p.Threshold, p.Knee),
		Intensity:       p.Intensity,
		CombineConstant: p.CombineConstant,
		Tonemap:         tm,
	}
}
