package kernel

// Combine merges a new bloom contribution into existing content. The
// constant c interpolates between composite laws:
//
//	c = 0: existing + new (pure additive bloom)
//	c = 1: existing       (pass-through, contribution discarded)
//
// The result is affine in c, giving artistic control between
// physically-additive and energy-conserving behavior.
func Combine(existing, contribution RGB, c float32) RGB {
	return existing.Add(contribution.Scale(1 - c))
}
