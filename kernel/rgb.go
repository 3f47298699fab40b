package kernel

// RGB is a linear-light HDR color. The kernel operates on RGB only;
// alpha passes through the pipeline untouched.
type RGB struct {
	R, G, B float32
}

// Add returns c + o.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale returns the color scaled by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// MaxComponent returns the brightness proxy max(r, g, b).
func (c RGB) MaxComponent() float32 {
	return max(c.R, max(c.G, c.B))
}

// clampRGB limits every component to [0, limit].
func clampRGB(c RGB, limit float32) RGB {
	return RGB{
		R: clamp32(c.R, 0, limit),
		G: clamp32(c.G, 0, limit),
		B: clamp32(c.B, 0, limit),
	}
}

// clamp32 clamps v to [lo, hi].
func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
