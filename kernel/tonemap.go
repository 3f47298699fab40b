package kernel

import "math"

// Tonemap selects the display transfer curve used by the apply pass.
type Tonemap int

const (
	// TonemapGT is the Gran Turismo piecewise curve: a toe power segment,
	// a linear midsection, and an exponential shoulder saturating at 1.
	TonemapGT Tonemap = iota

	// TonemapACES is the rational ACES filmic approximation.
	TonemapACES
)

// String returns the tonemap name.
func (t Tonemap) String() string {
	switch t {
	case TonemapGT:
		return "GT"
	case TonemapACES:
		return "ACES"
	default:
		return "Unknown"
	}
}

// GT curve parameters.
const (
	gtM = 0.22 // linear section start
	gtL = 0.4  // linear section length
	gtA = 1.0  // linear slope (contrast)
	gtC = 1.33 // toe exponent
	gtP = 1.0  // shoulder asymptote (max display brightness)
)

// GTTonemap applies the GT curve per channel. The curve is continuous at
// both breakpoints x = gtM and x = gtM + gtL, maps 0 to 0, and approaches
// gtP as x grows.
func GTTonemap(c RGB) RGB {
	return RGB{gtCurve(c.R), gtCurve(c.G), gtCurve(c.B)}
}

func gtCurve(x float32) float32 {
	const (
		s0 = gtM + gtL           // shoulder start
		s1 = gtM + gtA*gtL       // curve value at shoulder start
		c2 = gtA * gtP / (gtP - s1)
	)

	toe := gtM * pow32(x/gtM, gtC)
	linear := gtM + gtA*(x-gtM)
	shoulder := gtP - (gtP-s1)*exp32(-c2*(x-s0)/gtP)

	w0 := 1 - smoothstep32(0, gtM, x) // toe weight
	var w2 float32                    // shoulder weight
	if x >= s0 {
		w2 = 1
	}
	w1 := 1 - w0 - w2 // linear weight

	return toe*w0 + linear*w1 + shoulder*w2
}

// ACESTonemap applies the Narkowicz ACES approximation per channel:
// clamp(x(2.51x + 0.03) / (x(2.43x + 0.59) + 0.14), 0, 1).
func ACESTonemap(c RGB) RGB {
	return RGB{acesCurve(c.R), acesCurve(c.G), acesCurve(c.B)}
}

func acesCurve(x float32) float32 {
	return clamp32(x*(2.51*x+0.03)/(x*(2.43*x+0.59)+0.14), 0, 1)
}

// Gamma applies the fixed display power law pow(x, 1/2.2) per channel.
func Gamma(c RGB) RGB {
	const inv = 1 / 2.2
	return RGB{pow32(c.R, inv), pow32(c.G, inv), pow32(c.B, inv)}
}

// tonemapColor dispatches on the selected curve.
func tonemapColor(t Tonemap, c RGB) RGB {
	if t == TonemapACES {
		return ACESTonemap(c)
	}
	return GTTonemap(c)
}

func pow32(x, y float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Pow(float64(x), float64(y)))
}

func exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// smoothstep32 is the Hermite step between edges e0 and e1.
func smoothstep32(e0, e1, x float32) float32 {
	t := clamp32((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}
