package kernel

// Mode selects the behavior of one kernel dispatch.
type Mode int

const (
	// ModePrefilter gates the HDR scene color through the soft-knee
	// threshold curve into mip 0 of the bloom pyramid.
	ModePrefilter Mode = iota

	// ModeDownsample box-filters a bloom mip into the next coarser mip.
	ModeDownsample

	// ModeUpsampleFirst seeds the upsample chain at the coarsest mip,
	// combining a tent-filtered read with the same level's content.
	ModeUpsampleFirst

	// ModeUpsample tent-filters a coarser upsampled mip and combines it
	// with the downsample chain's content at the current level.
	ModeUpsample

	// ModeApply merges the accumulated bloom into the base scene color,
	// tonemaps, and gamma-encodes the final pixel.
	ModeApply

	modeCount
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePrefilter:
		return "Prefilter"
	case ModeDownsample:
		return "Downsample"
	case ModeUpsampleFirst:
		return "UpsampleFirst"
	case ModeUpsample:
		return "Upsample"
	case ModeApply:
		return "Apply"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the five dispatch modes.
func (m Mode) Valid() bool {
	return m >= ModePrefilter && m < modeCount
}
