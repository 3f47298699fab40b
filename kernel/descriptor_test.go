package kernel

import (
	"errors"
	"testing"
)

func TestDescriptorRoundTrip(t *testing.T) {
	tests := []Descriptor{
		{Mode: ModePrefilter, LOD: 0, Input: 3, Output: 0, Bloom: 0},
		{Mode: ModeDownsample, LOD: 6, Input: 0, Output: 13, Bloom: 0},
		{Mode: ModeUpsampleFirst, LOD: 5, Input: 0, Output: 20, Bloom: 0},
		{Mode: ModeUpsample, LOD: 3, Input: 0, Output: 17, Bloom: 2},
		{Mode: ModeApply, LOD: 0, Input: 3, Output: 21, Bloom: 2},
		{Mode: ModeApply, LOD: 127, Input: 127, Output: 127, Bloom: 127},
	}

	for _, d := range tests {
		word, err := d.Pack()
		if err != nil {
			t.Fatalf("Pack(%+v): %v", d, err)
		}
		got, err := Decode(word)
		if err != nil {
			t.Fatalf("Decode(%#x): %v", word, err)
		}
		if got != d {
			t.Errorf("Decode(Pack(%+v)) = %+v", d, got)
		}

		// And re-encoding reproduces the word exactly.
		word2, err := got.Pack()
		if err != nil {
			t.Fatalf("re-Pack: %v", err)
		}
		if word2 != word {
			t.Errorf("re-encode = %#x, want %#x", word2, word)
		}
	}
}

func TestDescriptorBitLayout(t *testing.T) {
	// Matches the host loop's hand-packed form:
	// mode<<28 | lod<<21 | input<<14 | output<<7 | bloom.
	d := Descriptor{Mode: ModeUpsample, LOD: 4, Input: 0, Output: 18, Bloom: 2}
	word, err := d.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want := uint32(3)<<28 | 4<<21 | 0<<14 | 18<<7 | 2
	if word != want {
		t.Errorf("Pack = %#x, want %#x", word, want)
	}
}

func TestPackFieldRange(t *testing.T) {
	tests := []Descriptor{
		{Mode: ModePrefilter, LOD: 128},
		{Mode: ModePrefilter, LOD: -1},
		{Mode: ModePrefilter, Input: 128},
		{Mode: ModePrefilter, Output: 200},
		{Mode: ModePrefilter, Bloom: -3},
	}

	for _, d := range tests {
		if _, err := d.Pack(); !errors.Is(err, ErrFieldRange) {
			t.Errorf("Pack(%+v) err = %v, want ErrFieldRange", d, err)
		}
	}
}

func TestPackInvalidMode(t *testing.T) {
	d := Descriptor{Mode: Mode(9)}
	if _, err := d.Pack(); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Pack err = %v, want ErrInvalidMode", err)
	}
}

func TestDecodeInvalidMode(t *testing.T) {
	// Mode field 5 is beyond the last dispatch mode.
	word := uint32(5) << 28
	if _, err := Decode(word); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Decode err = %v, want ErrInvalidMode", err)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModePrefilter, "Prefilter"},
		{ModeDownsample, "Downsample"},
		{ModeUpsampleFirst, "UpsampleFirst"},
		{ModeUpsample, "Upsample"},
		{ModeApply, "Apply"},
		{Mode(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}
