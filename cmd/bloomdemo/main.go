// Command bloomdemo applies the bloom post-process to an image file.
//
// The input is decoded as 8-bit sRGB, lifted to linear HDR with an optional
// exposure boost so bright regions cross the threshold, processed through
// the bloom pipeline, and written back as PNG.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/bloom"
	"github.com/gogpu/bloom/hdr"
	"github.com/gogpu/bloom/kernel"

	// Register the wgpu backend; the pipeline falls back to software
	// execution when no GPU is available.
	_ "github.com/gogpu/bloom/backend/wgpu"
)

func main() {
	var (
		input     = flag.String("input", "", "input image (PNG or JPEG)")
		output    = flag.String("output", "bloom.png", "output PNG file")
		threshold = flag.Float64("threshold", 1.0, "brightness threshold")
		knee      = flag.Float64("knee", 0.2, "soft threshold knee")
		intensity = flag.Float64("intensity", 1.0, "bloom intensity")
		combine   = flag.Float64("combine", 0.0, "combine constant in [0,1]: 0 additive, 1 replace")
		exposure  = flag.Float64("exposure", 4.0, "linear exposure applied to the input")
		width     = flag.Int("width", 0, "resize the input to this width (0 keeps the source size)")
		height    = flag.Int("height", 0, "resize the input to this height (0 keeps the source size)")
		mips      = flag.Int("mips", bloom.DefaultMipCount, "pyramid depth")
		tonemap   = flag.String("tonemap", "gt", "tonemap curve: gt or aces")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		bloom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	tm := kernel.TonemapGT
	if *tonemap == "aces" {
		tm = kernel.TonemapACES
	}

	src, err := loadImage(*input)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}
	if *width > 0 && *height > 0 {
		src = hdr.Fit(src, *width, *height)
	}

	scene, err := hdr.FromImage(src, float32(*exposure))
	if err != nil {
		log.Fatalf("Failed to convert input: %v", err)
	}

	p, err := bloom.New(scene.Width(), scene.Height(),
		bloom.WithMipCount(*mips),
		bloom.WithTonemap(tm),
		bloom.WithParams(bloom.Params{
			Threshold:       float32(*threshold),
			Knee:            float32(*knee),
			Intensity:       float32(*intensity),
			CombineConstant: float32(*combine),
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}
	defer p.Close()

	result, err := p.Process(scene)
	if err != nil {
		log.Fatalf("Failed to process: %v", err)
	}

	if err := savePNG(*output, hdr.ToImageEncoded(result)); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Bloom saved to %s (%dx%d, %d mips, %s backend)\n",
		*output, p.Width(), p.Height(), p.MipCount(), p.Backend())
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
