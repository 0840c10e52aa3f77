package checkin

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // registered capture formats
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// PrepOptions bounds the encoded photo payload sent to the classifier.
type PrepOptions struct {
	// MaxDimension caps the longer image edge in pixels.
	MaxDimension int
	// MaxBytes is the encoded payload ceiling.
	MaxBytes int
	// StartQuality is the initial JPEG quality.
	StartQuality int
	// QualityStep is subtracted from quality on each oversized attempt.
	QualityStep int
	// QualityFloor is the minimum quality; the floor-quality encoding is
	// returned even if it still exceeds MaxBytes.
	QualityFloor int
}

// DefaultPrepOptions returns the standard payload bounds.
func DefaultPrepOptions() PrepOptions {
	return PrepOptions{
		MaxDimension: 512,
		MaxBytes:     500 * 1024,
		StartQuality: 85,
		QualityStep:  10,
		QualityFloor: 40,
	}
}

// normalize fills zero fields with defaults.
func (o PrepOptions) normalize() PrepOptions {
	defaults := DefaultPrepOptions()
	if o.MaxDimension <= 0 {
		o.MaxDimension = defaults.MaxDimension
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaults.MaxBytes
	}
	if o.StartQuality <= 0 {
		o.StartQuality = defaults.StartQuality
	}
	if o.QualityStep <= 0 {
		o.QualityStep = defaults.QualityStep
	}
	if o.QualityFloor <= 0 {
		o.QualityFloor = defaults.QualityFloor
	}
	return o
}

// PrepareImage downscales a captured photo to the bounded dimension and
// re-encodes it as JPEG, stepping down quality until the payload is under
// the ceiling or the quality floor is reached, whichever comes first.
func PrepareImage(data []byte, opts PrepOptions) ([]byte, error) {
	opts = opts.normalize()

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	src = downscale(src, opts.MaxDimension)

	var buf bytes.Buffer
	quality := opts.StartQuality
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		if buf.Len() <= opts.MaxBytes || quality <= opts.QualityFloor {
			break
		}
		quality -= opts.QualityStep
		if quality < opts.QualityFloor {
			quality = opts.QualityFloor
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// downscale resizes so the longer edge is at most maxDim, preserving
// aspect ratio. Images already within bounds pass through untouched.
func downscale(src image.Image, maxDim int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	var dw, dh int
	if w >= h {
		dw = maxDim
		dh = h * maxDim / w
	} else {
		dh = maxDim
		dw = w * maxDim / h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
