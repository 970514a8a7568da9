// Package glcm computes per-pixel grey-level co-occurrence matrices and
// the texture statistics derived from them.
//
// A GLCM is a histogram of how often pairs of quantized intensity levels
// occur at a fixed spatial offset. This package computes one such
// histogram per pixel, accumulated over a square window around the pixel,
// and reduces the resulting tensor to dense feature images (mean, std,
// contrast, dissimilarity, homogeneity, energy, maximum, entropy).
//
// The input is a decoded single-channel 8-bit image; the output is one
// float64 plane per statistic, the same size as the input. Image decoding,
// resizing, and visualization live in the imageutil and render packages.
package glcm

import (
	"errors"
	"fmt"
	"math"

	"github.com/wbrown/glcm/imageutil"
)

var (
	// ErrInvalidParameter indicates a parameter that fails validation,
	// such as a non-positive level count or an inverted intensity range.
	ErrInvalidParameter = errors.New("glcm: invalid parameter")

	// ErrShapeMismatch indicates an input whose dimensions do not line up,
	// such as a zero-sized image or a tensor whose planes disagree with
	// its declared level count.
	ErrShapeMismatch = errors.New("glcm: shape mismatch")
)

// Params holds the parameters for building a GLCM.
//
// VMin and VMax bound the intensity range that is quantized; intensities
// outside [VMin, VMax] are clamped to the first or last bin rather than
// rejected, so callers may pass images with outliers. Levels is the number
// of equal-width quantization bins. KernelSize is the side of the square
// accumulation window and should be odd; even sizes are accepted, with the
// window center biased toward the lower-index corner. Distance and Angle
// define the pixel-pair offset: Angle is in degrees, 0 pointing along +x,
// positive angles rotating toward -y in image coordinates.
type Params struct {
	VMin       int
	VMax       int
	Levels     int
	KernelSize int
	Distance   float64
	Angle      float64
}

// DefaultParams returns the standard parameter set: the full 8-bit range
// quantized to 8 levels, a 5x5 window, and a one-pixel horizontal offset.
func DefaultParams() Params {
	return Params{
		VMin:       0,
		VMax:       255,
		Levels:     8,
		KernelSize: 5,
		Distance:   1.0,
		Angle:      0.0,
	}
}

// Validate checks the parameters eagerly, before any computation.
func (p Params) Validate() error {
	if p.Levels < 1 {
		return fmt.Errorf("%w: levels must be >= 1, got %d",
			ErrInvalidParameter, p.Levels)
	}
	if p.KernelSize < 1 {
		return fmt.Errorf("%w: kernel size must be >= 1, got %d",
			ErrInvalidParameter, p.KernelSize)
	}
	if p.Distance <= 0 {
		return fmt.Errorf("%w: distance must be > 0, got %g",
			ErrInvalidParameter, p.Distance)
	}
	if p.VMin >= p.VMax {
		return fmt.Errorf("%w: vmin (%d) must be less than vmax (%d)",
			ErrInvalidParameter, p.VMin, p.VMax)
	}
	return nil
}

// checkImage validates the input image shape.
func checkImage(img *imageutil.GrayImage) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrShapeMismatch)
	}
	if img.Width() < 1 || img.Height() < 1 {
		return fmt.Errorf("%w: image has zero dimension (%dx%d)",
			ErrShapeMismatch, img.Width(), img.Height())
	}
	return nil
}

// BuildGLCM computes the per-pixel grey-level co-occurrence tensor of an
// image.
//
// The image is quantized into p.Levels equal-width bins over
// [p.VMin, p.VMax+1). A shifted copy of the level map is sampled at the
// offset derived from (p.Distance, p.Angle) using nearest-neighbor
// interpolation with border replication. The tensor entry (i, j) at pixel
// (x, y) is the number of positions inside the KernelSize window centered
// on (x, y) whose level pair is (i, j); window positions beyond the image
// bounds replicate the nearest edge pixel, so the counts at every pixel
// sum to KernelSize squared.
//
// The result is deterministic for identical inputs.
func BuildGLCM(img *imageutil.GrayImage, p Params) (*Tensor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkImage(img); err != nil {
		return nil, err
	}

	w, h := img.Width(), img.Height()
	gl1 := quantizeLevels(img, p)
	dx, dy := offsetVector(p.Distance, p.Angle)
	gl2 := shiftLevels(gl1, w, h, dx, dy)

	t := NewTensor(p.Levels, w, h, p.KernelSize)

	// One pass per pixel over the window, classifying each in-window
	// position by its (gl1, gl2) level pair. This is numerically
	// identical to convolving a per-pair indicator mask with an
	// all-ones kernel, without materializing Levels^2 masks.
	k := p.KernelSize
	half := k / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := y*w + x
			for ky := 0; ky < k; ky++ {
				sy := clampIndex(y+ky-half, h-1)
				row := sy * w
				for kx := 0; kx < k; kx++ {
					sx := clampIndex(x+kx-half, w-1)
					i := gl1[row+sx]
					j := gl2[row+sx]
					t.planes[i*p.Levels+j][n]++
				}
			}
		}
	}
	return t, nil
}

// quantizeLevels buckets every intensity into one of p.Levels equal-width
// bins spanning [p.VMin, p.VMax+1). Out-of-range intensities clamp to the
// first or last bin. The result is a row-major plane of levels in
// [0, p.Levels).
func quantizeLevels(img *imageutil.GrayImage, p Params) []int {
	w, h := img.Width(), img.Height()
	span := p.VMax + 1 - p.VMin
	out := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Integer floor division; intensities below VMin go
			// negative and clamp to bin 0.
			lvl := (int(img.GrayAt(x, y).Y) - p.VMin) * p.Levels / span
			if lvl < 0 {
				lvl = 0
			} else if lvl > p.Levels-1 {
				lvl = p.Levels - 1
			}
			out[y*w+x] = lvl
		}
	}
	return out
}

// offsetVector converts a (distance, angle) offset to pixel units.
// The angle is in degrees; the sine is negated because the image row axis
// increases downward.
func offsetVector(distance, angleDegrees float64) (dx, dy float64) {
	rad := angleDegrees * math.Pi / 180
	dx = distance * math.Cos(rad)
	dy = distance * math.Sin(-rad)
	return dx, dy
}

// clampIndex clamps v to [0, max].
func clampIndex(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
