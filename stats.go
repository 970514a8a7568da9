package glcm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wbrown/glcm/imageutil"
)

// The statistic reductions treat the tensor as raw windowed counts; they
// are not normalized to probabilities. Each reduction is a weighted sum
// over the level-pair axes producing one float64 value per pixel.

// Mean computes the GLCM mean: sum over (i, j) of count*i / Levels^2.
func (t *Tensor) Mean() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	flat, rows := newFeature(t.Width, t.Height)
	t.accumMean(flat)
	return rows, nil
}

// accumMean adds the mean reduction into a flat feature plane.
func (t *Tensor) accumMean(dst []float64) {
	inv := 1 / float64(t.Levels*t.Levels)
	for i := 0; i < t.Levels; i++ {
		if i == 0 {
			continue // zero weight
		}
		for j := 0; j < t.Levels; j++ {
			floats.AddScaled(dst, float64(i)*inv, t.planes[i*t.Levels+j])
		}
	}
}

// Std computes the GLCM standard deviation. The mean plane is recomputed
// internally, then every weighted plane's squared deviation from it is
// accumulated and square-rooted.
func (t *Tensor) Std() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	mean := make([]float64, t.Width*t.Height)
	t.accumMean(mean)

	flat, rows := newFeature(t.Width, t.Height)
	for i := 0; i < t.Levels; i++ {
		for j := 0; j < t.Levels; j++ {
			plane := t.planes[i*t.Levels+j]
			for n, v := range plane {
				d := v*float64(i) - mean[n]
				flat[n] += d * d
			}
		}
	}
	for n, v := range flat {
		flat[n] = math.Sqrt(v)
	}
	return rows, nil
}

// Contrast computes the GLCM contrast: sum of count*(i-j)^2.
// It is zero everywhere on a constant-intensity image.
func (t *Tensor) Contrast() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	flat, rows := newFeature(t.Width, t.Height)
	for i := 0; i < t.Levels; i++ {
		for j := 0; j < t.Levels; j++ {
			if i == j {
				continue // zero weight
			}
			d := float64(i - j)
			floats.AddScaled(flat, d*d, t.planes[i*t.Levels+j])
		}
	}
	return rows, nil
}

// Dissimilarity computes the GLCM dissimilarity: sum of count*|i-j|.
func (t *Tensor) Dissimilarity() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	flat, rows := newFeature(t.Width, t.Height)
	for i := 0; i < t.Levels; i++ {
		for j := 0; j < t.Levels; j++ {
			if i == j {
				continue
			}
			floats.AddScaled(flat, math.Abs(float64(i-j)), t.planes[i*t.Levels+j])
		}
	}
	return rows, nil
}

// Homogeneity computes the GLCM homogeneity: sum of count/(1+(i-j)^2).
// On a constant-intensity image every count sits on the diagonal, so the
// result is the full window count, KernelSize squared.
func (t *Tensor) Homogeneity() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	flat, rows := newFeature(t.Width, t.Height)
	for i := 0; i < t.Levels; i++ {
		for j := 0; j < t.Levels; j++ {
			d := float64(i - j)
			floats.AddScaled(flat, 1/(1+d*d), t.planes[i*t.Levels+j])
		}
	}
	return rows, nil
}

// Energy computes the GLCM energy: the square root of the sum of squared
// counts (the angular second moment).
func (t *Tensor) Energy() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	flat, rows := newFeature(t.Width, t.Height)
	tmp := make([]float64, t.Width*t.Height)
	for _, plane := range t.planes {
		copy(tmp, plane)
		floats.Mul(tmp, plane)
		floats.Add(flat, tmp)
	}
	for n, v := range flat {
		flat[n] = math.Sqrt(v)
	}
	return rows, nil
}

// Maximum computes the per-pixel maximum count over all level pairs.
// Values lie in [0, KernelSize*KernelSize].
func (t *Tensor) Maximum() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	flat, rows := newFeature(t.Width, t.Height)
	copy(flat, t.planes[0])
	for _, plane := range t.planes[1:] {
		for n, v := range plane {
			if v > flat[n] {
				flat[n] = v
			}
		}
	}
	return rows, nil
}

// Entropy computes the GLCM entropy: sum of -p*ln(p) where p is the count
// normalized by the per-pixel total, plus an additive smoothing term of
// 1/KernelSize^2 that keeps the logarithm finite for empty cells.
//
// The smoothing term means the p values do not sum to one, so the result
// is not a Shannon entropy and can exceed the classical entropy range.
// The formula is kept as-is for output compatibility with existing
// consumers of these features.
func (t *Tensor) Entropy() ([][]float64, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if t.KernelSize < 1 {
		return nil, fmt.Errorf("%w: entropy needs kernel size >= 1, got %d",
			ErrInvalidParameter, t.KernelSize)
	}
	total := make([]float64, t.Width*t.Height)
	for _, plane := range t.planes {
		floats.Add(total, plane)
	}

	smooth := 1 / float64(t.KernelSize*t.KernelSize)
	flat, rows := newFeature(t.Width, t.Height)
	for _, plane := range t.planes {
		for n, v := range plane {
			p := v/total[n] + smooth
			flat[n] -= p * math.Log(p)
		}
	}
	return rows, nil
}

// The functions below mirror the one-call-per-statistic surface of the
// original API: each builds the tensor internally and reduces it. Callers
// needing several statistics for the same image should call BuildGLCM once
// and use the Tensor methods to avoid rebuilding it.

// Mean computes the GLCM mean feature image.
func Mean(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Mean()
}

// Std computes the GLCM standard deviation feature image.
func Std(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Std()
}

// Contrast computes the GLCM contrast feature image.
func Contrast(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Contrast()
}

// Dissimilarity computes the GLCM dissimilarity feature image.
func Dissimilarity(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Dissimilarity()
}

// Homogeneity computes the GLCM homogeneity feature image.
func Homogeneity(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Homogeneity()
}

// Energy computes the GLCM energy feature image.
func Energy(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Energy()
}

// Maximum computes the per-pixel maximum co-occurrence count.
func Maximum(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Maximum()
}

// Entropy computes the GLCM entropy feature image.
func Entropy(img *imageutil.GrayImage, p Params) ([][]float64, error) {
	t, err := BuildGLCM(img, p)
	if err != nil {
		return nil, err
	}
	return t.Entropy()
}

// Statistics returns the names of all supported texture statistics in
// their conventional order.
func Statistics() []string {
	return []string{
		"mean", "std", "contrast", "dissimilarity",
		"homogeneity", "energy", "max", "entropy",
	}
}

// Compute reduces a built tensor by statistic name. Unknown names return
// ErrInvalidParameter.
func (t *Tensor) Compute(statistic string) ([][]float64, error) {
	switch statistic {
	case "mean":
		return t.Mean()
	case "std":
		return t.Std()
	case "contrast":
		return t.Contrast()
	case "dissimilarity":
		return t.Dissimilarity()
	case "homogeneity":
		return t.Homogeneity()
	case "energy":
		return t.Energy()
	case "max":
		return t.Maximum()
	case "entropy":
		return t.Entropy()
	default:
		return nil, fmt.Errorf("%w: unknown statistic %q",
			ErrInvalidParameter, statistic)
	}
}
