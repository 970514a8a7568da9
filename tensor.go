package glcm

import "fmt"

// Tensor is a per-pixel grey-level co-occurrence tensor: for every pair of
// quantized levels (i, j) it holds a Width x Height plane of windowed
// co-occurrence counts. Counts are stored as float64 so the statistic
// reductions can consume them directly, but every value written by
// BuildGLCM is an integer in [0, KernelSize*KernelSize].
type Tensor struct {
	Levels int
	Width  int
	Height int

	// KernelSize is the accumulation window side the tensor was built
	// with. The entropy reduction needs it for its smoothing term.
	KernelSize int

	// planes holds Levels*Levels row-major planes, indexed i*Levels+j.
	planes [][]float64
}

// NewTensor allocates a zeroed co-occurrence tensor.
func NewTensor(levels, width, height, kernelSize int) *Tensor {
	planes := make([][]float64, levels*levels)
	for n := range planes {
		planes[n] = make([]float64, width*height)
	}
	return &Tensor{
		Levels:     levels,
		Width:      width,
		Height:     height,
		KernelSize: kernelSize,
		planes:     planes,
	}
}

// At returns the windowed count for level pair (i, j) at pixel (x, y).
func (t *Tensor) At(i, j, x, y int) float64 {
	return t.planes[i*t.Levels+j][y*t.Width+x]
}

// Set overwrites the count for level pair (i, j) at pixel (x, y).
func (t *Tensor) Set(i, j, x, y int, v float64) {
	t.planes[i*t.Levels+j][y*t.Width+x] = v
}

// Plane returns the spatial plane for level pair (i, j). The slice aliases
// the tensor's storage; mutating it mutates the tensor.
func (t *Tensor) Plane(i, j int) []float64 {
	return t.planes[i*t.Levels+j]
}

// SumAt returns the total count over all level pairs at pixel (x, y).
// For a tensor produced by BuildGLCM this is KernelSize squared at every
// pixel, since border replication keeps the window fully classified.
func (t *Tensor) SumAt(x, y int) float64 {
	var sum float64
	n := y*t.Width + x
	for _, plane := range t.planes {
		sum += plane[n]
	}
	return sum
}

// check verifies that the tensor's storage agrees with its declared
// dimensions before a reduction runs.
func (t *Tensor) check() error {
	if t.Levels < 1 || t.Width < 1 || t.Height < 1 {
		return fmt.Errorf("%w: tensor dimensions %dx%dx%dx%d",
			ErrShapeMismatch, t.Levels, t.Levels, t.Height, t.Width)
	}
	if len(t.planes) != t.Levels*t.Levels {
		return fmt.Errorf("%w: tensor has %d planes for %d levels",
			ErrShapeMismatch, len(t.planes), t.Levels)
	}
	for n, plane := range t.planes {
		if len(plane) != t.Width*t.Height {
			return fmt.Errorf("%w: plane %d has %d elements, want %d",
				ErrShapeMismatch, n, len(plane), t.Width*t.Height)
		}
	}
	return nil
}

// newFeature allocates an h x w feature plane backed by a single flat
// buffer, so reductions can run over the flat slice while callers index
// the result as rows.
func newFeature(width, height int) ([]float64, [][]float64) {
	flat := make([]float64, width*height)
	rows := make([][]float64, height)
	for y := range rows {
		rows[y] = flat[y*width : (y+1)*width]
	}
	return flat, rows
}
