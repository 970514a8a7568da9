package glcm

import "math"

// shiftLevels resamples a level plane at every pixel's position displaced
// by (dx, dy), using nearest-neighbor interpolation. Samples falling
// outside the image replicate the nearest edge pixel, so no artificial
// level-0 pairs appear along the borders. This is the same mapping as an
// affine warp translating the plane by (-dx, -dy).
func shiftLevels(gl []int, w, h int, dx, dy float64) []int {
	out := make([]int, w*h)
	for y := 0; y < h; y++ {
		sy := clampIndex(int(math.Round(float64(y)+dy)), h-1)
		row := sy * w
		for x := 0; x < w; x++ {
			sx := clampIndex(int(math.Round(float64(x)+dx)), w-1)
			out[y*w+x] = gl[row+sx]
		}
	}
	return out
}
