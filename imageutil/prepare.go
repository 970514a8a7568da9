package imageutil

// PrepareForTexture prepares a decoded image for GLCM texture analysis.
//
// The function:
//  1. Resizes to the target width (aspect ratio preserved) when width > 0;
//     texture features are O(levels^2 * h * w), so analysis usually runs
//     on a downscaled copy.
//  2. Converts to a single 8-bit intensity plane (BT.601 luminance).
//  3. Optionally applies a Gaussian blur to suppress sensor noise before
//     quantization.
//
// Parameters:
//   - img: The decoded input image
//   - width: Target analysis width in pixels, or 0 to keep the input size
//   - blur: true to apply a 5x5 Gaussian blur after grayscale conversion
//
// Returns the intensity plane to feed to the GLCM builder.
func PrepareForTexture(img *RGBAImage, width int, blur bool) *GrayImage {
	resized := img
	if width > 0 && width != img.Width() {
		resized = ResizeToWidth(img, width, InterpolationArea)
	}

	gray := ToGrayscale(resized)
	if blur {
		gray = GaussianBlurGray(gray)
	}
	return gray
}
