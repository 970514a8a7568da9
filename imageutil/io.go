package imageutil

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/tiff" // Register TIFF decoder
)

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, and TIFF formats.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return RGBAImageFromImage(img), nil
}

// LoadGrayImage loads an image and converts it to a single intensity
// plane, the input form expected by the GLCM builder.
func LoadGrayImage(path string) (*GrayImage, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return ToGrayscale(img), nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, img)
}

// SaveGrayImage saves a grayscale image as PNG to the specified path.
func SaveGrayImage(img *GrayImage, path string) error {
	return SavePNG(img.Gray, path)
}
