// Package render turns texture feature planes into viewable images: it
// normalizes float64 feature planes to 8-bit grayscale and composes
// labeled contact sheets of several features side by side.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"

	"github.com/wbrown/glcm/imageutil"
)

// Feature pairs a statistic name with its computed feature plane.
type Feature struct {
	Name  string
	Plane [][]float64
}

// Normalize stretches a feature plane to the full 8-bit range. The
// minimum maps to 0 and the maximum to 255; a constant plane maps to 0.
// Feature magnitudes depend on the kernel size and statistic, so a fixed
// scale would render most features nearly black.
func Normalize(plane [][]float64) *imageutil.GrayImage {
	height := len(plane)
	width := 0
	if height > 0 {
		width = len(plane[0])
	}
	img := imageutil.NewGrayImage(width, height)
	if width == 0 || height == 0 {
		return img
	}

	lo, hi := plane[0][0], plane[0][0]
	for _, row := range plane {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	span := hi - lo
	if span == 0 {
		return img
	}
	for y, row := range plane {
		for x, v := range row {
			img.Pix[y*img.Stride+x] = uint8(math.Round((v - lo) / span * 255))
		}
	}
	return img
}

// Sheet composes a grid of normalized feature planes into one image,
// optionally labeling each tile with its statistic name.
type Sheet struct {
	// Columns is the number of tiles per row.
	Columns int
	// Padding is the gap between tiles in pixels.
	Padding int

	font       *truetype.Font
	fontSize   float64
	labelSpace int
}

// SheetOption is a functional option for configuring a Sheet.
type SheetOption func(*Sheet)

// NewSheet creates a contact sheet layout with the given options.
// Defaults: 4 columns, 4 pixel padding, no labels.
func NewSheet(opts ...SheetOption) *Sheet {
	s := &Sheet{
		Columns:  4,
		Padding:  4,
		fontSize: 12,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithColumns sets the number of tiles per row.
func WithColumns(n int) SheetOption {
	return func(s *Sheet) {
		if n > 0 {
			s.Columns = n
		}
	}
}

// WithPadding sets the gap between tiles in pixels.
func WithPadding(px int) SheetOption {
	return func(s *Sheet) {
		if px >= 0 {
			s.Padding = px
		}
	}
}

// WithFont enables statistic labels drawn with the given TrueType font.
func WithFont(f *truetype.Font) SheetOption {
	return func(s *Sheet) {
		s.font = f
		if s.labelSpace == 0 {
			s.labelSpace = int(s.fontSize) + 6
		}
	}
}

// WithFontSize sets the label size in points.
func WithFontSize(size float64) SheetOption {
	return func(s *Sheet) {
		if size > 0 {
			s.fontSize = size
			if s.font != nil {
				s.labelSpace = int(size) + 6
			}
		}
	}
}

// Render normalizes every feature plane and lays the tiles out in a grid.
// All planes must have identical dimensions.
func (s *Sheet) Render(features []Feature) (*imageutil.RGBAImage, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("render: no features to lay out")
	}

	tileH := len(features[0].Plane)
	tileW := 0
	if tileH > 0 {
		tileW = len(features[0].Plane[0])
	}
	if tileW == 0 || tileH == 0 {
		return nil, fmt.Errorf("render: feature %q has zero size", features[0].Name)
	}
	for _, f := range features[1:] {
		if len(f.Plane) != tileH || len(f.Plane[0]) != tileW {
			return nil, fmt.Errorf("render: feature %q is %dx%d, want %dx%d",
				f.Name, len(f.Plane[0]), len(f.Plane), tileW, tileH)
		}
	}

	cols := s.Columns
	if cols > len(features) {
		cols = len(features)
	}
	rows := (len(features) + cols - 1) / cols

	cellW := tileW + s.Padding
	cellH := tileH + s.labelSpace + s.Padding
	sheet := imageutil.NewRGBAImage(cols*cellW+s.Padding, rows*cellH+s.Padding)

	for n, f := range features {
		col, row := n%cols, n/cols
		x0 := s.Padding + col*cellW
		y0 := s.Padding + row*cellH

		if s.font != nil {
			if err := s.drawLabel(sheet, f.Name, x0, y0); err != nil {
				return nil, err
			}
		}

		tile := imageutil.GrayscaleToRGBA(Normalize(f.Plane))
		dst := image.Rect(x0, y0+s.labelSpace, x0+tileW, y0+s.labelSpace+tileH)
		draw.Draw(sheet.RGBA, dst, tile.RGBA, image.Point{}, draw.Src)
	}
	return sheet, nil
}

// drawLabel renders a statistic name above its tile.
func (s *Sheet) drawLabel(dst *imageutil.RGBAImage, name string, x, y int) error {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(s.font)
	ctx.SetFontSize(s.fontSize)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst.RGBA)
	ctx.SetSrc(image.White)

	// Baseline sits fontSize pixels below the top of the label strip.
	pt := freetype.Pt(x, y+int(s.fontSize))
	if _, err := ctx.DrawString(name, pt); err != nil {
		return fmt.Errorf("render: drawing label %q: %w", name, err)
	}
	return nil
}
