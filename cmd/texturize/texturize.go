package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wbrown/glcm"
	"github.com/wbrown/glcm/imageutil"
	"github.com/wbrown/glcm/render"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputPath := flag.String("output", "",
		"Output path: a PNG file with -sheet, a directory otherwise "+
			"(default: derived from the input name)")
	statList := flag.String("stats", "all",
		"Comma-separated statistics to compute "+
			"(mean,std,contrast,dissimilarity,homogeneity,energy,max,entropy) "+
			"or 'all'")
	vmin := flag.Int("vmin", 0,
		"Minimum intensity of the quantized range")
	vmax := flag.Int("vmax", 255,
		"Maximum intensity of the quantized range")
	levels := flag.Int("levels", 8,
		"Number of grey levels in the co-occurrence matrix")
	kernelSize := flag.Int("kernel", 5,
		"Side of the square accumulation window (odd)")
	distance := flag.Float64("distance", 1.0,
		"Pixel pair distance offset in pixels")
	angle := flag.Float64("angle", 0.0,
		"Pixel pair angle in degrees (0 = +x, positive toward -y)")
	width := flag.Int("width", 0,
		"Resize the input to this width before analysis (0 = original size)")
	blur := flag.Bool("blur", false,
		"Apply Gaussian smoothing before quantization")
	sheet := flag.Bool("sheet", true,
		"Write one contact sheet instead of per-statistic files")
	columns := flag.Int("columns", 4,
		"Contact sheet columns")
	fontPath := flag.String("font", "",
		"TTF font for contact sheet labels (optional)")
	fontSize := flag.Float64("fontsize", 12,
		"Label size in points")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	stats, err := parseStats(*statList)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	params := glcm.Params{
		VMin:       *vmin,
		VMax:       *vmax,
		Levels:     *levels,
		KernelSize: *kernelSize,
		Distance:   *distance,
		Angle:      *angle,
	}
	if err := params.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		fmt.Printf("Error loading image: %v\n", err)
		os.Exit(1)
	}
	gray := imageutil.PrepareForTexture(img, *width, *blur)

	begin := time.Now()
	tensor, err := glcm.BuildGLCM(gray, params)
	if err != nil {
		fmt.Printf("Error building GLCM: %v\n", err)
		os.Exit(1)
	}

	features := make([]render.Feature, 0, len(stats))
	for _, name := range stats {
		plane, err := tensor.Compute(name)
		if err != nil {
			fmt.Printf("Error computing %s: %v\n", name, err)
			os.Exit(1)
		}
		features = append(features, render.Feature{Name: name, Plane: plane})
	}
	elapsed := time.Since(begin)

	if *sheet {
		err = writeSheet(features, *inputFile, *outputPath,
			*columns, *fontPath, *fontSize)
	} else {
		err = writeFiles(features, *inputFile, *outputPath)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Computed %d statistics on a %dx%d image in %v\n",
		len(features), gray.Width(), gray.Height(), elapsed)
}

// parseStats expands and validates the -stats flag.
func parseStats(list string) ([]string, error) {
	if list == "all" {
		return glcm.Statistics(), nil
	}
	known := make(map[string]bool)
	for _, name := range glcm.Statistics() {
		known[name] = true
	}

	var stats []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("unknown statistic %q, options are %s",
				name, strings.Join(glcm.Statistics(), ", "))
		}
		stats = append(stats, name)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("no statistics selected")
	}
	return stats, nil
}

// writeSheet composes all features into one labeled contact sheet PNG.
func writeSheet(features []render.Feature, input, output string,
	columns int, fontPath string, fontSize float64) error {
	opts := []render.SheetOption{
		render.WithColumns(columns),
		render.WithFontSize(fontSize),
	}
	if fontPath != "" {
		font, err := render.LoadFont(fontPath)
		if err != nil {
			return err
		}
		opts = append(opts, render.WithFont(font))
	}

	img, err := render.NewSheet(opts...).Render(features)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_texture.png"
	}
	if err := imageutil.SavePNG(img.RGBA, output); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}

// writeFiles writes one normalized grayscale PNG per statistic.
func writeFiles(features []render.Feature, input, outDir string) error {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	for _, f := range features {
		path := filepath.Join(outDir, fmt.Sprintf("%s_%s.png", base, f.Name))
		if err := imageutil.SaveGrayImage(render.Normalize(f.Plane), path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
