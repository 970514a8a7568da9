package glcm

import (
	"errors"
	"math"
	"testing"

	"github.com/wbrown/glcm/imageutil"
)

// flatTensor builds the reference scenario used throughout: a 4x4 image of
// intensity 100 (level 3) with a 3x3 window, so every pixel's tensor holds
// a single count of 9 in cell (3,3).
func flatTensor(t *testing.T) *Tensor {
	t.Helper()
	img := imageutil.CreateFlatGrayImage(4, 4, 100)
	p := Params{VMin: 0, VMax: 255, Levels: 8, KernelSize: 3, Distance: 1.0, Angle: 0.0}
	tensor, err := BuildGLCM(img, p)
	if err != nil {
		t.Fatalf("BuildGLCM failed: %v", err)
	}
	return tensor
}

// checkConstant asserts a feature plane holds the same value everywhere.
func checkConstant(t *testing.T, name string, plane [][]float64, want, eps float64) {
	t.Helper()
	for y, row := range plane {
		for x, got := range row {
			if math.Abs(got-want) > eps {
				t.Fatalf("%s at (%d,%d) = %v, want %v", name, x, y, got, want)
			}
		}
	}
}

func TestMeanFlatImage(t *testing.T) {
	mean, err := flatTensor(t).Mean()
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	// 9 * 3 / 8^2
	checkConstant(t, "mean", mean, 0.421875, 0)
}

func TestStdFlatImage(t *testing.T) {
	std, err := flatTensor(t).Std()
	if err != nil {
		t.Fatalf("Std failed: %v", err)
	}
	// One cell deviates by 9*3 - mean; the other 63 deviate by -mean.
	mean := 27.0 / 64
	want := math.Sqrt(math.Pow(27-mean, 2) + 63*mean*mean)
	checkConstant(t, "std", std, want, 1e-12)
}

func TestContrastFlatImage(t *testing.T) {
	contrast, err := flatTensor(t).Contrast()
	if err != nil {
		t.Fatalf("Contrast failed: %v", err)
	}
	checkConstant(t, "contrast", contrast, 0, 0)
}

func TestDissimilarityFlatImage(t *testing.T) {
	diss, err := flatTensor(t).Dissimilarity()
	if err != nil {
		t.Fatalf("Dissimilarity failed: %v", err)
	}
	checkConstant(t, "dissimilarity", diss, 0, 0)
}

func TestHomogeneityFlatImage(t *testing.T) {
	homo, err := flatTensor(t).Homogeneity()
	if err != nil {
		t.Fatalf("Homogeneity failed: %v", err)
	}
	// All mass on the diagonal divides by 1, so the window count peaks.
	checkConstant(t, "homogeneity", homo, 9, 1e-12)
}

func TestEnergyFlatImage(t *testing.T) {
	energy, err := flatTensor(t).Energy()
	if err != nil {
		t.Fatalf("Energy failed: %v", err)
	}
	// sqrt(9^2): all mass in one cell.
	checkConstant(t, "energy", energy, 9, 1e-12)
}

func TestMaximumFlatImage(t *testing.T) {
	max, err := flatTensor(t).Maximum()
	if err != nil {
		t.Fatalf("Maximum failed: %v", err)
	}
	checkConstant(t, "max", max, 9, 0)
}

func TestEntropyFlatImage(t *testing.T) {
	ent, err := flatTensor(t).Entropy()
	if err != nil {
		t.Fatalf("Entropy failed: %v", err)
	}
	// The reduction adds 1/kernel^2 to every normalized count before the
	// logarithm, so the probabilities sum to more than one and the result
	// is not a Shannon entropy. Pin the implemented formula: one cell at
	// 9/9 + 1/9, the other 63 at 1/9.
	p1 := 1.0 + 1.0/9
	p0 := 1.0 / 9
	want := -p1*math.Log(p1) - 63*p0*math.Log(p0)
	checkConstant(t, "entropy", ent, want, 1e-12)
}

// TestEnergyMatchesDefinition verifies the reduction against a direct
// evaluation of sqrt(sum of squared counts) on a textured image.
func TestEnergyMatchesDefinition(t *testing.T) {
	img := imageutil.ToGrayscale(imageutil.CreateCheckerboardImage(9, 7, 2))
	p := DefaultParams()
	p.KernelSize = 3

	tensor, err := BuildGLCM(img, p)
	if err != nil {
		t.Fatalf("BuildGLCM failed: %v", err)
	}
	energy, err := tensor.Energy()
	if err != nil {
		t.Fatalf("Energy failed: %v", err)
	}

	for y := 0; y < tensor.Height; y++ {
		for x := 0; x < tensor.Width; x++ {
			var sumSq float64
			for i := 0; i < p.Levels; i++ {
				for j := 0; j < p.Levels; j++ {
					v := tensor.At(i, j, x, y)
					sumSq += v * v
				}
			}
			want := math.Sqrt(sumSq)
			if math.Abs(energy[y][x]-want) > 1e-9 {
				t.Fatalf("energy at (%d,%d) = %v, want %v", x, y, energy[y][x], want)
			}
		}
	}
}

func TestMaximumBounds(t *testing.T) {
	img := imageutil.CreateGradientGrayImage(24, 16)
	p := DefaultParams()

	max, err := Maximum(img, p)
	if err != nil {
		t.Fatalf("Maximum failed: %v", err)
	}
	bound := float64(p.KernelSize * p.KernelSize)
	for y, row := range max {
		for x, v := range row {
			if v < 0 || v > bound {
				t.Fatalf("max at (%d,%d) = %v, outside [0, %v]", x, y, v, bound)
			}
		}
	}
}

// TestTopLevelMatchesTensor checks that the one-call statistic functions
// agree with building the tensor once and reducing it.
func TestTopLevelMatchesTensor(t *testing.T) {
	img := imageutil.ToGrayscale(imageutil.CreateCheckerboardImage(10, 10, 3))
	p := DefaultParams()

	direct, err := Contrast(img, p)
	if err != nil {
		t.Fatalf("Contrast failed: %v", err)
	}

	tensor, err := BuildGLCM(img, p)
	if err != nil {
		t.Fatalf("BuildGLCM failed: %v", err)
	}
	composed, err := tensor.Contrast()
	if err != nil {
		t.Fatalf("tensor.Contrast failed: %v", err)
	}

	for y := range direct {
		for x := range direct[y] {
			if direct[y][x] != composed[y][x] {
				t.Fatalf("Contrast mismatch at (%d,%d): %v != %v",
					x, y, direct[y][x], composed[y][x])
			}
		}
	}
}

func TestComputeByName(t *testing.T) {
	tensor := flatTensor(t)
	for _, name := range Statistics() {
		if _, err := tensor.Compute(name); err != nil {
			t.Errorf("Compute(%q) failed: %v", name, err)
		}
	}

	_, err := tensor.Compute("kurtosis")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for unknown statistic, got %v", err)
	}
}

func TestEntropyRequiresKernelSize(t *testing.T) {
	tensor := NewTensor(2, 3, 3, 0)
	_, err := tensor.Entropy()
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

func TestReduceShapeMismatch(t *testing.T) {
	tensor := flatTensor(t)
	tensor.Levels = 5 // disagrees with the allocated planes

	_, err := tensor.Contrast()
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch, got %v", err)
	}
}

func TestStatisticErrorsPropagate(t *testing.T) {
	img := imageutil.CreateFlatGrayImage(4, 4, 100)
	p := DefaultParams()
	p.Levels = 0

	for name, fn := range map[string]func(*imageutil.GrayImage, Params) ([][]float64, error){
		"mean": Mean, "std": Std, "contrast": Contrast,
		"dissimilarity": Dissimilarity, "homogeneity": Homogeneity,
		"energy": Energy, "max": Maximum, "entropy": Entropy,
	} {
		if _, err := fn(img, p); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", name, err)
		}
	}
}
