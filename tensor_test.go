package glcm

import "testing"

func TestTensorAccessors(t *testing.T) {
	tensor := NewTensor(4, 6, 5, 3)

	if tensor.Levels != 4 || tensor.Width != 6 || tensor.Height != 5 {
		t.Fatalf("Unexpected dimensions %dx%dx%d",
			tensor.Levels, tensor.Width, tensor.Height)
	}

	tensor.Set(2, 1, 3, 4, 7)
	if got := tensor.At(2, 1, 3, 4); got != 7 {
		t.Errorf("At(2,1,3,4) = %v, want 7", got)
	}

	plane := tensor.Plane(2, 1)
	if got := plane[4*6+3]; got != 7 {
		t.Errorf("Plane(2,1)[4*6+3] = %v, want 7", got)
	}

	// Plane aliases tensor storage.
	plane[0] = 2
	if got := tensor.At(2, 1, 0, 0); got != 2 {
		t.Errorf("Plane mutation not visible through At, got %v", got)
	}

	tensor.Set(0, 0, 3, 4, 5)
	if got := tensor.SumAt(3, 4); got != 12 {
		t.Errorf("SumAt(3,4) = %v, want 12", got)
	}
}

func TestTensorCheck(t *testing.T) {
	tensor := NewTensor(3, 4, 4, 3)
	if err := tensor.check(); err != nil {
		t.Errorf("Valid tensor should pass check, got %v", err)
	}

	tensor.Levels = 2
	if err := tensor.check(); err == nil {
		t.Error("Plane count mismatch should fail check")
	}

	tensor = NewTensor(3, 4, 4, 3)
	tensor.Width = 5
	if err := tensor.check(); err == nil {
		t.Error("Plane size mismatch should fail check")
	}
}
