package meistercharts

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want AffineMatrix) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// expectPanic runs fn and checks that it panics with an error wrapping want.
func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", want)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v (%T) is not an error", r, r)
		}
		if !errors.Is(err, want) {
			t.Fatalf("panic %v, want %v", err, want)
		}
		var ue *UsageError
		if !errors.As(err, &ue) {
			t.Fatalf("panic %T is not a *UsageError", err)
		}
	}()
	fn()
}

// --- AffineMatrix ---

func TestMultiplyIdentity(t *testing.T) {
	m := AffineMatrix{2, 0.5, -1, 3, 10, 20}
	assertMatrix(t, "I*m", Identity.Multiply(m), m)
	assertMatrix(t, "m*I", m.Multiply(Identity), m)
}

func TestMultiplyTranslations(t *testing.T) {
	got := Translation(10, 20).Multiply(Translation(5, -3))
	assertMatrix(t, "translate", got, Translation(15, 17))
}

func TestMultiplyOrder(t *testing.T) {
	// Scale then translate: the point is scaled first.
	m := Translation(10, 0).Multiply(Scaling(2, 2))
	x, y := m.Apply(1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 2)
}

func TestRotation90(t *testing.T) {
	m := Rotation(math.Pi / 2)
	assertMatrix(t, "rot90", m, AffineMatrix{0, 1, -1, 0, 0, 0})
	x, y := m.Apply(1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

func TestInvert(t *testing.T) {
	m := AffineMatrix{2, 0.3, -0.7, 1.5, 40, -12}
	assertMatrix(t, "m*inv", m.Multiply(m.Invert()), Identity)
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", Scaling(0, 5).Invert(), Identity)
}

func TestMatrixScaleFactors(t *testing.T) {
	m := Rotation(0.7).Multiply(Scaling(3, 4))
	assertNear(t, "ScaleX", m.ScaleX(), 3)
	assertNear(t, "ScaleY", m.ScaleY(), 4)
}

// --- TransformStack ---

func TestNewTransformStackDefaults(t *testing.T) {
	s := NewTransformStack(0)
	if s.Capacity() != DefaultTransformStackCapacity {
		t.Errorf("Capacity = %d, want %d", s.Capacity(), DefaultTransformStackCapacity)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
	assertMatrix(t, "initial", s.Current(), Identity)
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	s := NewTransformStack(10)
	s.Scale(2, 2)
	s.Translate(5, 5)
	before := s.Current()

	s.Save()
	s.Translate(100, -50)
	s.Scale(3, 0.5)
	s.Rotate(1.2)
	s.Save()
	s.TranslatePhysical(7, 7)
	s.Restore()
	s.Restore()

	assertMatrix(t, "restored", s.Current(), before)
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
}

func TestBalancedSequencesRestoreExactly(t *testing.T) {
	ops := []func(s *TransformStack){
		func(s *TransformStack) { s.Translate(3, 4) },
		func(s *TransformStack) { s.TranslatePhysical(-2, 9) },
		func(s *TransformStack) { s.Scale(1.5, 0.25) },
		func(s *TransformStack) { s.Rotate(0.3) },
		func(s *TransformStack) { s.Transform(AffineMatrix{1, 0.2, 0.1, 1, 4, 4}) },
	}
	for depth := 1; depth < DefaultTransformStackCapacity; depth++ {
		s := NewTransformStack(DefaultTransformStackCapacity)
		s.Scale(2, 2)
		start := s.Current()
		for i := 0; i < depth; i++ {
			s.Save()
			ops[i%len(ops)](s)
		}
		for i := 0; i < depth; i++ {
			s.Restore()
		}
		assertMatrix(t, "after balanced sequence", s.Current(), start)
	}
}

func TestSaveOverflowAtCapacity(t *testing.T) {
	s := NewTransformStack(10)
	for i := 0; i < 9; i++ {
		s.Save()
	}
	if s.Depth() != 9 {
		t.Fatalf("Depth = %d, want 9", s.Depth())
	}
	expectPanic(t, ErrTransformStackOverflow, s.Save)
}

func TestRestoreUnderflow(t *testing.T) {
	s := NewTransformStack(10)
	expectPanic(t, ErrTransformStackUnderflow, s.Restore)
}

func TestTranslateUsesCurrentScale(t *testing.T) {
	s := NewTransformStack(0)
	s.Scale(2, 3)
	s.Translate(10, 10)
	assertNear(t, "tx", s.Current()[4], 20)
	assertNear(t, "ty", s.Current()[5], 30)
}

func TestTranslatePhysicalIgnoresScale(t *testing.T) {
	s := NewTransformStack(0)
	s.Scale(2, 3)
	s.TranslatePhysical(10, 10)
	assertNear(t, "tx", s.Current()[4], 10)
	assertNear(t, "ty", s.Current()[5], 10)
}

func TestTranslateAfterRotate(t *testing.T) {
	s := NewTransformStack(0)
	s.Rotate(math.Pi / 2)
	s.Translate(10, 0)
	x, y := s.ToDevice(0, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 10)
}

func TestStackScaleFactors(t *testing.T) {
	s := NewTransformStack(0)
	s.Scale(2, 2)
	s.Save()
	s.Scale(1.5, 4)
	assertNear(t, "ScaleX", s.ScaleX(), 3)
	assertNear(t, "ScaleY", s.ScaleY(), 8)
	s.Restore()
	assertNear(t, "ScaleX restored", s.ScaleX(), 2)
}

func TestDeviceRoundTrip(t *testing.T) {
	s := NewTransformStack(0)
	s.Scale(2, 2)
	s.Translate(15, -4)
	s.Rotate(0.4)
	dx, dy := s.ToDevice(3, 7)
	x, y := s.FromDevice(dx, dy)
	assertNear(t, "x", x, 3)
	assertNear(t, "y", y, 7)
}

func TestResetOnlyTouchesActiveSlot(t *testing.T) {
	s := NewTransformStack(0)
	s.Translate(5, 5)
	s.Save()
	s.Reset()
	assertMatrix(t, "reset", s.Current(), Identity)
	s.Restore()
	assertMatrix(t, "saved", s.Current(), Translation(5, 5))
}

func TestUnwind(t *testing.T) {
	s := NewTransformStack(0)
	s.Save()
	s.Save()
	s.Save()
	s.unwind(1)
	if s.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", s.Depth())
	}
	s.unwind(5) // never grows
	if s.Depth() != 1 {
		t.Errorf("Depth = %d after unwind(5), want 1", s.Depth())
	}
}

func BenchmarkSaveTranslateRestore(b *testing.B) {
	s := NewTransformStack(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Save()
		s.Translate(1, 1)
		s.Scale(1.01, 1.01)
		s.Restore()
	}
}
