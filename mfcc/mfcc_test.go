package mfcc

import (
	"errors"
	"math"
	"testing"

	"github.com/ivsvarma/music-genre-classification/mel"
	"gonum.org/v1/gonum/mat"
)

func TestDCTBasisOrthonormal(t *testing.T) {
	b := DCTBasis(16, 16)
	var prod mat.Dense
	prod.Mul(b, b.T())
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if got := prod.At(i, j); math.Abs(got-want) > 1e-9 {
				t.Fatalf("B*B^T[%d][%d] = %f, want %f", i, j, got, want)
			}
		}
	}
}

func TestPowerToDB(t *testing.T) {
	s := mat.NewDense(1, 4, []float64{1, 10, 1e-3, 0})
	PowerToDB(s, 1e-10, 80)
	want := []float64{0, 10, -30, -70}
	for j, w := range want {
		if got := s.At(0, j); math.Abs(got-w) > 1e-9 {
			t.Errorf("db[%d] = %f, want %f", j, got, w)
		}
	}

	s = mat.NewDense(1, 2, []float64{1, 0})
	PowerToDB(s, 1e-10, -1)
	if got := s.At(0, 1); math.Abs(got+100) > 1e-9 {
		t.Errorf("unclipped silence = %f, want -100", got)
	}
}

func TestComputeShape(t *testing.T) {
	m := NewMFCC()
	n := 22050 * 30 / 10
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = 0.3 * math.Sin(2*math.Pi*220*float64(i)/22050)
	}
	out, err := m.Compute(buf)
	if err != nil {
		t.Fatal(err)
	}
	wantFrames := int(math.Ceil(float64(n) / 512))
	if len(out) != wantFrames {
		t.Fatalf("expected %d frames, got %d", wantFrames, len(out))
	}
	for i, row := range out {
		if len(row) != 13 {
			t.Fatalf("frame %d: expected 13 coefficients, got %d", i, len(row))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("out[%d][%d] = %f (not finite)", i, j, v)
			}
		}
	}
}

func TestComputeSilence(t *testing.T) {
	m := NewMFCC()
	out, err := m.Compute(make([]float64, 4096))
	if err != nil {
		t.Fatal(err)
	}
	c0 := -100 * math.Sqrt(float64(m.NumMels))
	for i, row := range out {
		if math.Abs(row[0]-c0) > 1e-6 {
			t.Fatalf("frame %d: c0 = %f, want %f", i, row[0], c0)
		}
		for j := 1; j < len(row); j++ {
			if math.Abs(row[j]) > 1e-6 {
				t.Fatalf("frame %d: c%d = %f, want 0", i, j, row[j])
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	buf := make([]float64, 5000)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.05)
	}
	a, err := NewMFCC().Compute(buf)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMFCC().Compute(buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("mismatch at [%d][%d]", i, j)
			}
		}
	}
}

func TestComputeInvalid(t *testing.T) {
	m := NewMFCC()
	m.NumMFCC = m.NumMels + 1
	if _, err := m.Compute(make([]float64, 100)); !errors.Is(err, mel.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}
