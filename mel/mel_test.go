package mel

import (
	"errors"
	"math"
	"testing"
)

func TestMelScale(t *testing.T) {
	// linear region: 200/3 Hz per mel
	if got := HzToMel(200); math.Abs(got-3) > 1e-9 {
		t.Errorf("HzToMel(200) = %f, want 3", got)
	}
	if got := HzToMel(1000); math.Abs(got-15) > 1e-9 {
		t.Errorf("HzToMel(1000) = %f, want 15", got)
	}
	for _, hz := range []float64{0, 440, 1000, 4000, 11025} {
		if back := MelToHz(HzToMel(hz)); math.Abs(back-hz) > 1e-6 {
			t.Errorf("MelToHz(HzToMel(%f)) = %f", hz, back)
		}
	}
}

func TestFilterbank(t *testing.T) {
	bank := Filterbank(22050, 2048, 128, 0, 11025)
	rows, cols := bank.Dims()
	if rows != 128 || cols != 1025 {
		t.Fatalf("expected 128x1025, got %dx%d", rows, cols)
	}
	for i := 0; i < rows; i++ {
		nonZero := false
		for k := 0; k < cols; k++ {
			v := bank.At(i, k)
			if v < 0 {
				t.Fatalf("filter %d bin %d negative: %f", i, k, v)
			}
			if v > 0 {
				nonZero = true
			}
		}
		if !nonZero {
			t.Errorf("filter %d is all zeros", i)
		}
	}
}

func TestNumFrames(t *testing.T) {
	m := NewMel()
	for _, n := range []int{0, 1, 511, 512, 66150, 132300} {
		power, err := m.Power(make([]float64, n))
		if err != nil {
			t.Fatal(err)
		}
		rows, cols := power.Dims()
		if rows != m.NumFrames(n) {
			t.Errorf("n=%d: expected %d frames, got %d", n, m.NumFrames(n), rows)
		}
		if cols != m.NumMels {
			t.Errorf("n=%d: expected %d mels, got %d", n, m.NumMels, cols)
		}
	}
}

func TestSpectrogramSine(t *testing.T) {
	m := NewMel()
	m.SampleRate = 8000
	m.NFFT = 512
	m.HopLength = 128
	m.NumMels = 40

	buf := make([]float64, 8000)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 8000)
	}
	spec, err := m.Spectrogram(buf)
	if err != nil {
		t.Fatal(err)
	}

	// the loudest band of a middle frame must contain 1 kHz
	frame := spec[len(spec)/2]
	best := 0
	for j, v := range frame {
		if v > frame[best] {
			best = j
		}
	}
	edges := melFrequencies(m.NumMels+2, 0, 4000)
	if edges[best] > 1000 || edges[best+2] < 1000 {
		t.Errorf("peak band %d spans [%f, %f] Hz, want it to contain 1000 Hz", best, edges[best], edges[best+2])
	}
}

func TestSilenceIsZero(t *testing.T) {
	spec, err := NewMel().Spectrogram(make([]float64, 4096))
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range spec {
		for j, v := range row {
			if v != 0 {
				t.Fatalf("spec[%d][%d] = %f, want 0", i, j, v)
			}
		}
	}
}

func TestInvalidParams(t *testing.T) {
	m := NewMel()
	m.HopLength = 0
	if _, err := m.Power(make([]float64, 100)); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}

	m = NewMel()
	m.MelFmax = 5
	m.MelFmin = 10
	if _, err := m.Power(make([]float64, 100)); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestFilterbankCacheFollowsParams(t *testing.T) {
	m := NewMel()
	first := m.filterbank()
	m.NumMels = 64
	second := m.filterbank()
	if r, _ := second.Dims(); r != 64 {
		t.Fatalf("expected rebuilt bank with 64 rows, got %d", r)
	}
	if first == second {
		t.Fatal("expected a new filterbank after changing NumMels")
	}
}

func TestPowerSpectrumMatchesDFT(t *testing.T) {
	m := &Mel{SampleRate: 8000, NFFT: 64, HopLength: 16, NumMels: 8}
	buf := make([]float64, 200)
	for i := range buf {
		buf[i] = math.Sin(0.3*float64(i)) + 0.25*math.Cos(1.7*float64(i))
	}

	power := m.powerSpectrum(buf)
	rows, cols := power.Dims()
	if rows != m.NumFrames(len(buf)) || cols != m.NFFT/2+1 {
		t.Fatalf("got %dx%d, want %dx%d", rows, cols, m.NumFrames(len(buf)), m.NFFT/2+1)
	}

	padded := pad(buf, m.NFFT)
	win := periodicHann(m.NFFT)
	for _, frame := range []int{0, 5, rows - 1} {
		for k := 0; k < cols; k++ {
			var re, im float64
			for n := 0; n < m.NFFT; n++ {
				x := padded[frame*m.HopLength+n] * win[n]
				angle := -2 * math.Pi * float64(k*n) / float64(m.NFFT)
				re += x * math.Cos(angle)
				im += x * math.Sin(angle)
			}
			want := re*re + im*im
			if got := power.At(frame, k); math.Abs(got-want) > 1e-9*math.Max(1, want) {
				t.Fatalf("frame %d bin %d: got %g, want %g", frame, k, got, want)
			}
		}
	}
}
