package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func sine(freq float64, sr, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sr))
	}
	return out
}

func TestSniff(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want container
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVE"), wavFile},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), flacFile},
		{"ogg", []byte("OggS\x00\x02"), oggFile},
		{"id3", []byte("ID3\x04\x00"), mp3File},
		{"mpeg sync", []byte{0xFF, 0xFB, 0x90, 0x64}, mp3File},
		{"riff without wave", []byte("RIFF\x24\x00\x00\x00AVI "), unknown},
		{"text", []byte("hello world!"), unknown},
		{"empty", nil, unknown},
	}
	for _, tc := range cases {
		if got := sniff(tc.head); got != tc.want {
			t.Errorf("%s: sniff = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSaveAndLoadWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	in := sine(440, 8000, 8000)
	if err := SaveWav(path, in, 8000); err != nil {
		t.Fatalf("SaveWav: %v", err)
	}

	out, err := Load(path, 8000)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d samples, got %d", len(in), len(out))
	}
	for i := range in {
		if math.Abs(out[i]-in[i]) > 1e-3 {
			t.Fatalf("sample %d = %f, want %f", i, out[i], in[i])
		}
	}
}

func TestLoadResamplesWithBeep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := SaveWav(path, sine(440, 16000, 16000), 16000); err != nil {
		t.Fatalf("SaveWav: %v", err)
	}

	out, err := NewLoader(BeepResampler{Quality: 4}).Load(path, 8000)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if math.Abs(float64(len(out)-8000)) > 200 {
		t.Fatalf("expected about 8000 samples, got %d", len(out))
	}
}

func TestLoadResamplesWithHQ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := SaveWav(path, sine(440, 16000, 16000), 16000); err != nil {
		t.Fatalf("SaveWav: %v", err)
	}

	out, err := NewLoader(HQResampler{}).Load(path, 8000)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) < 6000 || len(out) > 9000 {
		t.Fatalf("expected about 8000 samples, got %d", len(out))
	}
	t.Logf("hq resampler produced %d samples", len(out))
}

func TestHQResampleLength(t *testing.T) {
	tests := []struct {
		from, to, n int
	}{
		{44100, 22050, 44100 * 30},
		{16000, 8000, 16000},
		{8000, 22050, 8001},
		{48000, 22050, 48000 * 3},
	}
	for _, tt := range tests {
		out, err := HQResampler{}.Resample(sine(440, tt.from, tt.n), tt.from, tt.to)
		if err != nil {
			t.Fatalf("%d->%d: %v", tt.from, tt.to, err)
		}
		want := resampledLength(tt.n, tt.from, tt.to)
		if len(out) != want {
			t.Errorf("%d->%d of %d samples: got %d, want %d", tt.from, tt.to, tt.n, len(out), want)
		}
	}
}

func TestHQResampleKeepsLastSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.wav")
	if err := SaveWav(path, sine(440, 44100, 44100*30), 44100); err != nil {
		t.Fatalf("SaveWav: %v", err)
	}
	out, err := NewLoader(HQResampler{}).Load(path, 22050)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 22050*30 {
		t.Fatalf("got %d samples, want %d", len(out), 22050*30)
	}
	// the tail carries signal, not only padding
	var energy float64
	for _, v := range out[len(out)-2048 : len(out)-512] {
		energy += v * v
	}
	if energy == 0 {
		t.Fatal("resampled tail is silent")
	}
}

func TestFitLength(t *testing.T) {
	if got := fitLength([]float64{1, 2, 3}, 2); len(got) != 2 || got[1] != 2 {
		t.Errorf("trim: %v", got)
	}
	if got := fitLength([]float64{1}, 3); len(got) != 3 || got[0] != 1 || got[2] != 0 {
		t.Errorf("pad: %v", got)
	}
	if got := resampledLength(44100*30, 44100, 22050); got != 661500 {
		t.Errorf("resampledLength = %d", got)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("this is not audio at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path, 8000)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadEmptyWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := SaveWav(path, nil, 8000); err != nil {
		t.Fatalf("SaveWav: %v", err)
	}
	if _, err := Load(path, 8000); err == nil {
		t.Fatal("expected an error for a wav without samples")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.wav"), 8000)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNewResampler(t *testing.T) {
	if r, err := NewResampler("", 0); err != nil {
		t.Fatalf("default: %v", err)
	} else if br, ok := r.(BeepResampler); !ok || br.Quality != DefaultBeepQuality {
		t.Fatalf("default resampler = %#v", r)
	}
	if _, err := NewResampler("hq", 0); err != nil {
		t.Fatalf("hq: %v", err)
	}
	if _, err := NewResampler("beep", 65); !errors.Is(err, ErrInvalidQualityBeep) {
		t.Fatalf("expected ErrInvalidQualityBeep, got %v", err)
	}
	if _, err := NewResampler("sinc", 0); !errors.Is(err, ErrUnknownResampler) {
		t.Fatalf("expected ErrUnknownResampler, got %v", err)
	}
}

func TestMonoStreamer(t *testing.T) {
	s := &monoStreamer{buf: []float64{0.1, 0.2, 0.3}}
	out, err := drain(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[2] != 0.3 {
		t.Fatalf("drain = %v", out)
	}
}
