package audio

import (
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// SaveWav saves mono 16-bit wav file from sample vector
func SaveWav(outputFile string, vec []float64, sr int) error {
	if sr <= 0 {
		return ErrInvalidSampleRate
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	format := beep.Format{SampleRate: beep.SampleRate(sr), NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, &monoStreamer{buf: vec}, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
