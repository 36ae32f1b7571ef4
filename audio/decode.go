package audio

import (
	"bufio"
	"bytes"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"
)

type container int

const (
	unknown container = iota
	wavFile
	flacFile
	oggFile
	mp3File
)

// sniff reports the container of a stream from its first bytes.
func sniff(head []byte) container {
	switch {
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return wavFile
	case len(head) >= 4 && bytes.Equal(head[0:4], []byte("fLaC")):
		return flacFile
	case len(head) >= 4 && bytes.Equal(head[0:4], []byte("OggS")):
		return oggFile
	case len(head) >= 3 && bytes.Equal(head[0:3], []byte("ID3")):
		return mp3File
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return mp3File
	}
	return unknown
}

// decode returns mono samples and the native sample rate of r.
func decode(r io.Reader) ([]float64, int, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(12)
	if err != nil && err != io.EOF {
		return nil, 0, err
	}

	switch sniff(head) {
	case wavFile:
		stream, format, err := wav.Decode(br)
		if err != nil {
			return nil, 0, err
		}
		return drainBeep(stream, format)
	case oggFile:
		stream, format, err := vorbis.Decode(io.NopCloser(br))
		if err != nil {
			return nil, 0, err
		}
		return drainBeep(stream, format)
	case mp3File:
		stream, format, err := mp3.Decode(io.NopCloser(br))
		if err != nil {
			return nil, 0, err
		}
		return drainBeep(stream, format)
	case flacFile:
		return loadflac(br)
	}
	return nil, 0, ErrUnsupportedFormat
}

func drainBeep(s beep.Streamer, format beep.Format) ([]float64, int, error) {
	out, err := drain(s)
	if err != nil {
		return nil, 0, err
	}
	return out, int(format.SampleRate), nil
}

// drain reads s to the end, averaging the two beep channels into one.
func drain(s beep.Streamer) (out []float64, err error) {
	var samples = make([][2]float64, 512)
	for {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			out = append(out, (samples[i][0]+samples[i][1])/2)
		}
		if !ok {
			break
		}
	}
	return out, s.Err()
}

func loadflac(r io.Reader) ([]float64, int, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	if stream.Info.BitsPerSample == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	var out []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		channels := float64(len(frame.Subframes))
		for i := range frame.Subframes[0].Samples {
			var sum float64
			for _, sub := range frame.Subframes {
				sum += float64(sub.Samples[i])
			}
			out = append(out, sum/channels/scale)
		}
	}
	return out, int(stream.Info.SampleRate), nil
}

// monoStreamer plays a sample vector on both beep channels.
type monoStreamer struct {
	buf []float64
	pos int
}

func (m *monoStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if m.pos >= len(m.buf) {
		return 0, false
	}
	for n < len(samples) && m.pos < len(m.buf) {
		samples[n][0] = m.buf[m.pos]
		samples[n][1] = m.buf[m.pos]
		n++
		m.pos++
	}
	return n, true
}

func (m *monoStreamer) Err() error { return nil }
