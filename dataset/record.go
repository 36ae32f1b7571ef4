package dataset

import (
	"sort"

	"github.com/x448/float16"
)

// Record is the extracted dataset. Labels[k] and MFCC[k] describe the same segment.
type Record struct {
	Mapping []string      `json:"mapping" yaml:"mapping" msgpack:"mapping"`
	Labels  []int         `json:"labels" yaml:"labels" msgpack:"labels"`
	MFCC    [][][]float64 `json:"mfcc" yaml:"mfcc" msgpack:"mfcc"`
}

// NewRecord returns an empty record whose fields encode as empty lists.
func NewRecord() *Record {
	return &Record{
		Mapping: []string{},
		Labels:  []int{},
		MFCC:    [][][]float64{},
	}
}

func (r *Record) append(label int, frames [][]float64) {
	r.Labels = append(r.Labels, label)
	r.MFCC = append(r.MFCC, frames)
}

func (r *Record) normalize() {
	if r.Mapping == nil {
		r.Mapping = []string{}
	}
	if r.Labels == nil {
		r.Labels = []int{}
	}
	if r.MFCC == nil {
		r.MFCC = [][][]float64{}
	}
}

// toHalf returns a copy of frames with every value rounded through binary16.
func toHalf(frames [][]float64) [][]float64 {
	out := make([][]float64, len(frames))
	for i, row := range frames {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = float64(float16.Fromfloat32(float32(v)).Float32())
		}
	}
	return out
}

// Summary describes the shape of a Record.
type Summary struct {
	Classes      int            `yaml:"classes"`
	Segments     int            `yaml:"segments"`
	Frames       int            `yaml:"frames"`
	Coefficients int            `yaml:"coefficients"`
	MinLabel     int            `yaml:"min_label"`
	MaxLabel     int            `yaml:"max_label"`
	Consistent   bool           `yaml:"consistent"`
	PerLabel     []LabelSummary `yaml:"per_label"`
}

type LabelSummary struct {
	Label    int    `yaml:"label"`
	Class    string `yaml:"class"`
	Segments int    `yaml:"segments"`
}

// Summarize counts segments per label and checks that every matrix has the same shape.
// Class is empty for labels that do not index the mapping.
func Summarize(r *Record) Summary {
	s := Summary{
		Classes:    len(r.Mapping),
		Segments:   len(r.MFCC),
		Consistent: len(r.Labels) == len(r.MFCC),
		PerLabel:   []LabelSummary{},
	}
	if len(r.MFCC) > 0 {
		s.Frames = len(r.MFCC[0])
		if s.Frames > 0 {
			s.Coefficients = len(r.MFCC[0][0])
		}
	}
	for _, m := range r.MFCC {
		if len(m) != s.Frames {
			s.Consistent = false
			break
		}
		for _, row := range m {
			if len(row) != s.Coefficients {
				s.Consistent = false
				break
			}
		}
	}

	counts := map[int]int{}
	for i, l := range r.Labels {
		if i == 0 || l < s.MinLabel {
			s.MinLabel = l
		}
		if i == 0 || l > s.MaxLabel {
			s.MaxLabel = l
		}
		counts[l]++
	}
	for l, n := range counts {
		ls := LabelSummary{Label: l, Segments: n}
		if l >= 0 && l < len(r.Mapping) {
			ls.Class = r.Mapping[l]
		}
		s.PerLabel = append(s.PerLabel, ls)
	}
	sort.Slice(s.PerLabel, func(i, j int) bool { return s.PerLabel[i].Label < s.PerLabel[j].Label })
	return s
}
