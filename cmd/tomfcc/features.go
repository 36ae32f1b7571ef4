package main

import (
	"encoding/json"

	"github.com/ivsvarma/music-genre-classification/audio"
	"github.com/ivsvarma/music-genre-classification/mfcc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type features struct {
	File       string      `json:"file"`
	SampleRate int         `json:"sample_rate"`
	Samples    int         `json:"samples"`
	MFCC       [][]float64 `json:"mfcc"`
}

// newFeaturesCmd computes the MFCC matrix of one whole recording with the
// extraction settings, without segmenting it.
func newFeaturesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "features <audio file>",
		Short: "Print the MFCC matrix of one recording as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sr := v.GetInt("extraction.sample_rate")
			rs, err := audio.NewResampler(v.GetString("extraction.resampler"), v.GetInt("extraction.resample_quality"))
			if err != nil {
				return err
			}
			samples, err := audio.NewLoader(rs).Load(args[0], sr)
			if err != nil {
				return err
			}

			m := mfcc.NewMFCC()
			m.SampleRate = sr
			m.NFFT = v.GetInt("extraction.n_fft")
			m.HopLength = v.GetInt("extraction.hop_length")
			m.NumMels = v.GetInt("extraction.num_mels")
			m.NumMFCC = v.GetInt("extraction.num_mfcc")
			out, err := m.Compute(samples)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "    ")
			return enc.Encode(features{File: args[0], SampleRate: sr, Samples: len(samples), MFCC: out})
		},
	}
}
