package main

import (
	"os"

	"github.com/ivsvarma/music-genre-classification/dataset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInspectCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := dataset.FormatFromPath(args[0])
			if format != "" {
				var err error
				if f, err = dataset.ParseFormat(format); err != nil {
					return err
				}
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			rec, err := dataset.Decode(in, f)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(dataset.Summarize(rec)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format (default from file extension)")
	return cmd
}
