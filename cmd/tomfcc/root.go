package main

import (
	"io"

	"github.com/ivsvarma/music-genre-classification/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "tomfcc",
		Short: "Build MFCC datasets from labeled audio directories",
		Long: `tomfcc - turn a directory of labeled recordings into MFCC training data.

Each subdirectory of the dataset root is one class. Recordings are split into
equal segments and every segment becomes one MFCC matrix with its class label.

Examples:
  tomfcc extract --dataset ./genres --output data.json
  tomfcc extract --config tomfcc.yaml --output s3://datasets/gtzan/data.msgpack
  tomfcc inspect data.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(v, cfgFile)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	v.BindPFlag("log_level", flags.Lookup("log-level"))

	cmd.AddCommand(
		newExtractCmd(v),
		newInspectCmd(),
		newFeaturesCmd(v),
	)
	return cmd
}

func newLogger(out io.Writer, v *viper.Viper) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	return logger, nil
}
