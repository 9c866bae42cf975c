package main

import (
	"github.com/pronsSec/subnet-siphon/pkg/api/siphon"
	"github.com/pronsSec/subnet-siphon/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// resolveConfig layers the settings: defaults, then the config file, then every flag which was set explicitly.
func resolveConfig(cmd *cobra.Command, opts *reduceOpts) (*siphon.Config, error) {
	cfg := config.Default()
	path := opts.configFile
	if path == "" {
		if found, ok := config.Find(); ok {
			path = found
		}
	}
	if path != "" {
		logrus.Debugf("Using config file %s", path)
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("output-csv") {
		cfg.OutputCSV = opts.outputCSV
	}
	if flags.Changed("output-txt") {
		cfg.OutputText = opts.outputText
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("partition-size") {
		cfg.PartitionSize = opts.partitionSize
	}
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = opts.chunkSize
	}
	if flags.Changed("broadest-first") {
		cfg.BroadestFirst = opts.broadestFirst
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootopts.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyLogLevel honours a log level from the config file unless --log-level was given.
func applyLogLevel(cmd *cobra.Command, cfg *siphon.Config) error {
	if cfg.LogLevel == "" || cmd.Flags().Changed("log-level") {
		return nil
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}
